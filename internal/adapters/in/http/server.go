package http

import (
	"context"
	"log/slog"
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

type boardQueryHandler interface {
	Handle(ctx context.Context, query queries.GetStageBoardQuery) (queries.GetStageBoardQueryResponse, error)
}

type groupQueryHandler interface {
	Handle(ctx context.Context, query queries.GetOrderGroupQuery) (queries.GetOrderGroupQueryResponse, error)
}

type createOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
}

type updateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error)
}

type registerTokenHandler interface {
	Handle(ctx context.Context, cmd commands.RegisterTokenCommand) (*notification.Token, error)
}

type sendNotificationHandler interface {
	Handle(ctx context.Context, cmd commands.SendNotificationCommand) (commands.DeliveryReport, error)
}

type dispatchHandler interface {
	Handle(ctx context.Context, cmd commands.DispatchOrderChangeCommand) (commands.DispatchResult, error)
}

// Handlers are the use cases served over HTTP.
type Handlers struct {
	Board            boardQueryHandler
	Group            groupQueryHandler
	CreateOrder      createOrderHandler
	UpdateOrder      updateOrderHandler
	RegisterToken    registerTokenHandler
	SendNotification sendNotificationHandler
	Dispatch         dispatchHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers      Handlers
	webhookSecret string
	logger        *slog.Logger
}

// NewServer creates the HTTP server. An empty webhookSecret leaves the
// change webhook unauthenticated.
func NewServer(handlers Handlers, webhookSecret string, logger *slog.Logger) *Server {
	return &Server{
		handlers:      handlers,
		webhookSecret: webhookSecret,
		logger:        logger.With("component", "http_server"),
	}
}

// RegisterRoutes mounts the API under /api/v1. tokenLimit guards token
// registration and may be nil.
func (s *Server) RegisterRoutes(e *echo.Echo, tokenLimit echo.MiddlewareFunc) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1")
	api.GET("/orders/board", s.GetBoard)
	api.GET("/orders/groups/:key", s.GetOrderGroup)
	api.POST("/orders", s.CreateOrder)
	api.PATCH("/orders/:id", s.UpdateOrder)

	var tokenMiddleware []echo.MiddlewareFunc
	if tokenLimit != nil {
		tokenMiddleware = append(tokenMiddleware, tokenLimit)
	}
	api.POST("/notification-tokens", s.RegisterToken, tokenMiddleware...)
	api.POST("/notifications", s.SendNotification)
	api.POST("/hooks/order-changes", s.HandleOrderChange, s.requireWebhookSecret)
}

// GetBoard godoc
//
//	@Summary	Stage board
//	@Tags		orders
//	@Produce	json
//	@Success	200	{object}	BoardResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/orders/board [get]
func (s *Server) GetBoard(c echo.Context) error {
	resp, err := s.handlers.Board.Handle(c.Request().Context(), queries.NewGetStageBoardQuery())
	if err != nil {
		return s.fail(c, err, "Failed to build board")
	}
	return c.JSON(http.StatusOK, newBoardResponse(resp))
}

// GetOrderGroup godoc
//
//	@Summary	Line items of one order group
//	@Tags		orders
//	@Produce	json
//	@Param		key	path		string	true	"order number, or order id for items without one"
//	@Success	200	{object}	GroupItemsResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/orders/groups/{key} [get]
func (s *Server) GetOrderGroup(c echo.Context) error {
	query, err := queries.NewGetOrderGroupQuery(c.Param("key"))
	if err != nil {
		return s.fail(c, err, "Invalid group key")
	}

	resp, err := s.handlers.Group.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err, "Failed to load order group")
	}
	return c.JSON(http.StatusOK, newGroupResponse(resp))
}

// CreateOrder godoc
//
//	@Summary	Create an order line item
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		order	body		CreateOrderRequest	true	"order"
//	@Success	201		{object}	ItemResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/orders [post]
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	rec, err := req.toRecord()
	if err != nil {
		return s.fail(c, err, "Invalid order data")
	}
	cmd, err := commands.NewCreateOrderCommand(rec)
	if err != nil {
		return s.fail(c, err, "Invalid order data")
	}

	created, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err, "Failed to create order")
	}
	return c.JSON(http.StatusCreated, newItemResponseFromOrder(created))
}

// UpdateOrder godoc
//
//	@Summary	Update markers, tracking code or attributes of an order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"order id"
//	@Param		patch	body		UpdateOrderRequest	true	"fields to change"
//	@Success	200		{object}	ItemResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/orders/{id} [patch]
func (s *Server) UpdateOrder(c echo.Context) error {
	var req UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	patch, err := req.toPatch()
	if err != nil {
		return s.fail(c, err, "Invalid order patch")
	}
	cmd, err := commands.NewUpdateOrderCommand(order.ID(c.Param("id")), patch)
	if err != nil {
		return s.fail(c, err, "Invalid order patch")
	}

	updated, err := s.handlers.UpdateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err, "Failed to update order")
	}
	return c.JSON(http.StatusOK, newItemResponseFromOrder(updated))
}

// RegisterToken godoc
//
//	@Summary	Register or refresh a push token
//	@Tags		notifications
//	@Accept		json
//	@Produce	json
//	@Param		token	body		RegisterTokenRequest	true	"registration"
//	@Success	200		{object}	TokenResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	429		{object}	ErrorResponse
//	@Router		/notification-tokens [post]
func (s *Server) RegisterToken(c echo.Context) error {
	var req RegisterTokenRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	userID, err := parseUserID(req.UserID)
	if err != nil {
		return s.fail(c, err, "Invalid user id")
	}
	cmd, err := commands.NewRegisterTokenCommand(req.Token, userID, req.DeviceInfo)
	if err != nil {
		return s.fail(c, err, "Invalid token registration")
	}

	token, err := s.handlers.RegisterToken.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err, "Failed to register token")
	}
	return c.JSON(http.StatusOK, TokenResponse{
		ID:        token.ID().String(),
		UserID:    token.UserID().String(),
		UpdatedAt: token.UpdatedAt(),
	})
}

// SendNotification godoc
//
//	@Summary	Send a notification to every device of a user
//	@Tags		notifications
//	@Accept		json
//	@Produce	json
//	@Param		notification	body		SendNotificationRequest	true	"message"
//	@Success	200				{object}	DeliveryResponse
//	@Failure	400				{object}	ErrorResponse
//	@Failure	500				{object}	ErrorResponse
//	@Router		/notifications [post]
func (s *Server) SendNotification(c echo.Context) error {
	var req SendNotificationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	userID, err := parseUserID(req.UserID)
	if err != nil {
		return s.fail(c, err, "Invalid user id")
	}
	cmd, err := commands.NewSendNotificationCommand(userID, req.Title, req.Body, req.Icon, req.Badge, req.Data)
	if err != nil {
		return s.fail(c, err, "Invalid notification")
	}

	report, err := s.handlers.SendNotification.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err, "Failed to send notification")
	}
	return c.JSON(http.StatusOK, newDeliveryResponse(report))
}
