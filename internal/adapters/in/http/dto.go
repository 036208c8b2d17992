package http

import (
	"fmt"
	"strings"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

const dateLayout = "2006-01-02"

type AttributesDTO struct {
	Color  string `json:"cor"`
	Size   string `json:"tamanho"`
	Mirror string `json:"espelho"`
}

// CreateOrderRequest mirrors a pedidos row. Markers accept booleans, status
// strings or numbers.
type CreateOrderRequest struct {
	ID             string       `json:"id"`
	Number         string       `json:"numero_pedido"`
	Insumos        order.Marker `json:"insumos" swaggertype:"string"`
	EmProducao     order.Marker `json:"em_producao" swaggertype:"string"`
	EnvioExpedicao order.Marker `json:"envio_expedicao" swaggertype:"string"`
	Despachado     order.Marker `json:"despachado" swaggertype:"boolean"`
	TrackingCode   string       `json:"nota_rastreio"`
	AttributesDTO
	OrderedAt string `json:"dia_pedido" example:"2024-05-01"`
	UserID    string `json:"user_id"`
}

func (r CreateOrderRequest) toRecord() (order.Record, error) {
	rec := order.Record{
		ID:     order.ID(r.ID),
		Number: r.Number,
		Markers: order.Markers{
			Insumos:        r.Insumos,
			EmProducao:     r.EmProducao,
			EnvioExpedicao: r.EnvioExpedicao,
			Despachado:     r.Despachado,
		},
		TrackingCode: r.TrackingCode,
		Attributes:   r.AttributesDTO.toDomain(),
	}

	if s := strings.TrimSpace(r.OrderedAt); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return order.Record{}, errs.NewValueIsInvalidErrorWithCause("dia_pedido", err)
		}
		rec.OrderedAt = &t
	}

	if strings.TrimSpace(r.UserID) != "" {
		owner, err := kernel.ParseUUID(r.UserID)
		if err != nil {
			return order.Record{}, err
		}
		rec.OwnerID = &owner
	}

	return rec, nil
}

// UpdateOrderRequest changes only what it names. A marker sent as null or
// false is cleared.
type UpdateOrderRequest struct {
	Markers      map[string]order.Marker `json:"markers" swaggertype:"object"`
	TrackingCode *string                 `json:"nota_rastreio"`
	Attributes   *AttributesDTO          `json:"attributes"`
}

func (r UpdateOrderRequest) toPatch() (commands.OrderPatch, error) {
	patch := commands.OrderPatch{TrackingCode: r.TrackingCode}

	if len(r.Markers) > 0 {
		patch.Markers = make(map[order.Field]order.Marker, len(r.Markers))
		for name, value := range r.Markers {
			field, err := order.ParseField(name)
			if err != nil {
				return commands.OrderPatch{}, err
			}
			patch.Markers[field] = value
		}
	}

	if r.Attributes != nil {
		attrs := r.Attributes.toDomain()
		patch.Attributes = &attrs
	}

	return patch, nil
}

func (a AttributesDTO) toDomain() order.Attributes {
	return order.Attributes{Color: a.Color, Size: a.Size, Mirror: a.Mirror}
}

type RegisterTokenRequest struct {
	Token      string                  `json:"token"`
	UserID     string                  `json:"user_id"`
	DeviceInfo notification.DeviceInfo `json:"device_info" swaggertype:"object"`
}

type TokenResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SendNotificationRequest struct {
	UserID string            `json:"user_id"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Icon   string            `json:"icon,omitempty"`
	Badge  string            `json:"badge,omitempty"`
	Data   map[string]string `json:"data,omitempty"`
}

type DeliveryResponse struct {
	Recipients int   `json:"recipients"`
	Sent       int   `json:"sent"`
	Failed     int   `json:"failed"`
	Invalid    int   `json:"invalid"`
	Pruned     int64 `json:"pruned"`
}

func newDeliveryResponse(r commands.DeliveryReport) DeliveryResponse {
	return DeliveryResponse{
		Recipients: r.Recipients,
		Sent:       r.Delivered,
		Failed:     r.Failed,
		Invalid:    r.Invalid,
		Pruned:     r.Pruned,
	}
}

type DispatchResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
	DeliveryResponse
}

func newDispatchResponse(r commands.DispatchResult) DispatchResponse {
	resp := DispatchResponse{
		Success:          true,
		Message:          r.Message(),
		Duplicate:        r.Duplicate,
		DeliveryResponse: newDeliveryResponse(r.DeliveryReport),
	}
	if r.Notified || r.Duplicate {
		resp.Field = r.Event.Field.String()
	}
	return resp
}

type ItemResponse struct {
	ID           string    `json:"id"`
	Number       string    `json:"numero_pedido,omitempty"`
	Stage        string    `json:"stage"`
	TrackingCode string    `json:"nota_rastreio,omitempty"`
	Color        string    `json:"cor,omitempty"`
	Size         string    `json:"tamanho,omitempty"`
	Mirror       string    `json:"espelho,omitempty"`
	OrderedAt    string    `json:"dia_pedido,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func newItemResponse(v queries.ItemView) ItemResponse {
	return ItemResponse{
		ID:           v.ID.String(),
		Number:       v.Number,
		Stage:        v.Stage.String(),
		TrackingCode: v.TrackingCode,
		Color:        v.Color,
		Size:         v.Size,
		Mirror:       v.Mirror,
		OrderedAt:    formatDate(v.OrderedAt),
		CreatedAt:    v.CreatedAt,
	}
}

func newItemResponseFromOrder(o *order.Order) ItemResponse {
	attrs := o.Attributes()
	return newItemResponse(queries.ItemView{
		ID:           o.ID(),
		Number:       o.Number(),
		Stage:        o.Stage(),
		TrackingCode: o.TrackingCode(),
		Color:        attrs.Color,
		Size:         attrs.Size,
		Mirror:       attrs.Mirror,
		OrderedAt:    o.OrderedAt(),
		CreatedAt:    o.CreatedAt(),
	})
}

type GroupResponse struct {
	Key   string         `json:"key"`
	ByID  bool           `json:"by_id,omitempty"`
	Date  time.Time      `json:"date"`
	Items []ItemResponse `json:"items"`
}

type ColumnResponse struct {
	Stage  string          `json:"stage"`
	Count  int             `json:"count"`
	Groups []GroupResponse `json:"groups"`
}

type BoardResponse struct {
	Columns []ColumnResponse `json:"columns"`
	Total   int              `json:"total"`
}

func newBoardResponse(r queries.GetStageBoardQueryResponse) BoardResponse {
	resp := BoardResponse{
		Columns: make([]ColumnResponse, 0, len(r.Columns)),
		Total:   r.Total,
	}
	for _, col := range r.Columns {
		c := ColumnResponse{
			Stage:  col.Stage.String(),
			Count:  col.Count,
			Groups: make([]GroupResponse, 0, len(col.Groups)),
		}
		for _, g := range col.Groups {
			c.Groups = append(c.Groups, GroupResponse{
				Key:   g.Key,
				ByID:  g.ByID,
				Date:  g.Date,
				Items: newItemResponses(g.Items),
			})
		}
		resp.Columns = append(resp.Columns, c)
	}
	return resp
}

type GroupItemsResponse struct {
	Key   string         `json:"key"`
	Items []ItemResponse `json:"items"`
}

func newGroupResponse(r queries.GetOrderGroupQueryResponse) GroupItemsResponse {
	return GroupItemsResponse{Key: r.Key, Items: newItemResponses(r.Items)}
}

func newItemResponses(views []queries.ItemView) []ItemResponse {
	out := make([]ItemResponse, 0, len(views))
	for _, v := range views {
		out = append(out, newItemResponse(v))
	}
	return out
}

func parseUserID(s string) (kernel.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError("user_id")
	}
	return kernel.ParseUUID(s)
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is neither YYYY-MM-DD nor RFC 3339", s)
	}
	return t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
