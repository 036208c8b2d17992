package queries

import (
	"context"

	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderGroupQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderGroupQueryHandler(db *gorm.DB) GetOrderGroupQueryHandler {
	return GetOrderGroupQueryHandler{db: db}
}

// Handle matches the key against order numbers, and against ids of orders
// that have no number. Returns errs.ObjectNotFoundError when nothing matches.
func (h GetOrderGroupQueryHandler) Handle(ctx context.Context, query GetOrderGroupQuery) (GetOrderGroupQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderGroupQueryResponse{}, err
	}

	orders, err := loadOrders(ctx, h.db, `
		WHERE TRIM(numero_pedido) = ?
		   OR (COALESCE(TRIM(numero_pedido), '') = '' AND id = ?)
		ORDER BY created_at DESC, id`,
		query.Key(), query.Key(),
	)
	if err != nil {
		return GetOrderGroupQueryResponse{}, err
	}
	if len(orders) == 0 {
		return GetOrderGroupQueryResponse{}, errs.NewObjectNotFoundError("key", query.Key())
	}

	resp := GetOrderGroupQueryResponse{Key: query.Key(), Items: make([]ItemView, 0, len(orders))}
	for _, o := range orders {
		resp.Items = append(resp.Items, newItemView(o))
	}
	return resp, nil
}
