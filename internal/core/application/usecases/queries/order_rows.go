// Package queries contains the read side: the stage board and the order group
// detail. Queries read the order store directly with SQL and reuse the domain
// projector, so the board is always derived from current markers.
package queries

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const selectOrders = `
	SELECT
		id,
		numero_pedido,
		insumos,
		em_producao,
		envio_expedicao,
		despachado,
		nota_rastreio,
		cor,
		tamanho,
		espelho,
		dia_pedido,
		created_at,
		user_id
	FROM pedidos`

type orderRow struct {
	ID             string     `gorm:"column:id"`
	NumeroPedido   *string    `gorm:"column:numero_pedido"`
	Insumos        *string    `gorm:"column:insumos"`
	EmProducao     *string    `gorm:"column:em_producao"`
	EnvioExpedicao *string    `gorm:"column:envio_expedicao"`
	Despachado     *bool      `gorm:"column:despachado"`
	NotaRastreio   *string    `gorm:"column:nota_rastreio"`
	Cor            *string    `gorm:"column:cor"`
	Tamanho        *string    `gorm:"column:tamanho"`
	Espelho        *string    `gorm:"column:espelho"`
	DiaPedido      *time.Time `gorm:"column:dia_pedido"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UserID         *uuid.UUID `gorm:"column:user_id"`
}

func (r orderRow) toOrder() (*order.Order, error) {
	rec := order.Record{
		ID:     order.ID(r.ID),
		Number: deref(r.NumeroPedido),
		Markers: order.Markers{
			Insumos:        order.MarkerFromText(r.Insumos),
			EmProducao:     order.MarkerFromText(r.EmProducao),
			EnvioExpedicao: order.MarkerFromText(r.EnvioExpedicao),
			Despachado:     order.MarkerFromBool(r.Despachado),
		},
		TrackingCode: deref(r.NotaRastreio),
		Attributes: order.Attributes{
			Color:  deref(r.Cor),
			Size:   deref(r.Tamanho),
			Mirror: deref(r.Espelho),
		},
		OrderedAt: r.DiaPedido,
		CreatedAt: r.CreatedAt,
	}
	if r.UserID != nil {
		owner, err := kernel.UUIDFromGoogle(*r.UserID)
		if err != nil {
			return nil, err
		}
		rec.OwnerID = &owner
	}
	return order.Restore(rec)
}

func loadOrders(ctx context.Context, db *gorm.DB, tail string, args ...any) ([]*order.Order, error) {
	var rows []orderRow
	if err := db.WithContext(ctx).Raw(selectOrders+" "+tail, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(rows))
	for _, r := range rows {
		o, err := r.toOrder()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// ItemView is one line item as shown on a board card.
type ItemView struct {
	ID           order.ID
	Number       string
	Stage        order.Stage
	TrackingCode string
	Color        string
	Size         string
	Mirror       string
	OrderedAt    *time.Time
	CreatedAt    time.Time
}

func newItemView(o *order.Order) ItemView {
	attrs := o.Attributes()
	return ItemView{
		ID:           o.ID(),
		Number:       o.Number(),
		Stage:        o.Stage(),
		TrackingCode: o.TrackingCode(),
		Color:        attrs.Color,
		Size:         attrs.Size,
		Mirror:       attrs.Mirror,
		OrderedAt:    o.OrderedAt(),
		CreatedAt:    o.CreatedAt(),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
