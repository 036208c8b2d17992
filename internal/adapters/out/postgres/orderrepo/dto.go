// Package orderrepo maps the order aggregate onto the "pedidos" table.
// Marker columns keep the storage types the production schema uses: the
// first three markers are nullable text, despachado is a nullable boolean.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is one row of "pedidos".
type OrderDTO struct {
	ID             string     `gorm:"type:text;primaryKey"`
	NumeroPedido   *string    `gorm:"column:numero_pedido;index"`
	Insumos        *string    `gorm:"column:insumos"`
	EmProducao     *string    `gorm:"column:em_producao"`
	EnvioExpedicao *string    `gorm:"column:envio_expedicao"`
	Despachado     *bool      `gorm:"column:despachado"`
	NotaRastreio   *string    `gorm:"column:nota_rastreio"`
	Cor            *string    `gorm:"column:cor"`
	Tamanho        *string    `gorm:"column:tamanho"`
	Espelho        *string    `gorm:"column:espelho"`
	DiaPedido      *time.Time `gorm:"column:dia_pedido;type:date"`
	CreatedAt      time.Time  `gorm:"column:created_at;not null;index"`
	UserID         *uuid.UUID `gorm:"column:user_id;type:uuid;index"`
}

func (OrderDTO) TableName() string {
	return "pedidos"
}

func fromDomain(o *order.Order) OrderDTO {
	rec := o.Record()

	dto := OrderDTO{
		ID:             rec.ID.String(),
		NumeroPedido:   nullable(rec.Number),
		Insumos:        rec.Markers.Insumos.Text(),
		EmProducao:     rec.Markers.EmProducao.Text(),
		EnvioExpedicao: rec.Markers.EnvioExpedicao.Text(),
		Despachado:     boolColumn(rec.Markers.Despachado),
		NotaRastreio:   nullable(rec.TrackingCode),
		Cor:            nullable(rec.Attributes.Color),
		Tamanho:        nullable(rec.Attributes.Size),
		Espelho:        nullable(rec.Attributes.Mirror),
		DiaPedido:      rec.OrderedAt,
		CreatedAt:      rec.CreatedAt,
	}
	if rec.OwnerID != nil {
		owner := rec.OwnerID.Google()
		dto.UserID = &owner
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	rec := order.Record{
		ID:     order.ID(dto.ID),
		Number: value(dto.NumeroPedido),
		Markers: order.Markers{
			Insumos:        order.MarkerFromText(dto.Insumos),
			EmProducao:     order.MarkerFromText(dto.EmProducao),
			EnvioExpedicao: order.MarkerFromText(dto.EnvioExpedicao),
			Despachado:     order.MarkerFromBool(dto.Despachado),
		},
		TrackingCode: value(dto.NotaRastreio),
		Attributes: order.Attributes{
			Color:  value(dto.Cor),
			Size:   value(dto.Tamanho),
			Mirror: value(dto.Espelho),
		},
		OrderedAt: dto.DiaPedido,
		CreatedAt: dto.CreatedAt,
	}
	if dto.UserID != nil {
		owner, err := kernel.UUIDFromGoogle(*dto.UserID)
		if err != nil {
			return nil, err
		}
		rec.OwnerID = &owner
	}
	return order.Restore(rec)
}

// boolColumn stores an absent marker as NULL and anything else by truthiness.
func boolColumn(m order.Marker) *bool {
	if m.Value() == "" {
		return nil
	}
	set := m.IsSet()
	return &set
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
