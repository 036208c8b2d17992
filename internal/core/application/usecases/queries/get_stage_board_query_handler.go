package queries

import (
	"context"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"

	"gorm.io/gorm"
)

// GetStageBoardQueryHandler reads a snapshot of the order store and projects
// it. Orders are read newest first, which is also the member order inside
// each group.
type GetStageBoardQueryHandler struct {
	db        *gorm.DB
	projector services.StageProjector
}

func NewGetStageBoardQueryHandler(db *gorm.DB) GetStageBoardQueryHandler {
	return GetStageBoardQueryHandler{
		db:        db,
		projector: services.NewStageProjector(),
	}
}

func (h GetStageBoardQueryHandler) Handle(ctx context.Context, query GetStageBoardQuery) (GetStageBoardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStageBoardQueryResponse{}, err
	}

	orders, err := loadOrders(ctx, h.db, "ORDER BY created_at DESC, id")
	if err != nil {
		return GetStageBoardQueryResponse{}, err
	}

	return boardResponse(h.projector.Project(orders)), nil
}

func boardResponse(board services.Board) GetStageBoardQueryResponse {
	resp := GetStageBoardQueryResponse{
		Columns: make([]StageColumn, 0, len(order.AllStages())),
		Total:   board.Total(),
	}

	for _, stage := range order.AllStages() {
		column := StageColumn{
			Stage:  stage,
			Count:  board.Count(stage),
			Groups: make([]GroupView, 0, len(board[stage])),
		}
		for _, g := range board[stage] {
			view := GroupView{Key: g.Key, ByID: g.ByID, Date: g.Date, Items: make([]ItemView, 0, len(g.Orders))}
			for _, o := range g.Orders {
				view.Items = append(view.Items, newItemView(o))
			}
			column.Groups = append(column.Groups, view)
		}
		resp.Columns = append(resp.Columns, column)
	}

	return resp
}
