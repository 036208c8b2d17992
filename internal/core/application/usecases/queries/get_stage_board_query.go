package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrGetStageBoardQueryIsNotConstructed = errors.New(
	"GetStageBoardQuery must be created via NewGetStageBoardQuery constructor",
)

// GetStageBoardQuery builds the pipeline board from every order in the store.
//
// Example:
//
//	board, err := handler.Handle(ctx, NewGetStageBoardQuery())
//	if err != nil {
//	    return fmt.Errorf("failed to build board: %w", err)
//	}
//	for _, column := range board.Columns {
//	    fmt.Printf("%s: %d\n", column.Stage, column.Count)
//	}
type GetStageBoardQuery struct {
	guard guard.ConstructorGuard
}

func NewGetStageBoardQuery() GetStageBoardQuery {
	return GetStageBoardQuery{guard: guard.NewConstructorGuard()}
}

func (q GetStageBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetStageBoardQueryIsNotConstructed)
}

// GetStageBoardQueryResponse lists one column per stage in pipeline order.
// Empty stages are present with no groups.
type GetStageBoardQueryResponse struct {
	Columns []StageColumn
	Total   int
}

type StageColumn struct {
	Stage order.Stage
	// Count is the number of line items, not groups.
	Count  int
	Groups []GroupView
}

type GroupView struct {
	Key   string
	ByID  bool
	Date  time.Time
	Items []ItemView
}
