package queries

import (
	"errors"
	"strings"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrGetOrderGroupQueryIsNotConstructed = errors.New(
	"GetOrderGroupQuery must be created via NewGetOrderGroupQuery constructor",
)

// GetOrderGroupQuery returns every line item of one order group across all
// stages. It backs the deep link carried by stage notifications.
type GetOrderGroupQuery struct {
	key string

	guard guard.ConstructorGuard
}

func NewGetOrderGroupQuery(key string) (GetOrderGroupQuery, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return GetOrderGroupQuery{}, errs.NewValueIsRequiredError("key")
	}
	return GetOrderGroupQuery{key: key, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderGroupQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderGroupQueryIsNotConstructed)
}

func (q GetOrderGroupQuery) Key() string {
	return q.key
}

type GetOrderGroupQueryResponse struct {
	Key   string
	Items []ItemView
}
