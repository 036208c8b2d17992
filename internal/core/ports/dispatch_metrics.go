package ports

import (
	"time"

	"orderflow/internal/core/domain/model/notification"
)

// DispatchMetrics receives observability data from the fan-out.
type DispatchMetrics interface {
	ObserveDelivery(outcome notification.Outcome)
	ObservePruned(count int)
	ObserveDispatch(field string, elapsed time.Duration)
}
