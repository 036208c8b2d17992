package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Stage is the pipeline column an order belongs to.
//
// Pipeline: New -> InsumosPending -> InProduction -> Shipping -> Dispatched.
// Dispatched is terminal. Unknown is the zero value and never produced by Classify.
type Stage int

const (
	Unknown Stage = iota
	New
	InsumosPending
	InProduction
	Shipping
	Dispatched
)

var stageNames = map[Stage]string{
	Unknown:        "unknown",
	New:            "new",
	InsumosPending: "insumos_pending",
	InProduction:   "in_production",
	Shipping:       "shipping",
	Dispatched:     "dispatched",
}

// AllStages returns the valid stages in pipeline order.
func AllStages() []Stage {
	return []Stage{New, InsumosPending, InProduction, Shipping, Dispatched}
}

// ParseStage maps a stage name back to its Stage.
func ParseStage(name string) (Stage, error) {
	for _, s := range AllStages() {
		if stageNames[s] == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%q is not a stage", name))
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return stageNames[Unknown]
}

func (s Stage) Validate() error {
	if s < New || s > Dispatched {
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

func (s Stage) IsTerminal() bool {
	return s == Dispatched
}

// Classify maps a set of markers onto exactly one stage.
//
// A later marker implies the earlier ones, so the most advanced marker that is
// set decides the stage:
//   - despachado set                          -> Dispatched
//   - envio_expedicao set, despachado unset   -> Shipping
//   - em_producao set, later markers unset    -> InProduction
//   - insumos set, later markers unset        -> InsumosPending
//   - nothing set                             -> New
//
// The result depends only on the markers given, never on other orders.
func Classify(m Markers) Stage {
	switch {
	case m.Despachado.IsSet():
		return Dispatched
	case m.EnvioExpedicao.IsSet():
		return Shipping
	case m.EmProducao.IsSet():
		return InProduction
	case m.Insumos.IsSet():
		return InsumosPending
	default:
		return New
	}
}
