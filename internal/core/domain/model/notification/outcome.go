package notification

// Outcome classifies the result of a single send.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	// Delivered means the transport accepted the message.
	Delivered
	// TransientFailure covers every failure that may succeed later. Not retried here.
	TransientFailure
	// PermanentlyInvalid means the transport no longer recognizes the
	// registration; the token is pruned.
	PermanentlyInvalid
)

func (o Outcome) String() string {
	switch o {
	case Delivered:
		return "delivered"
	case TransientFailure:
		return "transient_failure"
	case PermanentlyInvalid:
		return "permanently_invalid"
	default:
		return "unknown"
	}
}

// Delivery is the outcome recorded for one recipient.
type Delivery struct {
	Token   string
	Outcome Outcome
	Cause   error
}

// Tally counts deliveries by outcome. Unknown outcomes count as failed.
type Tally struct {
	Delivered int
	Failed    int
	Invalid   int
}

func CountDeliveries(deliveries []Delivery) Tally {
	var t Tally
	for _, d := range deliveries {
		switch d.Outcome {
		case Delivered:
			t.Delivered++
		case PermanentlyInvalid:
			t.Failed++
			t.Invalid++
		default:
			t.Failed++
		}
	}
	return t
}

// InvalidTokens returns the tokens whose outcome is PermanentlyInvalid, in input order.
func InvalidTokens(deliveries []Delivery) []string {
	var out []string
	for _, d := range deliveries {
		if d.Outcome == PermanentlyInvalid {
			out = append(out, d.Token)
		}
	}
	return out
}
