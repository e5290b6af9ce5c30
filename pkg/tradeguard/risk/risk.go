package risk

import (
	"github.com/joripage/tradeguard/pkg/tradeguard/model"
)

// Gate is one account-level risk check. A nil return passes the order on
// to the next gate.
type Gate interface {
	Check(order *model.OrderSubmitted, account *model.UserAccount) error
}

// Decision is the outcome of running an order through the gates. Reason is
// empty on approval.
type Decision struct {
	Approved bool
	Reason   string
}

// Engine evaluates gates in a fixed order and short-circuits on the first
// failure. Pure: no I/O, no state between calls.
type Engine struct {
	gates []Gate
}

func NewEngine() *Engine {
	return &Engine{
		gates: []Gate{
			&ExposureGate{},
			&MarginGate{},
			&VelocityGate{},
		},
	}
}

func (e *Engine) Decide(order *model.OrderSubmitted, account *model.UserAccount) Decision {
	for _, gate := range e.gates {
		if err := gate.Check(order, account); err != nil {
			return Decision{Approved: false, Reason: err.Error()}
		}
	}
	return Decision{Approved: true}
}
