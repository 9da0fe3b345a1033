package notifymock

import (
	"context"

	"supplytrack-backend/internal/notify"
)

// Ensure compile-time compliance
var _ notify.Dispatcher = (*Dispatcher)(nil)

// Dispatcher records Notify calls; set Err to simulate a failing service.
// Calls land on the Calls channel so tests can wait for the fire-and-forget
// send without sleeping.
type Dispatcher struct {
	Err   error
	Calls chan Call
}

type Call struct {
	Recipient string
	Params    notify.TemplateParams
}

func New() *Dispatcher {
	return &Dispatcher{Calls: make(chan Call, 8)}
}

func (m *Dispatcher) Notify(_ context.Context, recipient string, p notify.TemplateParams) error {
	if m.Calls != nil {
		m.Calls <- Call{Recipient: recipient, Params: p}
	}
	return m.Err
}
