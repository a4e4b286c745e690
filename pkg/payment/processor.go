// Package payment talks to the external payment processor that hosts the
// checkout page. The processor is authoritative for payment state; this
// package only creates hosted sessions and reads their status back.
package payment

import "context"

// LineItem is one order line presented on the hosted payment page. The
// unit amount is in minor currency units.
type LineItem struct {
	Name        string
	Description string
	ImageURL    string
	UnitAmount  int64
	Quantity    int
}

// CreateSessionParams describes a hosted checkout session to create.
// Metadata is echoed back verbatim by the processor at retrieval time; the
// order id travels in it, which is what ties an external payment event back
// to a local order.
type CreateSessionParams struct {
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// Session is the processor's view of a checkout session.
type Session struct {
	ID            string
	URL           string
	PaymentStatus string
	Metadata      map[string]string
}

// PaymentStatusPaid is the processor's settled-payment status. Anything
// else (unpaid, open, expired) means the order must stay pending.
const PaymentStatusPaid = "paid"

// Paid reports whether the session's payment has settled.
func (s *Session) Paid() bool {
	return s.PaymentStatus == PaymentStatusPaid
}

// Processor is the client interface to the external payment service.
type Processor interface {
	// CreateSession requests a new hosted payment session. Each call creates
	// a distinct session on the processor side, so callers must not blindly
	// retry on timeout.
	CreateSession(ctx context.Context, params CreateSessionParams) (*Session, error)
	// RetrieveSession looks a session up by id. Safe to retry: failures map
	// to errs.ErrTransient (outage) or errs.ErrNotFound (unknown id).
	RetrieveSession(ctx context.Context, sessionID string) (*Session, error)
}
