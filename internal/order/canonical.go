package order

import "errors"

// Status is the canonical order state. Unrecognized source values pass
// through uppercased, so downstream consumers must tolerate strings outside
// this set.
type Status string

const (
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCanceled   Status = "CANCELED"
	StatusReturned   Status = "RETURNED"
	StatusOnHold     Status = "ON_HOLD"
)

var (
	// ErrOrderNotFound reports a definitive "no such record" result from the
	// data source. It is never used for connectivity failures.
	ErrOrderNotFound = errors.New("order not found")

	// ErrUnavailable classifies transient connectivity failures
	// (refused connections, timeouts, generic network errors). Store
	// adapters wrap these so the resolver can decide to retry.
	ErrUnavailable = errors.New("data source unavailable")

	// ErrMalformedRecord reports a record that exists but carries no
	// identifier. A data-integrity fault, distinct from not-found.
	ErrMalformedRecord = errors.New("order record missing identifier")
)

// Order is the normalized, stable-shaped representation every downstream
// consumer works with. OrderID, Status and LastUpdate are always populated;
// everything else is carried through only when the source record has it.
type Order struct {
	OrderID        string `json:"order_id"`
	Status         Status `json:"status"`
	ETA            string `json:"eta,omitempty"` // calendar date, YYYY-MM-DD
	Carrier        string `json:"carrier,omitempty"`
	TrackingNumber string `json:"tracking_number,omitempty"`
	LastUpdate     string `json:"last_update"` // RFC 3339
	IssueFlag      string `json:"issue_flag,omitempty"`
	Notes          string `json:"notes,omitempty"`

	// Descriptive extras, never required.
	CustomerName      string   `json:"customer_name,omitempty"`
	CustomerPhone     string   `json:"customer_phone,omitempty"`
	ProductID         string   `json:"product_id,omitempty"`
	ProductName       string   `json:"product_name,omitempty"`
	Category          string   `json:"category,omitempty"`
	ShippingAddress   string   `json:"shipping_address,omitempty"`
	PaymentMethod     string   `json:"payment_method,omitempty"`
	OrderDate         string   `json:"order_date,omitempty"` // YYYY-MM-DD
	ReturnEligibility string   `json:"return_eligibility,omitempty"`
	RefundAmount      *float64 `json:"refund_amount,omitempty"`
}
