package order

import (
	"strings"
	"time"
)

// statusFamilies maps keyword substrings to canonical statuses. Checked in
// order against the uppercased source value; the first hit wins.
var statusFamilies = []struct {
	keyword string
	status  Status
}{
	{"SHIP", StatusShipped},       // SHIPPED, SHIPPING
	{"DELIVER", StatusDelivered},  // DELIVERED, OUT FOR DELIVERY
	{"PROCESS", StatusProcessing}, // PROCESSING, IN PROCESS
	{"CANCEL", StatusCanceled},    // CANCELED, CANCELLED
	{"RETURN", StatusReturned},    // RETURNED, RETURN REQUESTED
	{"HOLD", StatusOnHold},        // ON_HOLD, ON HOLD
}

// Normalize maps a raw row onto the canonical order shape. It reconciles the
// two column-naming generations with a fixed precedence (new-generation key
// first, legacy key second) and tolerates sloppy source typing. The only
// failure mode is a record with no identifier at all, which is a
// data-integrity fault rather than a lookup miss.
//
// Normalize is pure apart from the LastUpdate fallback to the wall clock
// when no source timestamp is usable.
func Normalize(rec RawRecord) (*Order, error) {
	id, ok := rec.Text("order_id", "id")
	if !ok {
		return nil, ErrMalformedRecord
	}

	o := &Order{
		OrderID: id,
		Status:  normalizeStatus(rec),
	}

	if eta, ok := rec.Date("eta", "estimated_delivery_date"); ok {
		o.ETA = eta.Format("2006-01-02")
	}
	o.Carrier, _ = rec.Text("carrier", "delivery_partner")
	o.TrackingNumber, _ = rec.Text("tracking_number", "tracking_id", "tracking")

	if upd, ok := rec.Date("last_update", "updated_at", "order_date", "created_at"); ok {
		o.LastUpdate = upd.Format(time.RFC3339)
	} else {
		o.LastUpdate = time.Now().UTC().Format(time.RFC3339)
	}

	o.IssueFlag, _ = rec.Text("issue_flag", "issue_type")
	o.Notes, _ = rec.Text("notes", "order_notes")

	o.CustomerName, _ = rec.Text("customer_name", "name")
	o.CustomerPhone, _ = rec.Text("customer_phone", "phone")
	o.ProductID, _ = rec.Text("product_id")
	o.ProductName, _ = rec.Text("product_name", "product")
	o.Category, _ = rec.Text("category", "product_category")
	o.ShippingAddress, _ = rec.Text("shipping_address", "address")
	o.PaymentMethod, _ = rec.Text("payment_method")
	if placed, ok := rec.Date("order_date", "created_at"); ok {
		o.OrderDate = placed.Format("2006-01-02")
	}
	o.ReturnEligibility, _ = rec.Text("return_eligibility", "return_eligible")
	if amount, ok := rec.Number("refund_amount"); ok {
		o.RefundAmount = &amount
	}

	return o, nil
}

// normalizeStatus reads either status column generation and classifies the
// value by keyword family. A value matching no family passes through
// uppercased: new upstream statuses degrade to opaque strings instead of
// failing the lookup.
func normalizeStatus(rec RawRecord) Status {
	raw, ok := rec.Text("status", "order_status")
	if !ok {
		return StatusProcessing
	}
	upper := strings.ToUpper(strings.TrimSpace(raw))
	for _, family := range statusFamilies {
		if strings.Contains(upper, family.keyword) {
			return family.status
		}
	}
	return Status(upper)
}
