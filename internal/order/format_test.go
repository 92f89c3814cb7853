package order

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryMinimalOrder(t *testing.T) {
	o := &Order{
		OrderID:    "1005",
		Status:     StatusShipped,
		LastUpdate: "2025-03-28T15:04:00Z",
	}

	got := Summary(o)
	assert.Equal(t, "Order 1005 is shipped. Last updated: March 28, 2025 at 3:04 PM.", got)
}

func TestSummaryClauseOrder(t *testing.T) {
	refund := 12.5
	o := &Order{
		OrderID:           "1005",
		Status:            StatusOnHold,
		ETA:               "2025-04-01",
		Carrier:           "UPS",
		TrackingNumber:    "TRK-1",
		LastUpdate:        "2025-03-28T15:04:00Z",
		IssueFlag:         "address mismatch",
		Notes:             "call before delivery",
		CustomerName:      "Grace Hopper",
		CustomerPhone:     "+1-555-0100",
		ProductName:       "Mechanical keyboard",
		Category:          "electronics",
		ShippingAddress:   "1 Infinite Loop",
		PaymentMethod:     "credit card",
		OrderDate:         "2025-03-01",
		ReturnEligibility: "eligible",
		RefundAmount:      &refund,
	}

	got := Summary(o)

	wantInOrder := []string{
		"Order 1005 is on hold",
		"placed by Grace Hopper",
		"+1-555-0100",
		"Mechanical keyboard",
		"electronics",
		"Estimated delivery is April 1, 2025",
		"shipping via UPS with tracking number TRK-1",
		"1 Infinite Loop",
		"credit card",
		"placed on March 1, 2025",
		"address mismatch",
		"Return eligibility: eligible",
		"$12.50",
		"call before delivery",
		"Last updated: March 28, 2025 at 3:04 PM",
	}

	pos := -1
	for _, want := range wantInOrder {
		idx := strings.Index(got, want)
		assert.Greaterf(t, idx, pos, "clause %q out of order in %q", want, got)
		pos = idx
	}
	assert.True(t, strings.HasSuffix(got, "."))
}

func TestSummaryTrackingCarrierVariants(t *testing.T) {
	base := Order{OrderID: "1", Status: StatusShipped, LastUpdate: "2025-03-28T15:04:00Z"}

	carrierOnly := base
	carrierOnly.Carrier = "UPS"
	assert.Contains(t, Summary(&carrierOnly), "It is shipping via UPS.")

	trackingOnly := base
	trackingOnly.TrackingNumber = "TRK-1"
	assert.Contains(t, Summary(&trackingOnly), "The tracking number is TRK-1.")

	both := base
	both.Carrier = "UPS"
	both.TrackingNumber = "TRK-1"
	got := Summary(&both)
	assert.Contains(t, got, "via UPS with tracking number TRK-1")
	assert.NotContains(t, got, "The tracking number is")
}

func TestSummaryUnparsableDatesDegradeToRawValue(t *testing.T) {
	o := &Order{
		OrderID:    "1",
		Status:     StatusProcessing,
		ETA:        "soonish",
		LastUpdate: "not-a-timestamp",
	}

	got := Summary(o)
	assert.Contains(t, got, "Estimated delivery is soonish")
	assert.Contains(t, got, "Last updated: not-a-timestamp")
}

func TestSummaryPassthroughStatus(t *testing.T) {
	o := &Order{OrderID: "1", Status: Status("AWAITING PICKUP"), LastUpdate: "2025-03-28T15:04:00Z"}
	assert.Contains(t, Summary(o), "Order 1 is awaiting pickup")
}
