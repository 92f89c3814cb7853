package order

import (
	"fmt"
	"strings"
	"time"
)

// Summary renders a canonical order as one spoken-style paragraph, one
// sentence per populated field, always ending with the last-update clause.
// A field that fails to render degrades to its raw value; formatting never
// aborts the whole summary.
func Summary(o *Order) string {
	clauses := []string{
		fmt.Sprintf("Order %s is %s", o.OrderID, statusPhrase(o.Status)),
	}

	if o.CustomerName != "" {
		clauses = append(clauses, fmt.Sprintf("The order was placed by %s", o.CustomerName))
	}
	if o.CustomerPhone != "" {
		clauses = append(clauses, fmt.Sprintf("The contact number on file is %s", o.CustomerPhone))
	}
	if o.ProductName != "" {
		clauses = append(clauses, fmt.Sprintf("It contains %s", o.ProductName))
	}
	if o.Category != "" {
		clauses = append(clauses, fmt.Sprintf("The product category is %s", o.Category))
	}
	if o.ETA != "" {
		clauses = append(clauses, fmt.Sprintf("Estimated delivery is %s", longDate(o.ETA)))
	}
	switch {
	case o.TrackingNumber != "" && o.Carrier != "":
		clauses = append(clauses, fmt.Sprintf("It is shipping via %s with tracking number %s", o.Carrier, o.TrackingNumber))
	case o.Carrier != "":
		clauses = append(clauses, fmt.Sprintf("It is shipping via %s", o.Carrier))
	case o.TrackingNumber != "":
		clauses = append(clauses, fmt.Sprintf("The tracking number is %s", o.TrackingNumber))
	}
	if o.ShippingAddress != "" {
		clauses = append(clauses, fmt.Sprintf("It will be delivered to %s", o.ShippingAddress))
	}
	if o.PaymentMethod != "" {
		clauses = append(clauses, fmt.Sprintf("It was paid for with %s", o.PaymentMethod))
	}
	if o.OrderDate != "" {
		clauses = append(clauses, fmt.Sprintf("The order was placed on %s", longDate(o.OrderDate)))
	}
	if o.IssueFlag != "" {
		clauses = append(clauses, fmt.Sprintf("There is an issue flagged on this order: %s", o.IssueFlag))
	}
	if o.ReturnEligibility != "" {
		clauses = append(clauses, fmt.Sprintf("Return eligibility: %s", o.ReturnEligibility))
	}
	if o.RefundAmount != nil {
		clauses = append(clauses, fmt.Sprintf("A refund of $%.2f is associated with this order", *o.RefundAmount))
	}
	if o.Notes != "" {
		clauses = append(clauses, fmt.Sprintf("Note on the order: %s", o.Notes))
	}

	clauses = append(clauses, "Last updated: "+longTimestamp(o.LastUpdate))

	return strings.Join(clauses, ". ") + "."
}

// statusPhrase lowers the canonical status into something speakable.
// Passthrough statuses outside the enumeration get the same treatment.
func statusPhrase(s Status) string {
	return strings.ReplaceAll(strings.ToLower(string(s)), "_", " ")
}

// longDate renders YYYY-MM-DD as a long-form date, falling back to the raw
// value when it does not parse.
func longDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("January 2, 2006")
}

// longTimestamp renders an RFC 3339 timestamp as a long-form date and time,
// falling back to the raw value when it does not parse.
func longTimestamp(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Format("January 2, 2006 at 3:04 PM")
}
