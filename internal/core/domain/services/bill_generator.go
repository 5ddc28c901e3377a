package services

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// BillPolicy is the tax and fee policy applied when a bill is rendered.
type BillPolicy struct {
	GSTRate     decimal.Decimal
	DeliveryFee decimal.Decimal
}

// DefaultBillPolicy is 5% GST and a flat delivery fee of 20.
func DefaultBillPolicy() BillPolicy {
	return BillPolicy{
		GSTRate:     decimal.RequireFromString("0.05"),
		DeliveryFee: decimal.NewFromInt(20),
	}
}

type BillLine struct {
	ItemName  string
	UnitPrice decimal.Decimal
	Quantity  int
}

func (l BillLine) ItemTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// BillSummary is the financial part of a bill. GrandTotal is for display
// only; the order keeps its own creation-time total.
type BillSummary struct {
	Subtotal    decimal.Decimal
	GSTAmount   decimal.Decimal
	DeliveryFee decimal.Decimal
	GrandTotal  decimal.Decimal
}

// BillGenerator turns snapshotted order lines into a bill summary. It is
// pure: the same lines always give the same summary.
type BillGenerator struct {
	policy BillPolicy
}

func NewBillGenerator(policy BillPolicy) (BillGenerator, error) {
	if policy.GSTRate.IsNegative() || policy.GSTRate.GreaterThan(decimal.NewFromInt(1)) {
		return BillGenerator{}, errs.NewValueIsOutOfRangeError("gst rate", policy.GSTRate, 0, 1)
	}
	if policy.DeliveryFee.IsNegative() {
		return BillGenerator{}, errs.NewValueIsInvalidErrorWithCause(
			"delivery fee", fmt.Errorf("%s is negative", policy.DeliveryFee),
		)
	}
	return BillGenerator{policy: policy}, nil
}

func (g BillGenerator) Policy() BillPolicy {
	return g.policy
}

// Summarize computes subtotal, GST rounded to two places, the delivery fee
// and the grand total.
func (g BillGenerator) Summarize(lines []BillLine) BillSummary {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.ItemTotal())
	}

	gst := subtotal.Mul(g.policy.GSTRate).Round(2)
	return BillSummary{
		Subtotal:    subtotal,
		GSTAmount:   gst,
		DeliveryFee: g.policy.DeliveryFee,
		GrandTotal:  subtotal.Add(gst).Add(g.policy.DeliveryFee),
	}
}
