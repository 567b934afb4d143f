package engine

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/quicksplit/internal/models"
)

// Totals is the recomputed aggregate of a receipt.
type Totals struct {
	Subtotal   decimal.Decimal
	TaxAmount  decimal.Decimal
	TipAmount  decimal.Decimal
	GrandTotal decimal.Decimal
}

// ComputeTotals aggregates the receipt-level figures from items and policy.
//
// The subtotal is the priced total of all units. Claims affect attribution,
// never the receipt's own total, so an unclaimed remainder still counts.
func ComputeTotals(items []models.LineItem, cfg models.SplitConfig) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.TotalPrice())
	}

	tax := decimal.Zero
	if cfg.TaxEnabled {
		tax = subtotal.Mul(cfg.TaxRate)
	}
	tip := subtotal.Mul(cfg.TipRate)

	return Totals{
		Subtotal:   subtotal,
		TaxAmount:  tax,
		TipAmount:  tip,
		GrandTotal: subtotal.Add(tax).Add(tip),
	}
}

// Recompute refreshes the four cached totals on the receipt from its items
// and policy. Idempotent; the service layer calls this as the last step of
// every mutation, making it the sole writer of these fields.
func Recompute(r *models.Receipt) {
	t := ComputeTotals(r.Items, models.SplitConfig{
		TaxEnabled: r.TaxEnabled,
		TaxRate:    r.TaxRate,
		TipRate:    r.TipRate,
	})
	r.Subtotal = t.Subtotal
	r.TaxAmount = t.TaxAmount
	r.TipAmount = t.TipAmount
	r.GrandTotal = t.GrandTotal
}

// Breakdown is one participant's computed liability for a receipt.
type Breakdown struct {
	// Subtotal is the sum of the participant's share amounts across items.
	Subtotal decimal.Decimal

	// TaxShare and TipShare are the receipt's tax and tip scaled by the
	// participant's fraction of the subtotal.
	TaxShare decimal.Decimal
	TipShare decimal.Decimal

	// Total is Subtotal + TaxShare + TipShare.
	Total decimal.Decimal
}

// ParticipantBreakdown computes one participant's full liability, including
// proportional tax and tip, from a receipt whose totals are current.
//
// A zero receipt subtotal (no items) yields an all-zero breakdown; the
// proportion is never computed against a zero denominator.
func ParticipantBreakdown(r *models.Receipt, participantID string) Breakdown {
	sub := decimal.Zero
	for _, item := range r.Items {
		if claim, ok := item.ClaimBy(participantID); ok {
			sub = sub.Add(ShareAmount(item, claim))
		}
	}

	if r.Subtotal.Sign() == 0 {
		return Breakdown{
			Subtotal: decimal.Zero,
			TaxShare: decimal.Zero,
			TipShare: decimal.Zero,
			Total:    decimal.Zero,
		}
	}

	// Multiply before dividing so exact fractions (e.g. doubling) survive.
	taxShare := sub.Mul(r.TaxAmount).Div(r.Subtotal)
	tipShare := sub.Mul(r.TipAmount).Div(r.Subtotal)

	return Breakdown{
		Subtotal: sub,
		TaxShare: taxShare,
		TipShare: tipShare,
		Total:    sub.Add(taxShare).Add(tipShare),
	}
}

// Splits computes the breakdown for every participant on the receipt,
// keyed by participant ID.
func Splits(r *models.Receipt) map[string]Breakdown {
	splits := make(map[string]Breakdown, len(r.Participants))
	for _, p := range r.Participants {
		splits[p.ID] = ParticipantBreakdown(r, p.ID)
	}
	return splits
}
