// Package engine implements the bill-split allocation rules: remaining
// quantity per item, per-claim share amounts, receipt totals, and
// per-participant liability with proportional tax and tip.
//
// Everything here is a pure function over in-memory values. The engine holds
// no state and performs no I/O; the service layer invokes Recompute as the
// final step of every mutation so cached totals are never stale.
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/quicksplit/internal/models"
)

// RemainingQuantity reports how many units of the item are still unclaimed.
//
// A shared claim consumes a single quantity slot regardless of group size:
// the platter is one unit no matter how many people join it. An exclusive
// claim consumes its portion count. Over-claiming is legal; the result is
// clamped at zero rather than reported as an error, and later joiners still
// register.
func RemainingQuantity(item models.LineItem) int {
	taken := 0
	for _, c := range item.Claims {
		if c.IsShared() {
			taken++
		} else {
			taken += c.Portions
		}
	}
	if taken >= item.Quantity {
		return 0
	}
	return item.Quantity - taken
}

// ShareAmount converts one claim into its monetary contribution toward the
// item's cost, independent of any other claims on the same item.
//
// Shared claims owe an equal slice of the whole line total: itemTotal divided
// by the group size recorded on the claim. Exclusive claims owe unit price ×
// portions taken. Claim constructors reject non-positive counts; a zero
// count on a hand-built claim yields zero rather than a division fault.
func ShareAmount(item models.LineItem, claim models.Claim) decimal.Decimal {
	if claim.Portions <= 0 {
		return decimal.Zero
	}
	if claim.IsShared() {
		return item.TotalPrice().Div(decimal.NewFromInt(int64(claim.Portions)))
	}
	return item.UnitPrice.Mul(decimal.NewFromInt(int64(claim.Portions)))
}
