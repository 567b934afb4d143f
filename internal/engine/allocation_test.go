package engine

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/quicksplit/internal/models"
)

func mustExclusive(t *testing.T, participantID string, portions int) models.Claim {
	t.Helper()
	c, err := models.NewExclusiveClaim(participantID, portions)
	if err != nil {
		t.Fatalf("NewExclusiveClaim(%q, %d) failed: %v", participantID, portions, err)
	}
	return c
}

func mustShared(t *testing.T, participantID string, groupSize int) models.Claim {
	t.Helper()
	c, err := models.NewSharedClaim(participantID, groupSize)
	if err != nil {
		t.Fatalf("NewSharedClaim(%q, %d) failed: %v", participantID, groupSize, err)
	}
	return c
}

func mustItem(t *testing.T, name, unitPrice string, quantity int) models.LineItem {
	t.Helper()
	item, err := models.NewLineItem(name, decimal.RequireFromString(unitPrice), quantity)
	if err != nil {
		t.Fatalf("NewLineItem(%q) failed: %v", name, err)
	}
	return item
}

func TestRemainingQuantity(t *testing.T) {
	tests := []struct {
		name   string
		item   func(t *testing.T) models.LineItem
		want   int
	}{
		{
			name: "no claims leaves full quantity",
			item: func(t *testing.T) models.LineItem {
				return mustItem(t, "Beef Skewers", "5.00", 3)
			},
			want: 3,
		},
		{
			name: "exclusive claims consume their portions",
			item: func(t *testing.T) models.LineItem {
				item := mustItem(t, "Beef Skewers", "5.00", 3)
				item.Claims = append(item.Claims,
					mustExclusive(t, "x", 2),
					mustExclusive(t, "y", 1),
				)
				return item
			},
			want: 0,
		},
		{
			name: "shared claim consumes one slot regardless of group size",
			item: func(t *testing.T) models.LineItem {
				item := mustItem(t, "Platter", "30.00", 2)
				item.Claims = append(item.Claims, mustShared(t, "a", 5))
				return item
			},
			want: 1,
		},
		{
			name: "over-claiming clamps at zero",
			item: func(t *testing.T) models.LineItem {
				item := mustItem(t, "Fries", "4.00", 1)
				item.Claims = append(item.Claims,
					mustExclusive(t, "a", 3),
					mustExclusive(t, "b", 2),
				)
				return item
			},
			want: 0,
		},
		{
			name: "joiners past zero still register without going negative",
			item: func(t *testing.T) models.LineItem {
				item := mustItem(t, "Platter", "30.00", 1)
				item.Claims = append(item.Claims,
					mustShared(t, "a", 3),
					mustShared(t, "b", 3),
					mustShared(t, "c", 3),
				)
				return item
			},
			want: 0,
		},
		{
			name: "mixed shared and exclusive claims on one item",
			item: func(t *testing.T) models.LineItem {
				item := mustItem(t, "Combo", "10.00", 4)
				item.Claims = append(item.Claims,
					mustShared(t, "a", 2),
					mustShared(t, "b", 2),
					mustExclusive(t, "c", 1),
				)
				return item
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := tt.item(t)
			got := RemainingQuantity(item)
			if got != tt.want {
				t.Errorf("RemainingQuantity() = %d, want %d", got, tt.want)
			}
			if got < 0 {
				t.Errorf("RemainingQuantity() = %d, must never be negative", got)
			}
		})
	}
}

func TestShareAmount(t *testing.T) {
	tests := []struct {
		name  string
		item  func(t *testing.T) models.LineItem
		claim func(t *testing.T) models.Claim
		want  string
	}{
		{
			name: "shared claim owes item total divided by group size",
			item: func(t *testing.T) models.LineItem {
				return mustItem(t, "Platter", "30.00", 1)
			},
			claim: func(t *testing.T) models.Claim {
				return mustShared(t, "a", 3)
			},
			want: "10.00",
		},
		{
			name: "shared claim divides total across all units",
			item: func(t *testing.T) models.LineItem {
				return mustItem(t, "Pitcher", "6.00", 2)
			},
			claim: func(t *testing.T) models.Claim {
				return mustShared(t, "a", 4)
			},
			want: "3.00",
		},
		{
			name: "exclusive claim owes unit price times portions",
			item: func(t *testing.T) models.LineItem {
				return mustItem(t, "Beef Skewers", "5.00", 3)
			},
			claim: func(t *testing.T) models.Claim {
				return mustExclusive(t, "x", 2)
			},
			want: "10.00",
		},
		{
			name: "single exclusive portion",
			item: func(t *testing.T) models.LineItem {
				return mustItem(t, "Beef Skewers", "5.00", 3)
			},
			claim: func(t *testing.T) models.Claim {
				return mustExclusive(t, "y", 1)
			},
			want: "5.00",
		},
		{
			name: "group of one takes the whole item total",
			item: func(t *testing.T) models.LineItem {
				return mustItem(t, "Platter", "30.00", 1)
			},
			claim: func(t *testing.T) models.Claim {
				return mustShared(t, "a", 1)
			},
			want: "30.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShareAmount(tt.item(t), tt.claim(t))
			want := decimal.RequireFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("ShareAmount() = %s, want %s", got, want)
			}
		})
	}
}

func TestShareAmountZeroCountGuard(t *testing.T) {
	// Constructors forbid zero counts; a hand-built claim must still not
	// reach a division fault.
	item := mustItem(t, "Platter", "30.00", 1)
	claim := models.Claim{ParticipantID: "a", Kind: models.ClaimShared, Portions: 0}

	got := ShareAmount(item, claim)
	if !got.IsZero() {
		t.Errorf("ShareAmount() with zero group size = %s, want 0", got)
	}
}
