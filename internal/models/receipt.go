package models

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/quicksplit/pkg/money"
)

var (
	// ErrInvalidUnitPrice is returned when an item is created with a
	// non-positive unit price.
	ErrInvalidUnitPrice = errors.New("unit price must be positive")

	// ErrInvalidQuantity is returned when an item is created with a
	// non-positive quantity.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// ErrMissingName is returned when an item is created without a name.
	ErrMissingName = errors.New("item name is required")
)

// LineItem represents a single priced, quantified entry on a receipt.
// Items can carry exclusive and shared claims at the same time (two people
// split a platter while a third takes an individual side from the same line).
type LineItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	// Name is the display label. Opaque; no semantic constraints.
	Name string

	// UnitPrice is the price of one unit of this item. Always positive.
	UnitPrice decimal.Decimal

	// Quantity is the number of units on the receipt (3 skewers, 1 platter).
	// Always at least 1.
	Quantity int

	// Claims are the participants' stakes in this item, in insertion order.
	// At most one claim exists per participant; re-sharing replaces.
	Claims []Claim
}

// NewLineItem validates and creates a line item with no claims.
func NewLineItem(name string, unitPrice decimal.Decimal, quantity int) (LineItem, error) {
	if name == "" {
		return LineItem{}, ErrMissingName
	}
	if unitPrice.Sign() <= 0 {
		return LineItem{}, ErrInvalidUnitPrice
	}
	if quantity <= 0 {
		return LineItem{}, ErrInvalidQuantity
	}
	return LineItem{
		ID:        uuid.New().String(),
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
	}, nil
}

// TotalPrice is the priced total of all units: unitPrice × quantity.
func (li LineItem) TotalPrice() decimal.Decimal {
	return money.Mul(li.UnitPrice, li.Quantity)
}

// ClaimBy returns the participant's claim on this item, if any.
func (li LineItem) ClaimBy(participantID string) (Claim, bool) {
	for _, c := range li.Claims {
		if c.ParticipantID == participantID {
			return c, true
		}
	}
	return Claim{}, false
}

// Receipt represents a shared bill to be split among participants.
//
// Subtotal, TaxAmount, TipAmount and GrandTotal are engine-owned caches:
// every mutating operation in the service layer recomputes them before the
// receipt is persisted or returned, so `GrandTotal == Subtotal + TaxAmount +
// TipAmount` holds whenever a receipt is observable.
type Receipt struct {
	// ID is the unique identifier for the receipt (UUID format).
	ID string

	// Label is the human-readable name, typically the restaurant.
	Label string

	// OwnerID is the user account that created this receipt.
	OwnerID string

	// Items are the line items, in insertion order.
	Items []LineItem

	// Participants are the people splitting this receipt.
	Participants []Participant

	// Subtotal is the priced total of all item units, claimed or not.
	Subtotal decimal.Decimal

	// TaxAmount is Subtotal × TaxRate when tax is enabled, else zero.
	TaxAmount decimal.Decimal

	// TipAmount is Subtotal × TipRate.
	TipAmount decimal.Decimal

	// GrandTotal is Subtotal + TaxAmount + TipAmount.
	GrandTotal decimal.Decimal

	// TaxEnabled, TaxRate and TipRate are this receipt's split policy,
	// seeded from the server defaults at creation.
	TaxEnabled bool
	TaxRate    decimal.Decimal
	TipRate    decimal.Decimal

	// CreatedAt is the Unix timestamp when the receipt was created.
	CreatedAt int64
}

// Item returns a pointer to the line item with the given ID, if present.
func (r *Receipt) Item(itemID string) (*LineItem, bool) {
	for i := range r.Items {
		if r.Items[i].ID == itemID {
			return &r.Items[i], true
		}
	}
	return nil, false
}

// Participant returns the participant with the given ID, if present.
func (r *Receipt) Participant(participantID string) (Participant, bool) {
	for _, p := range r.Participants {
		if p.ID == participantID {
			return p, true
		}
	}
	return Participant{}, false
}

// SplitConfig carries the tax/tip policy applied to a receipt.
type SplitConfig struct {
	// TaxEnabled controls whether tax is added to the subtotal.
	TaxEnabled bool

	// TaxRate is the tax fraction applied to the subtotal (0.08 = 8%).
	TaxRate decimal.Decimal

	// TipRate is the tip fraction of the subtotal (recommended 0–0.30,
	// not enforced).
	TipRate decimal.Decimal
}
