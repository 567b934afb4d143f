// Package service implements the receipt operations exposed by the API:
// receipt lifecycle, item and participant management, claims, and split
// reads. Every mutating operation validates its input first, applies the
// change, recomputes the receipt totals, and persists, so callers never
// observe stale totals.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/quicksplit/internal/engine"
	"github.com/mmynk/quicksplit/internal/metrics"
	"github.com/mmynk/quicksplit/internal/models"
	"github.com/mmynk/quicksplit/internal/storage"
)

var (
	// ErrItemNotFound is returned when an operation references an item
	// that is not on the receipt.
	ErrItemNotFound = errors.New("item not found on receipt")

	// ErrParticipantNotFound is returned when an operation references a
	// participant that is not on the receipt.
	ErrParticipantNotFound = errors.New("participant not found on receipt")

	// ErrClaimNotFound is returned when removing a claim that does not
	// exist.
	ErrClaimNotFound = errors.New("claim not found on receipt")

	// ErrMissingParticipantName is returned when adding or renaming a
	// participant without a name.
	ErrMissingParticipantName = errors.New("participant name is required")
)

// ItemInput is one line handed over by the capture/import collaborator:
// already-parsed name, unit price and quantity. The service performs no text
// parsing.
type ItemInput struct {
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// ReceiptService coordinates receipt mutations against the store.
//
// The HTTP surface is shared, so the service serializes mutations per
// receipt with a mutex keyed by ID.
type ReceiptService struct {
	store    storage.Store
	defaults models.SplitConfig

	locks sync.Map // receipt ID -> *sync.Mutex
}

// NewReceiptService creates a ReceiptService. defaults seeds the tax/tip
// policy of new receipts.
func NewReceiptService(store storage.Store, defaults models.SplitConfig) *ReceiptService {
	return &ReceiptService{store: store, defaults: defaults}
}

func (s *ReceiptService) lockFor(receiptID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(receiptID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// CreateReceipt creates an empty receipt for the owner. cfg overrides the
// server's default tax/tip policy when non-nil.
func (s *ReceiptService) CreateReceipt(ctx context.Context, ownerID, label string, cfg *models.SplitConfig) (*models.Receipt, error) {
	policy := s.defaults
	if cfg != nil {
		policy = *cfg
	}

	receipt := &models.Receipt{
		Label:      label,
		OwnerID:    ownerID,
		TaxEnabled: policy.TaxEnabled,
		TaxRate:    policy.TaxRate,
		TipRate:    policy.TipRate,
		CreatedAt:  time.Now().Unix(),
	}
	engine.Recompute(receipt)

	if err := s.store.CreateReceipt(ctx, receipt); err != nil {
		return nil, fmt.Errorf("failed to create receipt: %w", err)
	}
	return receipt, nil
}

// GetReceipt returns the owner's receipt. A receipt owned by someone else is
// reported as not found rather than forbidden.
func (s *ReceiptService) GetReceipt(ctx context.Context, ownerID, receiptID string) (*models.Receipt, error) {
	receipt, err := s.store.GetReceipt(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt.OwnerID != ownerID {
		return nil, storage.ErrNotFound
	}
	return receipt, nil
}

// ListReceipts returns all of the owner's receipts, newest first.
func (s *ReceiptService) ListReceipts(ctx context.Context, ownerID string) ([]*models.Receipt, error) {
	return s.store.ListReceipts(ctx, ownerID)
}

// DeleteReceipt removes the owner's receipt and everything it owns.
func (s *ReceiptService) DeleteReceipt(ctx context.Context, ownerID, receiptID string) error {
	mu := s.lockFor(receiptID)
	mu.Lock()
	defer mu.Unlock()

	if _, err := s.GetReceipt(ctx, ownerID, receiptID); err != nil {
		return err
	}
	return s.store.DeleteReceipt(ctx, receiptID)
}

// mutate runs apply against the owner's receipt under its lock, recomputes
// totals and persists. apply must either fully succeed or leave the receipt
// untouched; on error nothing is written.
func (s *ReceiptService) mutate(ctx context.Context, ownerID, receiptID string, apply func(*models.Receipt) error) (*models.Receipt, error) {
	mu := s.lockFor(receiptID)
	mu.Lock()
	defer mu.Unlock()

	receipt, err := s.GetReceipt(ctx, ownerID, receiptID)
	if err != nil {
		return nil, err
	}

	if err := apply(receipt); err != nil {
		return nil, err
	}

	start := time.Now()
	engine.Recompute(receipt)
	metrics.RecomputeDuration.Observe(time.Since(start).Seconds())

	if err := s.store.UpdateReceipt(ctx, receipt); err != nil {
		return nil, fmt.Errorf("failed to persist receipt: %w", err)
	}
	return receipt, nil
}

// AddItem appends a line item to the receipt.
func (s *ReceiptService) AddItem(ctx context.Context, ownerID, receiptID string, input ItemInput) (*models.Receipt, error) {
	return s.mutate(ctx, ownerID, receiptID, func(r *models.Receipt) error {
		item, err := models.NewLineItem(input.Name, input.UnitPrice, input.Quantity)
		if err != nil {
			return err
		}
		r.Items = append(r.Items, item)
		return nil
	})
}

// ImportItems appends a batch of items from the capture collaborator.
// The whole batch is validated before any item lands: a bad tuple rejects
// the import with no partial mutation.
func (s *ReceiptService) ImportItems(ctx context.Context, ownerID, receiptID string, inputs []ItemInput) (*models.Receipt, error) {
	return s.mutate(ctx, ownerID, receiptID, func(r *models.Receipt) error {
		items := make([]models.LineItem, 0, len(inputs))
		for i, input := range inputs {
			item, err := models.NewLineItem(input.Name, input.UnitPrice, input.Quantity)
			if err != nil {
				return fmt.Errorf("item %d (%q): %w", i, input.Name, err)
			}
			items = append(items, item)
		}
		r.Items = append(r.Items, items...)
		return nil
	})
}

// RemoveItem deletes a line item and its claims.
func (s *ReceiptService) RemoveItem(ctx context.Context, ownerID, receiptID, itemID string) (*models.Receipt, error) {
	return s.mutate(ctx, ownerID, receiptID, func(r *models.Receipt) error {
		for i := range r.Items {
			if r.Items[i].ID == itemID {
				r.Items = append(r.Items[:i], r.Items[i+1:]...)
				return nil
			}
		}
		return ErrItemNotFound
	})
}

// AddParticipant adds a person to the receipt.
func (s *ReceiptService) AddParticipant(ctx context.Context, ownerID, receiptID, name string) (*models.Receipt, error) {
	return s.mutate(ctx, ownerID, receiptID, func(r *models.Receipt) error {
		if name == "" {
			return ErrMissingParticipantName
		}
		r.Participants = append(r.Participants, models.NewParticipant(name))
		return nil
	})
}

// RenameParticipant changes a participant's display name. Claims reference
// participants by ID, so no claim is touched.
func (s *ReceiptService) RenameParticipant(ctx context.Context, ownerID, receiptID, participantID, name string) (*models.Receipt, error) {
	return s.mutate(ctx, ownerID, receiptID, func(r *models.Receipt) error {
		if name == "" {
			return ErrMissingParticipantName
		}
		for i := range r.Participants {
			if r.Participants[i].ID == participantID {
				r.Participants[i].Name = name
				return nil
			}
		}
		return ErrParticipantNotFound
	})
}

// RemoveParticipant removes a person and strips their claims from every
// item, so nothing on the receipt references a participant who left.
func (s *ReceiptService) RemoveParticipant(ctx context.Context, ownerID, receiptID, participantID string) (*models.Receipt, error) {
	return s.mutate(ctx, ownerID, receiptID, func(r *models.Receipt) error {
		found := false
		for i := range r.Participants {
			if r.Participants[i].ID == participantID {
				r.Participants = append(r.Participants[:i], r.Participants[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return ErrParticipantNotFound
		}

		for i := range r.Items {
			claims := r.Items[i].Claims[:0]
			for _, c := range r.Items[i].Claims {
				if c.ParticipantID != participantID {
					claims = append(claims, c)
				}
			}
			r.Items[i].Claims = claims
		}
		return nil
	})
}

// ShareItem records a participant's claim on an item: exclusive portions
// when shared is false, membership in an equal split of groupSize people
// (passed via portions) when shared is true. An existing claim by the same
// participant is replaced in place, never duplicated.
func (s *ReceiptService) ShareItem(ctx context.Context, ownerID, receiptID, itemID, participantID string, portions int, shared bool) (*models.Receipt, error) {
	return s.mutate(ctx, ownerID, receiptID, func(r *models.Receipt) error {
		if _, ok := r.Participant(participantID); !ok {
			return ErrParticipantNotFound
		}
		item, ok := r.Item(itemID)
		if !ok {
			return ErrItemNotFound
		}

		var claim models.Claim
		var err error
		if shared {
			claim, err = models.NewSharedClaim(participantID, portions)
		} else {
			claim, err = models.NewExclusiveClaim(participantID, portions)
		}
		if err != nil {
			return err
		}

		for i := range item.Claims {
			if item.Claims[i].ParticipantID == participantID {
				item.Claims[i] = claim
				metrics.ClaimsRecorded.Inc()
				return nil
			}
		}
		item.Claims = append(item.Claims, claim)
		metrics.ClaimsRecorded.Inc()
		return nil
	})
}

// RemoveClaim deletes a claim by ID from whichever item holds it.
func (s *ReceiptService) RemoveClaim(ctx context.Context, ownerID, receiptID, claimID string) (*models.Receipt, error) {
	return s.mutate(ctx, ownerID, receiptID, func(r *models.Receipt) error {
		for i := range r.Items {
			claims := r.Items[i].Claims
			for j := range claims {
				if claims[j].ID == claimID {
					r.Items[i].Claims = append(claims[:j], claims[j+1:]...)
					return nil
				}
			}
		}
		return ErrClaimNotFound
	})
}

// UpdateConfig changes the receipt's tax/tip policy and recomputes.
func (s *ReceiptService) UpdateConfig(ctx context.Context, ownerID, receiptID string, cfg models.SplitConfig) (*models.Receipt, error) {
	return s.mutate(ctx, ownerID, receiptID, func(r *models.Receipt) error {
		r.TaxEnabled = cfg.TaxEnabled
		r.TaxRate = cfg.TaxRate
		r.TipRate = cfg.TipRate
		return nil
	})
}

// Splits returns every participant's breakdown for the receipt.
func (s *ReceiptService) Splits(ctx context.Context, ownerID, receiptID string) (*models.Receipt, map[string]engine.Breakdown, error) {
	receipt, err := s.GetReceipt(ctx, ownerID, receiptID)
	if err != nil {
		return nil, nil, err
	}
	return receipt, engine.Splits(receipt), nil
}

// ParticipantTotal returns one participant's breakdown for the receipt.
func (s *ReceiptService) ParticipantTotal(ctx context.Context, ownerID, receiptID, participantID string) (engine.Breakdown, error) {
	receipt, err := s.GetReceipt(ctx, ownerID, receiptID)
	if err != nil {
		return engine.Breakdown{}, err
	}
	if _, ok := receipt.Participant(participantID); !ok {
		return engine.Breakdown{}, ErrParticipantNotFound
	}
	return engine.ParticipantBreakdown(receipt, participantID), nil
}
