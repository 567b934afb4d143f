package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/quicksplit/internal/models"
	"github.com/mmynk/quicksplit/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testReceipt(t *testing.T, ownerID string) *models.Receipt {
	t.Helper()

	alice := models.NewParticipant("Alice")
	bob := models.NewParticipant("Bob")

	skewers, err := models.NewLineItem("Beef Skewers", decimal.RequireFromString("5.00"), 3)
	if err != nil {
		t.Fatalf("NewLineItem failed: %v", err)
	}
	exclusive, err := models.NewExclusiveClaim(alice.ID, 2)
	if err != nil {
		t.Fatalf("NewExclusiveClaim failed: %v", err)
	}
	shared, err := models.NewSharedClaim(bob.ID, 2)
	if err != nil {
		t.Fatalf("NewSharedClaim failed: %v", err)
	}
	skewers.Claims = append(skewers.Claims, exclusive, shared)

	return &models.Receipt{
		Label:        "Team Dinner",
		OwnerID:      ownerID,
		Items:        []models.LineItem{skewers},
		Participants: []models.Participant{alice, bob},
		Subtotal:     decimal.RequireFromString("15.00"),
		TaxAmount:    decimal.RequireFromString("1.20"),
		TipAmount:    decimal.RequireFromString("2.25"),
		GrandTotal:   decimal.RequireFromString("18.45"),
		TaxEnabled:   true,
		TaxRate:      decimal.RequireFromString("0.08"),
		TipRate:      decimal.RequireFromString("0.15"),
	}
}

func createTestUser(t *testing.T, store *SQLiteStore, email string) *models.User {
	t.Helper()
	user := models.NewUser(email, "Tester", "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func TestSQLiteStoreReceipts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := createTestUser(t, store, "owner@example.com")

	t.Run("CreateReceipt generates ID and timestamp", func(t *testing.T) {
		receipt := testReceipt(t, owner.ID)

		if err := store.CreateReceipt(ctx, receipt); err != nil {
			t.Fatalf("CreateReceipt failed: %v", err)
		}
		if receipt.ID == "" {
			t.Error("Expected receipt ID to be generated")
		}
		if receipt.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetReceipt round-trips the full graph", func(t *testing.T) {
		original := testReceipt(t, owner.ID)
		if err := store.CreateReceipt(ctx, original); err != nil {
			t.Fatalf("CreateReceipt failed: %v", err)
		}

		retrieved, err := store.GetReceipt(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetReceipt failed: %v", err)
		}

		if retrieved.Label != original.Label {
			t.Errorf("Label = %q, want %q", retrieved.Label, original.Label)
		}
		if !retrieved.GrandTotal.Equal(original.GrandTotal) {
			t.Errorf("GrandTotal = %s, want %s", retrieved.GrandTotal, original.GrandTotal)
		}
		if !retrieved.TaxRate.Equal(original.TaxRate) {
			t.Errorf("TaxRate = %s, want %s", retrieved.TaxRate, original.TaxRate)
		}
		if retrieved.TaxEnabled != original.TaxEnabled {
			t.Errorf("TaxEnabled = %v, want %v", retrieved.TaxEnabled, original.TaxEnabled)
		}
		if len(retrieved.Participants) != 2 {
			t.Fatalf("Participants count = %d, want 2", len(retrieved.Participants))
		}
		if retrieved.Participants[0].Name != "Alice" {
			t.Errorf("first participant = %q, want Alice (insertion order)", retrieved.Participants[0].Name)
		}
		if len(retrieved.Items) != 1 {
			t.Fatalf("Items count = %d, want 1", len(retrieved.Items))
		}

		item := retrieved.Items[0]
		if !item.UnitPrice.Equal(original.Items[0].UnitPrice) {
			t.Errorf("UnitPrice = %s, want %s", item.UnitPrice, original.Items[0].UnitPrice)
		}
		if len(item.Claims) != 2 {
			t.Fatalf("Claims count = %d, want 2", len(item.Claims))
		}
		if item.Claims[0].Kind != models.ClaimExclusive || item.Claims[1].Kind != models.ClaimShared {
			t.Errorf("claim kinds = %q, %q; want exclusive then shared (insertion order)",
				item.Claims[0].Kind, item.Claims[1].Kind)
		}
	})

	t.Run("GetReceipt returns ErrNotFound for unknown ID", func(t *testing.T) {
		_, err := store.GetReceipt(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetReceipt error = %v, want ErrNotFound", err)
		}
	})

	t.Run("UpdateReceipt replaces the child graph", func(t *testing.T) {
		receipt := testReceipt(t, owner.ID)
		if err := store.CreateReceipt(ctx, receipt); err != nil {
			t.Fatalf("CreateReceipt failed: %v", err)
		}

		// Drop all claims and add a second item.
		receipt.Items[0].Claims = nil
		pizza, err := models.NewLineItem("Pizza", decimal.RequireFromString("12.50"), 1)
		if err != nil {
			t.Fatalf("NewLineItem failed: %v", err)
		}
		receipt.Items = append(receipt.Items, pizza)
		receipt.Label = "Updated Dinner"

		if err := store.UpdateReceipt(ctx, receipt); err != nil {
			t.Fatalf("UpdateReceipt failed: %v", err)
		}

		retrieved, err := store.GetReceipt(ctx, receipt.ID)
		if err != nil {
			t.Fatalf("GetReceipt failed: %v", err)
		}
		if retrieved.Label != "Updated Dinner" {
			t.Errorf("Label = %q, want updated label", retrieved.Label)
		}
		if len(retrieved.Items) != 2 {
			t.Fatalf("Items count = %d, want 2", len(retrieved.Items))
		}
		if len(retrieved.Items[0].Claims) != 0 {
			t.Errorf("Claims count = %d, want 0 after update", len(retrieved.Items[0].Claims))
		}
	})

	t.Run("UpdateReceipt returns ErrNotFound for unknown receipt", func(t *testing.T) {
		receipt := testReceipt(t, owner.ID)
		receipt.ID = "nonexistent-id"
		if err := store.UpdateReceipt(ctx, receipt); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("UpdateReceipt error = %v, want ErrNotFound", err)
		}
	})

	t.Run("DeleteReceipt removes the receipt", func(t *testing.T) {
		receipt := testReceipt(t, owner.ID)
		if err := store.CreateReceipt(ctx, receipt); err != nil {
			t.Fatalf("CreateReceipt failed: %v", err)
		}

		if err := store.DeleteReceipt(ctx, receipt.ID); err != nil {
			t.Fatalf("DeleteReceipt failed: %v", err)
		}
		if _, err := store.GetReceipt(ctx, receipt.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetReceipt after delete = %v, want ErrNotFound", err)
		}
		if err := store.DeleteReceipt(ctx, receipt.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second DeleteReceipt = %v, want ErrNotFound", err)
		}
	})

	t.Run("ListReceipts scopes to owner", func(t *testing.T) {
		other := createTestUser(t, store, "other@example.com")
		mine := testReceipt(t, other.ID)
		if err := store.CreateReceipt(ctx, mine); err != nil {
			t.Fatalf("CreateReceipt failed: %v", err)
		}

		receipts, err := store.ListReceipts(ctx, other.ID)
		if err != nil {
			t.Fatalf("ListReceipts failed: %v", err)
		}
		if len(receipts) != 1 {
			t.Fatalf("ListReceipts count = %d, want 1", len(receipts))
		}
		if receipts[0].ID != mine.ID {
			t.Errorf("listed receipt = %s, want %s", receipts[0].ID, mine.ID)
		}
		if len(receipts[0].Items) != 1 {
			t.Errorf("listed receipt items = %d, want 1 (graph loaded)", len(receipts[0].Items))
		}
	})
}

func TestSQLiteStoreUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, store, "alice@example.com")

	byEmail, err := store.GetUserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if byEmail == nil || byEmail.ID != user.ID {
		t.Errorf("GetUserByEmail = %+v, want user %s", byEmail, user.ID)
	}

	byID, err := store.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID == nil || byID.Email != "alice@example.com" {
		t.Errorf("GetUserByID = %+v, want alice", byID)
	}

	missing, err := store.GetUserByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if missing != nil {
		t.Errorf("GetUserByEmail(nobody) = %+v, want nil", missing)
	}
}
