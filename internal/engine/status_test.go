package engine

import (
	"testing"
)

func TestSharingStatus(t *testing.T) {
	t.Run("unclaimed item has empty status", func(t *testing.T) {
		item := mustItem(t, "Fries", "4.00", 1)
		if got := SharingStatus(item); got != "" {
			t.Errorf("SharingStatus() = %q, want empty", got)
		}
	})

	t.Run("shared claims count as people", func(t *testing.T) {
		item := mustItem(t, "Platter", "30.00", 1)
		item.Claims = append(item.Claims,
			mustShared(t, "a", 3),
			mustShared(t, "b", 3),
			mustShared(t, "c", 3),
		)
		want := "Shared by 3 people"
		if got := SharingStatus(item); got != want {
			t.Errorf("SharingStatus() = %q, want %q", got, want)
		}
	})

	t.Run("exclusive claims sum portions", func(t *testing.T) {
		item := mustItem(t, "Beef Skewers", "5.00", 3)
		item.Claims = append(item.Claims,
			mustExclusive(t, "x", 2),
			mustExclusive(t, "y", 1),
		)
		want := "3 individual portions"
		if got := SharingStatus(item); got != want {
			t.Errorf("SharingStatus() = %q, want %q", got, want)
		}
	})

	t.Run("mixed claims combine both parts", func(t *testing.T) {
		item := mustItem(t, "Combo", "10.00", 4)
		item.Claims = append(item.Claims,
			mustShared(t, "a", 3),
			mustShared(t, "b", 3),
			mustShared(t, "c", 3),
			mustExclusive(t, "d", 2),
		)
		want := "Shared by 3 people, 2 individual portions"
		if got := SharingStatus(item); got != want {
			t.Errorf("SharingStatus() = %q, want %q", got, want)
		}
	})
}
