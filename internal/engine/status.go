package engine

import (
	"fmt"
	"strings"

	"github.com/mmynk/quicksplit/internal/models"
)

// SharingStatus renders a human-readable summary of how an item is claimed,
// e.g. "Shared by 3 people, 2 individual portions". Shared claims count as
// one person each; exclusive claims sum their portions. Returns the empty
// string for an unclaimed item.
func SharingStatus(item models.LineItem) string {
	people := 0
	portions := 0
	for _, c := range item.Claims {
		if c.IsShared() {
			people++
		} else {
			portions += c.Portions
		}
	}

	var parts []string
	if people > 0 {
		parts = append(parts, fmt.Sprintf("Shared by %d people", people))
	}
	if portions > 0 {
		parts = append(parts, fmt.Sprintf("%d individual portions", portions))
	}
	return strings.Join(parts, ", ")
}
