package service

import (
	"fmt"

	"codolio/internal/domain"
)

// validatePermutation rejects a reorder list that is not exactly the stored
// member set. Reordering only permutes: it never adds, drops or duplicates
// members, so the overwrite is refused rather than trusted.
func validatePermutation(current, submitted []string) error {
	if len(submitted) != len(current) {
		return &domain.ValidationError{
			Message: fmt.Sprintf("orderedIds has %d entries, expected %d", len(submitted), len(current)),
		}
	}

	seen := make(map[string]int, len(current))
	for _, id := range current {
		seen[id]++
	}
	for _, id := range submitted {
		if seen[id] == 0 {
			return &domain.ValidationError{
				Message: fmt.Sprintf("orderedIds contains unknown or duplicate id %s", id),
			}
		}
		seen[id]--
	}

	return nil
}
