package application

import (
	"context"
	"strings"

	entrydomain "github.com/snhrk2951/illumi-contest-services/api/internal/entry/domain"
)

// placeKeyClaimed reports whether any entry other than excludeID currently
// occupies the place key. The store has no cross-entry unique constraint for
// this, so the submission workflow calls it twice: once before locking the
// entry and again at the final commit point.
func placeKeyClaimed(ctx context.Context, entries EntryRepository, placeKey, excludeID string) (bool, error) {
	placeKey = strings.TrimSpace(placeKey)
	if placeKey == "" {
		return false, entrydomain.NewValidationError("住所の候補から選択してください")
	}

	candidates, err := entries.FindByPlaceKey(ctx, placeKey)
	if err != nil {
		return false, err
	}

	for _, candidate := range candidates {
		if candidate.ID == excludeID {
			continue
		}
		claims, err := candidate.Status.ClaimsPlace()
		if err != nil {
			return false, err
		}
		if claims {
			return true, nil
		}
	}
	return false, nil
}
