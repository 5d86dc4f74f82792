package converter

import (
	"errors"
	"sort"

	"github.com/highlinecommerce/packiyo-po-converter/internal/types"
)

// ErrNoLocations is returned when no location in the export has a single
// numeric on-hand value.
var ErrNoLocations = errors.New("no locations with numeric inventory values were found in this file")

// LocationCandidates returns every distinct location with a flag saying
// whether at least one of its rows has a numeric on-hand value. The result
// is sorted by name.
func LocationCandidates(rows []types.InventoryRow) []types.LocationCandidate {
	hasStock := make(map[string]bool)
	for _, row := range rows {
		if _, seen := hasStock[row.Location]; !seen {
			hasStock[row.Location] = false
		}
		if !hasStock[row.Location] && IsNumeric(row.OnHandCurrent) {
			hasStock[row.Location] = true
		}
	}

	candidates := make([]types.LocationCandidate, 0, len(hasStock))
	for name, stocked := range hasStock {
		candidates = append(candidates, types.LocationCandidate{Name: name, HasStock: stocked})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Name < candidates[j].Name
	})

	return candidates
}

// DiscoverLocations returns the locations that can be offered to the user:
// those with at least one numeric on-hand value, sorted ascending.
//
// RETURNS:
//   - The qualifying location names.
//   - ErrNoLocations if there are none.
func DiscoverLocations(rows []types.InventoryRow) ([]string, error) {
	var locations []string
	for _, candidate := range LocationCandidates(rows) {
		if candidate.HasStock {
			locations = append(locations, candidate.Name)
		}
	}

	if len(locations) == 0 {
		return nil, ErrNoLocations
	}
	return locations, nil
}
