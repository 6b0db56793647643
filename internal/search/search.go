// Package search provides the three lookup strategies over a snapshot of
// the store's records. None of them mutate the snapshot they are given,
// except BinaryByID which sorts a working copy of its own.
package search

import (
	"sort"
	"strings"

	"simak/internal/models"
)

// LinearByName scans front to back and returns every student whose name
// contains the trimmed query, case-insensitive, in original order. O(n).
func LinearByName(list []models.Student, query string) []models.Student {
	keyword := strings.ToLower(strings.TrimSpace(query))
	var found []models.Student
	for _, s := range list {
		if strings.Contains(strings.ToLower(s.Name), keyword) {
			found = append(found, s)
		}
	}
	return found
}

// SequentialByHobby is the same scan applied to the hobby field. O(n).
func SequentialByHobby(list []models.Student, query string) []models.Student {
	keyword := strings.ToLower(strings.TrimSpace(query))
	var found []models.Student
	for _, s := range list {
		if strings.Contains(strings.ToLower(s.Hobby), keyword) {
			found = append(found, s)
		}
	}
	return found
}

// BinaryByID sorts a working copy ascending by id and binary-searches it for
// an exact match on the trimmed id. Callers must pre-validate the id with
// validation.ValidateID. On a hit it also collects adjacent records sharing
// the same id, scanning down from the probe point and then up; with the
// store's uniqueness invariant intact this returns at most one record.
// Returns an empty result when no record matches.
func BinaryByID(list []models.Student, id string) []models.Student {
	target := strings.TrimSpace(id)

	sorted := make([]models.Student, len(list))
	copy(sorted, list)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	low, high := 0, len(sorted)-1
	for low <= high {
		mid := (low + high) / 2
		switch {
		case sorted[mid].ID == target:
			var found []models.Student
			for i := mid; i >= 0 && sorted[i].ID == target; i-- {
				found = append(found, sorted[i])
			}
			for i := mid + 1; i < len(sorted) && sorted[i].ID == target; i++ {
				found = append(found, sorted[i])
			}
			return found
		case sorted[mid].ID < target:
			low = mid + 1
		default:
			high = mid - 1
		}
	}
	return nil
}
