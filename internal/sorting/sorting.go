// Package sorting provides the three reordering algorithms offered to the
// user. Each algorithm permutes the given slice in place; persistence and
// timing are the store's job.
package sorting

import (
	"sort"
	"strings"

	"simak/internal/models"
)

// Algorithm reorders a slice of students in place.
type Algorithm func([]models.Student)

// BubbleByName sorts ascending by name using classic adjacent-swap bubble
// sort. The comparison is case-sensitive. O(n^2).
func BubbleByName(list []models.Student) {
	n := len(list)
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			if list[j].Name > list[j+1].Name {
				list[j], list[j+1] = list[j+1], list[j]
			}
		}
	}
}

// SelectionByID sorts ascending by id using classic selection sort. The ids
// are fixed-width digit strings, so lexicographic comparison orders them
// numerically. O(n^2).
func SelectionByID(list []models.Student) {
	n := len(list)
	for i := 0; i < n; i++ {
		minIdx := i
		for j := i + 1; j < n; j++ {
			if list[j].ID < list[minIdx].ID {
				minIdx = j
			}
		}
		list[i], list[minIdx] = list[minIdx], list[i]
	}
}

// MergeByMajor sorts ascending by major, case-insensitive, using a stable
// O(n log n) sort.
func MergeByMajor(list []models.Student) {
	sort.SliceStable(list, func(i, j int) bool {
		return strings.ToLower(list[i].Major) < strings.ToLower(list[j].Major)
	})
}
