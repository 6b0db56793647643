package services

import (
	"log"
	"math"
	"sort"

	"simak/internal/apperrors"
	"simak/internal/models"
	"simak/internal/search"
	"simak/internal/sorting"
	"simak/internal/storage"
	"simak/internal/validation"
)

// Search method selectors.
const (
	SearchLinear     = "linear"
	SearchSequential = "sequential"
	SearchBinary     = "binary"
)

// Sort method selectors.
const (
	SortBubble    = "bubble"
	SortSelection = "selection"
	SortMerge     = "merge"
)

// EventPublisher publishes record change events. A publisher failure is
// logged and swallowed: the record is already persisted by then.
type EventPublisher interface {
	PublishStudentEvent(eventType, studentID string) error
}

// StudentService handles business logic for student records. It owns the
// store and notifies the event publisher after every successful mutation.
type StudentService struct {
	store     *storage.Store
	publisher EventPublisher
}

// NewStudentService creates a new StudentService. publisher may be nil.
func NewStudentService(store *storage.Store, publisher EventPublisher) *StudentService {
	return &StudentService{
		store:     store,
		publisher: publisher,
	}
}

// All returns the ordered snapshot of all records.
func (s *StudentService) All() []models.Student {
	return s.store.All()
}

// Count returns the number of records.
func (s *StudentService) Count() int {
	return s.store.Count()
}

// FindByID looks up a single record by its exact id.
func (s *StudentService) FindByID(id string) (models.Student, bool) {
	return s.store.FindByID(id)
}

// Add creates a new record and publishes a student.created event.
func (s *StudentService) Add(name, id, major, hobby, aspiration string) (models.Student, error) {
	student, err := s.store.Add(name, id, major, hobby, aspiration)
	if err != nil {
		return models.Student{}, err
	}
	s.publish("student.created", student.ID)
	return student, nil
}

// Edit updates the record identified by oldID and publishes a
// student.updated event carrying the (possibly new) id.
func (s *StudentService) Edit(oldID, name, newID, major, hobby, aspiration string) (models.Student, error) {
	student, err := s.store.Edit(oldID, name, newID, major, hobby, aspiration)
	if err != nil {
		return models.Student{}, err
	}
	s.publish("student.updated", student.ID)
	return student, nil
}

// Delete removes the record matching id and publishes a student.deleted
// event.
func (s *StudentService) Delete(id string) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.publish("student.deleted", id)
	return nil
}

func (s *StudentService) publish(eventType, studentID string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishStudentEvent(eventType, studentID); err != nil {
		log.Printf("Warning: failed to publish %s event for student %s: %v", eventType, studentID, err)
	}
}

// Search runs the selected lookup strategy over a snapshot of the store.
// Binary search requires a well-formed 12-digit id and rejects anything
// else before probing.
func (s *StudentService) Search(method, query string) ([]models.Student, error) {
	snapshot := s.store.All()
	switch method {
	case SearchLinear:
		return search.LinearByName(snapshot, query), nil
	case SearchSequential:
		return search.SequentialByHobby(snapshot, query), nil
	case SearchBinary:
		if !validation.ValidateID(query) {
			return nil, apperrors.Validation("ID must be exactly 12 digits for binary search")
		}
		return search.BinaryByID(snapshot, query), nil
	default:
		return nil, apperrors.Validationf("unknown search method: %s", method)
	}
}

// Sort reorders the store with the selected algorithm, persists the new
// order and returns the elapsed time in milliseconds.
func (s *StudentService) Sort(method string) (float64, error) {
	var alg sorting.Algorithm
	switch method {
	case SortBubble:
		alg = sorting.BubbleByName
	case SortSelection:
		alg = sorting.SelectionByID
	case SortMerge:
		alg = sorting.MergeByMajor
	default:
		return 0, apperrors.Validationf("unknown sort method: %s", method)
	}
	return s.store.Sort(alg)
}

// MajorCount is one row of the major distribution.
type MajorCount struct {
	Major      string  `json:"major"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// AspirationCount is one row of the aspiration ranking.
type AspirationCount struct {
	Aspiration string `json:"aspiration"`
	Count      int    `json:"count"`
}

// Stats summarises the current records.
type Stats struct {
	Total          int               `json:"total"`
	Majors         []MajorCount      `json:"majors"`
	TopAspirations []AspirationCount `json:"top_aspirations"`
}

// Stats computes the distribution of majors (count plus percentage) and the
// five most common aspirations from a snapshot.
func (s *StudentService) Stats() Stats {
	snapshot := s.store.All()
	stats := Stats{Total: len(snapshot)}
	if stats.Total == 0 {
		return stats
	}

	majorCounts := make(map[string]int)
	aspirationCounts := make(map[string]int)
	for _, st := range snapshot {
		majorCounts[st.Major]++
		aspirationCounts[st.Aspiration]++
	}

	for major, count := range majorCounts {
		pct := float64(count) / float64(stats.Total) * 100
		stats.Majors = append(stats.Majors, MajorCount{
			Major:      major,
			Count:      count,
			Percentage: math.Round(pct*100) / 100,
		})
	}
	sort.Slice(stats.Majors, func(i, j int) bool {
		if stats.Majors[i].Count != stats.Majors[j].Count {
			return stats.Majors[i].Count > stats.Majors[j].Count
		}
		return stats.Majors[i].Major < stats.Majors[j].Major
	})

	for aspiration, count := range aspirationCounts {
		stats.TopAspirations = append(stats.TopAspirations, AspirationCount{Aspiration: aspiration, Count: count})
	}
	sort.Slice(stats.TopAspirations, func(i, j int) bool {
		if stats.TopAspirations[i].Count != stats.TopAspirations[j].Count {
			return stats.TopAspirations[i].Count > stats.TopAspirations[j].Count
		}
		return stats.TopAspirations[i].Aspiration < stats.TopAspirations[j].Aspiration
	})
	if len(stats.TopAspirations) > 5 {
		stats.TopAspirations = stats.TopAspirations[:5]
	}

	return stats
}
