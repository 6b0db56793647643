// Package storage implements the file-backed student record store. The
// store owns an ordered list of records; order reflects the most recent sort
// and survives reloads. Every mutating operation persists the full list back
// to the JSON file before returning.
package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"strings"
	"sync"
	"time"

	"simak/internal/apperrors"
	"simak/internal/models"
	"simak/internal/sorting"
	"simak/internal/validation"
)

// Store holds the in-memory record list plus the path it persists to.
// Reads take a snapshot copy; mutations run validate -> mutate -> persist
// under the lock. A failed persist leaves memory mutated but disk stale;
// there is no rollback.
type Store struct {
	mu       sync.RWMutex
	path     string
	students []models.Student
}

// New creates a store backed by the file at path and loads it. A missing
// file is not an error; the store starts empty.
func New(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the in-memory list with the contents of the backing file.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.students = nil
			return nil
		}
		return apperrors.FileOperationf("error reading file: %v", err)
	}

	var list []models.Student
	if err := json.Unmarshal(data, &list); err != nil {
		return apperrors.FileOperationf("error reading file: %v", err)
	}
	s.students = list
	return nil
}

// Save writes the full ordered list to the backing file, pretty-printed.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked()
}

// saveLocked expects the caller to hold at least a read lock.
func (s *Store) saveLocked() error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	list := s.students
	if list == nil {
		list = []models.Student{}
	}
	if err := enc.Encode(list); err != nil {
		return apperrors.FileOperationf("error writing file: %v", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return apperrors.FileOperationf("error writing file: %v", err)
	}
	return nil
}

// Count returns the number of records.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.students)
}

// All returns a copy of the ordered record list.
func (s *Store) All() []models.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Student, len(s.students))
	copy(out, s.students)
	return out
}

// FindByID scans for an exact match on the trimmed id.
func (s *Store) FindByID(id string) (models.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.students[i], true
	}
	return models.Student{}, false
}

func (s *Store) indexOf(id string) int {
	id = strings.TrimSpace(id)
	for i, st := range s.students {
		if st.ID == id {
			return i
		}
	}
	return -1
}

// Add validates the fields, enforces id uniqueness, appends a new record
// with CreatedAt set to now and persists.
func (s *Store) Add(name, id, major, hobby, aspiration string) (models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ok, msg := validation.ValidateAll(name, id, major, hobby, aspiration); !ok {
		return models.Student{}, apperrors.Validation(msg)
	}
	if s.indexOf(id) >= 0 {
		return models.Student{}, apperrors.Validationf("ID %s is already registered", strings.TrimSpace(id))
	}

	student := models.Student{
		Name:       strings.TrimSpace(name),
		ID:         strings.TrimSpace(id),
		Major:      strings.TrimSpace(major),
		Hobby:      strings.TrimSpace(hobby),
		Aspiration: strings.TrimSpace(aspiration),
		CreatedAt:  time.Now().Format(models.CreatedAtLayout),
	}
	s.students = append(s.students, student)
	if err := s.saveLocked(); err != nil {
		return models.Student{}, err
	}
	return student, nil
}

// Edit mutates the record matching oldID in place. CreatedAt stays as it
// was. The id may change as long as the new id is not taken by another
// record.
func (s *Store) Edit(oldID, name, newID, major, hobby, aspiration string) (models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(oldID)
	if idx < 0 {
		return models.Student{}, apperrors.NotFound("no record found to edit")
	}
	if ok, msg := validation.ValidateAll(name, newID, major, hobby, aspiration); !ok {
		return models.Student{}, apperrors.Validation(msg)
	}
	trimmedNew := strings.TrimSpace(newID)
	if trimmedNew != s.students[idx].ID && s.indexOf(trimmedNew) >= 0 {
		return models.Student{}, apperrors.Validation("new ID already belongs to another student")
	}

	s.students[idx].Name = strings.TrimSpace(name)
	s.students[idx].ID = trimmedNew
	s.students[idx].Major = strings.TrimSpace(major)
	s.students[idx].Hobby = strings.TrimSpace(hobby)
	s.students[idx].Aspiration = strings.TrimSpace(aspiration)

	if err := s.saveLocked(); err != nil {
		return models.Student{}, err
	}
	return s.students[idx], nil
}

// Delete removes every record matching the id and persists.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return apperrors.NotFound("no record found to delete")
	}
	id = strings.TrimSpace(id)
	kept := s.students[:0]
	for _, st := range s.students {
		if st.ID != id {
			kept = append(kept, st)
		}
	}
	s.students = kept
	return s.saveLocked()
}

// Sort applies alg to the backing list in place, persists the new order and
// returns the elapsed wall-clock time in milliseconds, rounded to two
// decimals.
func (s *Store) Sort(alg sorting.Algorithm) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	alg(s.students)
	if err := s.saveLocked(); err != nil {
		return 0, err
	}
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	return math.Round(elapsed*100) / 100, nil
}
