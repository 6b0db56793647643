package models

// Student represents one student record. The ID is the 12-digit student
// registration number and is the sole identity key; CreatedAt is set once
// when the record is created and never changes afterwards.
type Student struct {
	Name       string `json:"name"`
	ID         string `json:"id"`
	Major      string `json:"major"`
	Hobby      string `json:"hobby"`
	Aspiration string `json:"aspiration"`
	CreatedAt  string `json:"created_at"` // "2006-01-02 15:04:05"
}

// CreatedAtLayout is the timestamp format used in the persisted file.
const CreatedAtLayout = "2006-01-02 15:04:05"
