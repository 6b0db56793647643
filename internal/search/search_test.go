package search_test

import (
	"testing"

	"simak/internal/models"
	"simak/internal/search"

	"github.com/stretchr/testify/assert"
)

func sampleStudents() []models.Student {
	return []models.Student{
		{Name: "Citra Dewi", ID: "100000000003", Major: "Teknik Sipil", Hobby: "Membaca Komik", Aspiration: "Arsitek"},
		{Name: "Alice Putri", ID: "100000000001", Major: "Informatika", Hobby: "Membaca", Aspiration: "Programmer"},
		{Name: "Ali Hamzah", ID: "100000000002", Major: "Matematika", Hobby: "Catur", Aspiration: "Dosen"},
	}
}

func TestLinearByName_CaseInsensitiveSubstringInOriginalOrder(t *testing.T) {
	found := search.LinearByName(sampleStudents(), "ali")
	assert.Len(t, found, 2)
	assert.Equal(t, "Alice Putri", found[0].Name)
	assert.Equal(t, "Ali Hamzah", found[1].Name)
}

func TestLinearByName_TrimsQuery(t *testing.T) {
	found := search.LinearByName(sampleStudents(), "  CITRA  ")
	assert.Len(t, found, 1)
	assert.Equal(t, "Citra Dewi", found[0].Name)
}

func TestLinearByName_NoMatch(t *testing.T) {
	assert.Empty(t, search.LinearByName(sampleStudents(), "zul"))
}

func TestSequentialByHobby_MatchesSubstring(t *testing.T) {
	found := search.SequentialByHobby(sampleStudents(), "membaca")
	assert.Len(t, found, 2)
	assert.Equal(t, "Citra Dewi", found[0].Name)
	assert.Equal(t, "Alice Putri", found[1].Name)
}

func TestSequentialByHobby_NoMatch(t *testing.T) {
	assert.Empty(t, search.SequentialByHobby(sampleStudents(), "renang"))
}

func TestBinaryByID_FindsExactMatch(t *testing.T) {
	found := search.BinaryByID(sampleStudents(), "100000000002")
	assert.Len(t, found, 1)
	assert.Equal(t, "Ali Hamzah", found[0].Name)
}

func TestBinaryByID_TrimsQuery(t *testing.T) {
	found := search.BinaryByID(sampleStudents(), "  100000000001  ")
	assert.Len(t, found, 1)
	assert.Equal(t, "Alice Putri", found[0].Name)
}

func TestBinaryByID_AbsentReturnsEmpty(t *testing.T) {
	assert.Empty(t, search.BinaryByID(sampleStudents(), "999999999999"))
}

func TestBinaryByID_EmptyList(t *testing.T) {
	assert.Empty(t, search.BinaryByID(nil, "100000000001"))
}

func TestBinaryByID_DoesNotMutateInput(t *testing.T) {
	list := sampleStudents()
	search.BinaryByID(list, "100000000001")
	assert.Equal(t, sampleStudents(), list)
}
