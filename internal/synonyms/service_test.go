package synonyms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandConfiguredTerm(t *testing.T) {
	svc := New(DefaultTable())

	got := svc.Expand("laptop")
	assert.Equal(t, []string{"laptop", "notebook", "ultrabook"}, got)
}

func TestExpandIsCaseInsensitive(t *testing.T) {
	svc := New(DefaultTable())

	assert.Equal(t, svc.Expand("laptop"), svc.Expand("LAPTOP"))
	assert.Equal(t, svc.Expand("laptop"), svc.Expand("LapTop"))
}

func TestExpandUnknownTermReturnsItself(t *testing.T) {
	svc := New(DefaultTable())

	got := svc.Expand("Bicycle")
	assert.Equal(t, []string{"bicycle"}, got)
}

func TestExpandIsNotTransitive(t *testing.T) {
	// "laptop" maps to "notebook", but "notebook" has no entry of its own
	svc := New(DefaultTable())

	got := svc.Expand("notebook")
	assert.Equal(t, []string{"notebook"}, got)
}

func TestExpandIsSortedAndDeterministic(t *testing.T) {
	svc := New(map[string][]string{
		"bag": {"zipper", "tote", "Satchel", "tote"},
	})

	for i := 0; i < 10; i++ {
		assert.Equal(t, []string{"bag", "satchel", "tote", "zipper"}, svc.Expand("bag"))
	}
}

func TestLoadBulkMergesWithoutReplacing(t *testing.T) {
	svc := New(map[string][]string{"laptop": {"notebook"}})

	svc.LoadBulk(map[string][]string{
		"laptop":  {"ultrabook"},
		"sneaker": {"shoe"},
	})

	assert.Equal(t, []string{"laptop", "notebook", "ultrabook"}, svc.Expand("laptop"))
	assert.Equal(t, []string{"shoe", "sneaker"}, svc.Expand("sneaker"))
}
