package scite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	cases := []struct {
		name   string
		author Author
		want   string
	}{
		{"explicit name wins", Author{AuthorName: "Jane Q. Doe", Given: "J", Family: "D"}, "Jane Q. Doe"},
		{"given and family joined", Author{Given: "Jane", Family: "Doe"}, "Jane Doe"},
		{"given only", Author{Given: "Jane"}, "Jane"},
		{"family only", Author{Family: "Doe"}, "Doe"},
		{"nothing usable", Author{}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.author.DisplayName())
		})
	}
}

func TestORCIDValue(t *testing.T) {
	cases := []struct {
		name   string
		author Author
		want   string
	}{
		{"primary field wins", Author{ORCID: "0000-0001", AuthorORCID: "0000-0002"}, "0000-0001"},
		{"fallback field", Author{AuthorORCID: "0000-0002"}, "0000-0002"},
		{"absent", Author{}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.author.ORCIDValue())
		})
	}
}

func TestTallyEmpty(t *testing.T) {
	zero := 0
	var nilTally *Tally
	assert.True(t, nilTally.Empty())
	assert.True(t, (&Tally{}).Empty())
	assert.False(t, (&Tally{Total: &zero}).Empty())
	assert.False(t, (&Tally{Contradicting: &zero}).Empty())
}
