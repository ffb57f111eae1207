package services

import (
	"testing"

	"pms/models"
)

func TestNormalizeSearchTerm(t *testing.T) {
	cases := map[string]string{
		"José":       "jose",
		"  MÜLLER ":  "muller",
		"Anna Rossi": "anna rossi",
	}
	for input, want := range cases {
		if got := NormalizeSearchTerm(input); got != want {
			t.Errorf("NormalizeSearchTerm(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestMatchesGuestName(t *testing.T) {
	cases := []struct {
		query, name string
		want        bool
	}{
		{"rossi", "Anna Rossi", true},
		{"anna", "Anna Rossi", true},
		{"jose", "José García", true},
		{"rosi", "Anna Rossi", true},  // one-letter typo
		{"smth", "John Smith", true},  // missing vowel, still close
		{"garcia", "Anna Rossi", false},
		{"", "Anna Rossi", true},
	}
	for _, tc := range cases {
		if got := MatchesGuestName(tc.query, tc.name); got != tc.want {
			t.Errorf("MatchesGuestName(%q, %q) = %v, want %v", tc.query, tc.name, got, tc.want)
		}
	}
}

func TestFilterBookingsByGuestName(t *testing.T) {
	bookings := []models.Booking{
		{ID: 1, Guests: []models.Guest{{FullName: "Anna Rossi", IsMainGuest: true}}},
		{ID: 2, Guests: []models.Guest{{FullName: "José García", IsMainGuest: true}}},
		{ID: 3, Guests: []models.Guest{{FullName: "John Smith", IsMainGuest: true}, {FullName: "Jane Smith"}}},
	}

	filtered := FilterBookingsByGuestName(bookings, "garcia")
	if len(filtered) != 1 || filtered[0].ID != 2 {
		t.Errorf("garcia matched %v", ids(filtered))
	}

	filtered = FilterBookingsByGuestName(bookings, "smith")
	if len(filtered) != 1 || filtered[0].ID != 3 {
		t.Errorf("smith matched %v", ids(filtered))
	}

	if got := FilterBookingsByGuestName(bookings, ""); len(got) != 3 {
		t.Errorf("empty query matched %d bookings, want all 3", len(got))
	}
}

func ids(bookings []models.Booking) []uint {
	out := make([]uint, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.ID)
	}
	return out
}

func TestSuggestGuestNames(t *testing.T) {
	cm := NewGuestNameMatcher([]string{"Anna Rossi", "José García", "John Smith"})

	suggestions := SuggestGuestNames(cm, "jhon smit", 1)
	if len(suggestions) != 1 || suggestions[0] != "john smith" {
		t.Errorf("suggestions = %v, want [john smith]", suggestions)
	}

	if got := SuggestGuestNames(nil, "anything", 3); got != nil {
		t.Errorf("nil matcher returned %v", got)
	}
}
