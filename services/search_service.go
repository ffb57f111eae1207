package services

import (
	"strings"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"

	"pms/models"
)

// guestNameMatchThreshold is the minimum similarity for a fuzzy guest-name
// hit when the query is not a substring of the name.
const guestNameMatchThreshold = 0.6

// NormalizeSearchTerm folds accents and case so "José" matches "jose".
func NormalizeSearchTerm(input string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(input)))
}

// NewGuestNameMatcher builds a closest-match index over guest names for
// suggestion lookups.
func NewGuestNameMatcher(names []string) *closestmatch.ClosestMatch {
	normalized := make([]string, 0, len(names))
	for _, name := range names {
		normalized = append(normalized, NormalizeSearchTerm(name))
	}
	return closestmatch.New(normalized, []int{2, 3})
}

// similarity is 1 - normalized levenshtein distance between two strings.
func similarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/maxLen
}

// MatchesGuestName reports whether the query matches the guest name,
// either as a normalized substring or fuzzily within the levenshtein
// threshold.
func MatchesGuestName(query, name string) bool {
	q := NormalizeSearchTerm(query)
	n := NormalizeSearchTerm(name)
	if q == "" {
		return true
	}
	if strings.Contains(n, q) {
		return true
	}
	// Compare against individual name parts too, so "smith" finds
	// "John Smith" even with a typo.
	for _, part := range strings.Fields(n) {
		if similarity(q, part) >= guestNameMatchThreshold {
			return true
		}
	}
	return similarity(q, n) >= guestNameMatchThreshold
}

// FilterBookingsByGuestName keeps the bookings with at least one guest
// matching the query.
func FilterBookingsByGuestName(bookings []models.Booking, query string) []models.Booking {
	if strings.TrimSpace(query) == "" {
		return bookings
	}
	filtered := make([]models.Booking, 0, len(bookings))
	for _, booking := range bookings {
		for _, guest := range booking.Guests {
			if MatchesGuestName(query, guest.FullName) {
				filtered = append(filtered, booking)
				break
			}
		}
	}
	return filtered
}

// SuggestGuestNames returns the closest guest names to a query that had
// no exact hits, for the "did you mean" hint on the booking search.
func SuggestGuestNames(cm *closestmatch.ClosestMatch, query string, n int) []string {
	if cm == nil {
		return nil
	}
	return cm.ClosestN(NormalizeSearchTerm(query), n)
}
