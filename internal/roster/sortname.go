package roster

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/darthcode66/Snap-Self/internal/models"
)

// SortName derives the "Last, First Middle" key used for alphabetical ordering.
// Single-token names pass through unchanged and blank names yield "".
func SortName(full string) string {
	tokens := strings.Fields(full)
	switch len(tokens) {
	case 0:
		return ""
	case 1:
		return tokens[0]
	default:
		last := tokens[len(tokens)-1]
		return last + ", " + strings.Join(tokens[:len(tokens)-1], " ")
	}
}

// NormalizeName trims a display name and collapses inner whitespace.
func NormalizeName(full string) string {
	return strings.Join(strings.Fields(full), " ")
}

// ParseSortOrder maps a raw value onto a known order, defaulting to alphabetical.
func ParseSortOrder(raw string) (models.SortOrder, bool) {
	switch models.SortOrder(strings.ToUpper(strings.TrimSpace(raw))) {
	case "", models.SortOrderAlphabetical:
		return models.SortOrderAlphabetical, true
	case models.SortOrderRegistrationNumber:
		return models.SortOrderRegistrationNumber, true
	default:
		return "", false
	}
}

// Order returns a copy of students arranged for a session roster. Ties keep input order.
func Order(students []models.Student, order models.SortOrder) []models.Student {
	ordered := make([]models.Student, len(students))
	copy(ordered, students)

	// collators carry buffers and must not be shared across goroutines
	col := collate.New(language.BrazilianPortuguese)
	key := func(s models.Student) string { return s.SortName }
	if order == models.SortOrderRegistrationNumber {
		key = func(s models.Student) string { return s.Registration() }
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return col.CompareString(key(ordered[i]), key(ordered[j])) < 0
	})
	return ordered
}
