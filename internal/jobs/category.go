package jobs

import (
	"strings"

	"golang.org/x/text/cases"
)

// Category is the presentation bucket derived from a job's status text.
type Category int

const (
	CategoryQueued Category = iota
	CategoryRendering
	CategoryCompleted
	CategoryFailed
)

// categoryRules is evaluated in order; the first rule with a matching token wins.
var categoryRules = []struct {
	category Category
	tokens   []string
}{
	{CategoryRendering, []string{"rendering", "active"}},
	{CategoryQueued, []string{"queued"}},
	{CategoryCompleted, []string{"completed"}},
	{CategoryFailed, []string{"failed"}},
}

// Categorize maps free-text status to a Category. Matching is a
// case-insensitive substring test with precedence Rendering/Active, Queued,
// Completed, Failed; anything else is treated as Queued.
func Categorize(status string) Category {
	folded := fold(status)
	for _, rule := range categoryRules {
		for _, token := range rule.tokens {
			if strings.Contains(folded, token) {
				return rule.category
			}
		}
	}
	return CategoryQueued
}

// String returns the display label, also used as the stylesheet class suffix.
func (c Category) String() string {
	switch c {
	case CategoryRendering:
		return "Rendering"
	case CategoryCompleted:
		return "Completed"
	case CategoryFailed:
		return "Failed"
	default:
		return "Queued"
	}
}

// IsActive reports whether jobs in this category belong on the farm-wide view.
func (c Category) IsActive() bool {
	return c == CategoryRendering || c == CategoryQueued
}

// SameUser compares user identifiers with full Unicode case folding.
func SameUser(a, b string) bool {
	return fold(strings.TrimSpace(a)) == fold(strings.TrimSpace(b))
}

func fold(s string) string {
	// Casers carry state, so one is built per call.
	return cases.Fold().String(s)
}
