package assessment

import (
	"fmt"
	"strings"

	"github.com/amwozniak/entertainment-api/internal/platform/apperr"
	"github.com/amwozniak/entertainment-api/pkg/slice"
	"github.com/amwozniak/entertainment-api/pkg/textcase"
)

// Categories are the assessable catalog verticals. Submitted values are
// trimmed and capitalized before matching, so "books" and " BOOKS " both
// resolve to "Books".
var Categories = []string{"Books", "Games", "Movies", "Songs"}

// WishlistValues orders the wishlist ladder from "never" to "as soon as
// possible".
var WishlistValues = []string{
	"Black list",
	"Maybe someday",
	"Definitely someday",
	"Next on the list",
}

// PrivRateValues orders the personal verdict ladder from worst to best.
var PrivRateValues = []string{
	"Never again",
	"Tragedy",
	"Boring",
	"Not bad",
	"Good",
	"Awesome",
}

// NormalizeCategory canonicalizes a submitted category name.
func NormalizeCategory(value string) (string, error) {
	normalized := textcase.SmartTitle(strings.TrimSpace(value), textcase.ModeCapitalize)
	for _, category := range Categories {
		if normalized == category {
			return category, nil
		}
	}
	return "", apperr.Unprocessable(oneOfMessage(Categories))
}

// CheckWishlist validates a wishlist value against the fixed ladder.
func CheckWishlist(value string) error {
	for _, allowed := range WishlistValues {
		if value == allowed {
			return nil
		}
	}
	return apperr.Unprocessable(oneOfMessage(WishlistValues))
}

// CheckPrivRate validates a personal rate against the fixed ladder.
func CheckPrivRate(value string) error {
	for _, allowed := range PrivRateValues {
		if value == allowed {
			return nil
		}
	}
	return apperr.Unprocessable(oneOfMessage(PrivRateValues))
}

// oneOfMessage renders the allowed set as "Input should be 'A', 'B' or 'C'".
func oneOfMessage(values []string) string {
	quoted := slice.Map(values, func(value string) string { return "'" + value + "'" })
	if len(quoted) == 1 {
		return fmt.Sprintf("Input should be %s", quoted[0])
	}
	return fmt.Sprintf("Input should be %s or %s",
		strings.Join(quoted[:len(quoted)-1], ", "), quoted[len(quoted)-1])
}
