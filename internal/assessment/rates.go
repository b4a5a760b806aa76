package assessment

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/amwozniak/entertainment-api/internal/catalog/games"
	"github.com/amwozniak/entertainment-api/internal/platform/apperr"
)

// Rate carries an official rate that arrives as either a JSON string or a
// JSON number ("4" and 4 are the same rate).
type Rate string

func (r *Rate) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*r = Rate(asString)
		return nil
	}

	var asNumber json.Number
	if err := json.Unmarshal(data, &asNumber); err != nil {
		return err
	}
	*r = Rate(asNumber.String())
	return nil
}

// rateDomain is the per-category official rate scale. Exactly one of the two
// slices is set; both empty means the category has no official rates.
type rateDomain struct {
	ints []int
	strs []string
}

var rateDomains = map[string]rateDomain{
	"Books":  {ints: []int{1, 2, 3, 4, 5}},
	"Games":  {strs: games.ReviewDetailedValues},
	"Songs":  {},
	"Movies": {ints: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
}

// rateCategories preserves the declaration order for error rendering.
var rateCategories = []string{"Books", "Games", "Songs", "Movies"}

// ValidateOfficialRate checks a rate against the category's scale.
func ValidateOfficialRate(rate, category string) error {
	domain, ok := rateDomains[category]
	if !ok {
		return apperr.ValidationError(fmt.Sprintf(
			"Invalid category. Accessable categories: %s.", renderStrings(rateCategories)))
	}

	if len(domain.ints) == 0 && len(domain.strs) == 0 {
		return apperr.ValidationError(fmt.Sprintf(
			"No official rate system provided for %s category.", category))
	}

	if len(domain.ints) > 0 {
		if value, err := strconv.Atoi(strings.TrimSpace(rate)); err == nil {
			for _, allowed := range domain.ints {
				if value == allowed {
					return nil
				}
			}
		}
		return apperr.ValidationError(fmt.Sprintf(
			"'%s' is not valid official rate. Official rates for '%s' category: %s.",
			rate, category, renderInts(domain.ints)))
	}

	for _, allowed := range domain.strs {
		if rate == allowed {
			return nil
		}
	}
	return apperr.ValidationError(fmt.Sprintf(
		"'%s' is not valid official rate. Official rates for '%s' category: %s.",
		rate, category, renderStrings(domain.strs)))
}

func renderInts(values []int) string {
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = strconv.Itoa(value)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func renderStrings(values []string) string {
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = "'" + value + "'"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
