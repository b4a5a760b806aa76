package games

// Aggregate review ladders, declared worst to best. These mirror the
// categories the store-front datasets ship with, so submitted values must
// match exactly.
var (
	ReviewOverallValues = []string{"Negative", "Mixed", "Positive"}

	ReviewDetailedValues = []string{
		"Very Negative",
		"Negative",
		"Mostly Negative",
		"Mixed",
		"Mostly Positive",
		"Positive",
		"Very Positive",
		"Overwhelmingly Positive",
	}
)
