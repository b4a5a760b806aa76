// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

/*
Package textcase provides the casing rules applied to taxonomy values
(genres, game types, playlist subgenres) before they are stored or compared.

Two distinct policies live here and must not be conflated:

  - SmartTitle: display-oriented casing that preserves acronyms ("RPG",
    "TV") while capitalizing ordinary words. Used when encoding taxonomy
    lists for storage.
  - Title: strict word capitalization (every word starts upper, rest
    lower, no acronym exception). Used when comparing submitted tags
    against the accessible set, so that both sides share one convention.

Both transforms are pure and locale-independent.
*/
package textcase

import (
	"strings"
	"unicode"
)

// Mode selects a uniform per-token case transform for [SmartTitle].
type Mode string

const (
	// ModeNone applies the default acronym-preserving policy.
	ModeNone Mode = ""
	// ModeUpper uppercases every token.
	ModeUpper Mode = "upper"
	// ModeLower lowercases every token.
	ModeLower Mode = "lower"
	// ModeCapitalize uppercases the first character of each token and
	// lowercases the remainder.
	ModeCapitalize Mode = "capitalize"
	// ModeTitle applies strict word capitalization to each token.
	ModeTitle Mode = "title"
)

// SmartTitle normalizes free text token by token.
//
// Tokens are produced by splitting on whitespace and rejoined with single
// spaces. When mode is one of the recognized [Mode] values it is applied
// uniformly to every token. Any other value (including [ModeNone]) falls
// back to the default policy: a fully upper-case token is preserved as an
// acronym, every other token gets its first character uppercased and the
// remainder lowercased.
//
//	SmartTitle("TV movie, fantasy", ModeNone) == "TV Movie, Fantasy"
func SmartTitle(text string, mode Mode) string {
	tokens := strings.Fields(text)
	for i, token := range tokens {
		switch mode {
		case ModeUpper:
			tokens[i] = strings.ToUpper(token)
		case ModeLower:
			tokens[i] = strings.ToLower(token)
		case ModeCapitalize:
			tokens[i] = capitalize(token)
		case ModeTitle:
			tokens[i] = Title(token)
		default:
			if isUpper(token) {
				continue
			}
			tokens[i] = capitalize(token)
		}
	}
	return strings.Join(tokens, " ")
}

// Title capitalizes the first letter of every word and lowercases all
// other letters. A word boundary is any non-letter character, so hyphenated
// compounds are capitalized on both sides ("multi-player" -> "Multi-Player").
func Title(text string) string {
	var builder strings.Builder
	builder.Grow(len(text))

	previousIsLetter := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			if previousIsLetter {
				builder.WriteRune(unicode.ToLower(r))
			} else {
				builder.WriteRune(unicode.ToUpper(r))
			}
			previousIsLetter = true
		} else {
			builder.WriteRune(r)
			previousIsLetter = false
		}
	}
	return builder.String()
}

// capitalize uppercases the first character and lowercases the remainder.
func capitalize(token string) string {
	runes := []rune(token)
	if len(runes) == 0 {
		return token
	}
	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// isUpper reports whether the token contains at least one cased character
// and every cased character is upper-case (acronym detection).
func isUpper(token string) bool {
	hasCasedCharacter := false
	for _, r := range token {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCasedCharacter = true
		}
	}
	return hasCasedCharacter
}
