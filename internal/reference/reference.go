// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

/*
Package reference manages the ISO master data used to validate free-text
catalog fields.

It maintains two migration-seeded tables:

  - Countries: ISO 3166-1 entries, looked up by name, common name,
    alpha-2, or alpha-3 code. Movie records store the alpha-2 code.
  - Languages: ISO 639 entries, looked up by name, alpha-2, or alpha-3
    code. Movie records store the canonical English name.

Lookups are case-insensitive and accent-insensitive, so "Curaçao" and
"curacao" resolve to the same entry.
*/
package reference

// Country represents one ISO 3166-1 entry.
type Country struct {
	Alpha2     string  `json:"alpha_2"`
	Alpha3     string  `json:"alpha_3"`
	Name       string  `json:"name"`
	CommonName *string `json:"common_name,omitempty"`
}

// Language represents one ISO 639 entry.
//
// Alpha2 is nil for languages that only have a three-letter code.
type Language struct {
	Alpha2 *string `json:"alpha_2,omitempty"`
	Alpha3 string  `json:"alpha_3"`
	Name   string  `json:"name"`
}
