// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

package reference

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/amwozniak/entertainment-api/internal/platform/apperr"
)

// Service resolves user-supplied country and language values against the
// ISO reference tables.
//
// The tables are static after seeding, so both indexes are built on first
// successful load and held in memory for the life of the process. A failed
// load is not latched: the next call retries, so a transient database error
// around startup does not poison every later validation.
type Service struct {
	repo Repository

	mu     sync.Mutex
	loaded bool

	countryIndex  map[string]*Country
	languageIndex map[string]*Language
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CheckCountry resolves a country name or code to its alpha-2 code.
//
// Empty input is a no-op and returns "". An unresolvable value yields an
// Unprocessable Entity error naming the attempted value.
func (service *Service) CheckCountry(ctx context.Context, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}

	if err := service.load(ctx); err != nil {
		return "", err
	}

	if country, ok := service.countryIndex[foldKey(trimmed)]; ok {
		return country.Alpha2, nil
	}

	return "", apperr.Unprocessable(fmt.Sprintf(
		"Invalid country name: '%s'. Use an ISO 3166 country name or code.", value))
}

// CheckLanguage resolves a language name or code to its canonical name.
//
// Empty input is a no-op and returns "". An unresolvable value yields an
// Unprocessable Entity error naming the attempted value.
func (service *Service) CheckLanguage(ctx context.Context, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}

	if err := service.load(ctx); err != nil {
		return "", err
	}

	if language, ok := service.languageIndex[foldKey(trimmed)]; ok {
		return language.Name, nil
	}

	return "", apperr.Unprocessable(fmt.Sprintf(
		"Invalid language name: '%s'. Use an ISO 639 language name or code.", value))
}

// Countries lists all seeded countries, ordered by alpha-2 code.
func (service *Service) Countries(ctx context.Context) ([]*Country, error) {
	return service.repo.ListCountries(ctx)
}

// Languages lists all seeded languages, ordered by alpha-3 code.
func (service *Service) Languages(ctx context.Context) ([]*Language, error) {
	return service.repo.ListLanguages(ctx)
}

// load builds both lookup indexes, latching only on success.
func (service *Service) load(ctx context.Context) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	if service.loaded {
		return nil
	}

	countries, err := service.repo.ListCountries(ctx)
	if err != nil {
		return err
	}
	languages, err := service.repo.ListLanguages(ctx)
	if err != nil {
		return err
	}

	service.countryIndex = make(map[string]*Country, len(countries)*3)
	for _, country := range countries {
		service.countryIndex[foldKey(country.Alpha2)] = country
		service.countryIndex[foldKey(country.Alpha3)] = country
		service.countryIndex[foldKey(country.Name)] = country
		if country.CommonName != nil {
			service.countryIndex[foldKey(*country.CommonName)] = country
		}
	}

	service.languageIndex = make(map[string]*Language, len(languages)*2)
	for _, language := range languages {
		service.languageIndex[foldKey(language.Alpha3)] = language
		service.languageIndex[foldKey(language.Name)] = language
		if language.Alpha2 != nil {
			service.languageIndex[foldKey(*language.Alpha2)] = language
		}
	}

	service.loaded = true
	return nil
}

// accentFold strips combining diacritical marks after NFD decomposition.
var accentFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldKey normalizes a lookup key: trim, strip accents, lower-case.
func foldKey(value string) string {
	folded, _, err := transform.String(accentFold, strings.TrimSpace(value))
	if err != nil {
		folded = value
	}
	return strings.ToLower(folded)
}
