// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

package reference

import "context"

// Repository provides read access to the seeded ISO reference tables.
type Repository interface {
	ListCountries(ctx context.Context) ([]*Country, error)
	ListLanguages(ctx context.Context) ([]*Language, error)
}
