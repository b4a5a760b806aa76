// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

package sec

import (
	"github.com/amwozniak/entertainment-api/internal/platform/apperr"
)

// # Record-Level Authorization

// AuthorOrAdminMessage is the response body sent when a caller tries to
// mutate a record they do not own.
const AuthorOrAdminMessage = "Only a user with the 'admin' role or the author " +
	"of the database record can change or delete the record from the database."

// Principal describes the authenticated caller for authorization decisions.
type Principal interface {
	Username() string
	Role() UserRole
}

// claimsPrincipal adapts verified JWT claims to the Principal interface.
type claimsPrincipal struct {
	claims *AuthClaims
}

func (p claimsPrincipal) Username() string { return p.claims.Username }
func (p claimsPrincipal) Role() UserRole   { return UserRole(p.claims.Role) }

// AsPrincipal exposes the claims as an authorization Principal.
func (c *AuthClaims) AsPrincipal() Principal {
	return claimsPrincipal{claims: c}
}

// CheckAuthorOrAdmin enforces the owner-or-admin mutation rule.
//
// Admins may mutate any record. Everyone else may only mutate records whose
// createdBy matches their own username. Any other combination is rejected
// with a Forbidden error carrying [AuthorOrAdminMessage].
func CheckAuthorOrAdmin(p Principal, createdBy string) error {
	if p.Role().AtLeast(RoleAdmin) {
		return nil
	}
	if p.Username() == createdBy {
		return nil
	}

	return apperr.Forbidden(AuthorOrAdminMessage)
}
