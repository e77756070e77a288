package auth

import (
	"context"

	"packable/internal/errors"
)

// Request is the slice of an inbound request a Gate may inspect.
type Request interface {
	Param(name string) string
	Context() context.Context
}

// Gate decides whether claims may proceed with req. A nil claims means an anonymous caller.
// Gates return nil to allow, or an error to deny.
type Gate func(claims *Claims, req Request) error

// OwnerFunc resolves the username owning the resource addressed by req.
type OwnerFunc func(req Request) (string, error)

// ErrLoginRequired is returned when a gate needs an identity and none is present.
var ErrLoginRequired = errors.Unauthenticated("unauthorized")

// ErrForbidden is returned when an identified caller fails a gate.
var ErrForbidden = errors.Forbidden("forbidden")

// Evaluate runs gates in order and returns the first denial.
func Evaluate(claims *Claims, req Request, gates ...Gate) error {
	for _, gate := range gates {
		if err := gate(claims, req); err != nil {
			return err
		}
	}
	return nil
}

// deny picks 401 for anonymous callers and 403 for identified ones.
func deny(claims *Claims) error {
	if claims == nil {
		return ErrLoginRequired
	}
	return ErrForbidden
}

// LoggedIn allows any identified caller.
func LoggedIn(claims *Claims, _ Request) error {
	if claims == nil {
		return ErrLoginRequired
	}
	return nil
}

// Admin allows callers whose token carries is_admin.
func Admin(claims *Claims, _ Request) error {
	if claims == nil || !claims.IsAdmin {
		return deny(claims)
	}
	return nil
}

// CorrectUser allows admins and the user named by the :username path parameter.
func CorrectUser(claims *Claims, req Request) error {
	if claims == nil {
		return ErrLoginRequired
	}
	if claims.IsAdmin || claims.Username == req.Param("username") {
		return nil
	}
	return ErrForbidden
}

// Owner allows admins and the user owning the addressed resource. Resolver errors,
// such as a missing resource, are returned unchanged.
func Owner(resolve OwnerFunc) Gate {
	return func(claims *Claims, req Request) error {
		if claims == nil {
			return ErrLoginRequired
		}
		if claims.IsAdmin {
			return nil
		}
		owner, err := resolve(req)
		if err != nil {
			return err
		}
		if owner != claims.Username {
			return ErrForbidden
		}
		return nil
	}
}
