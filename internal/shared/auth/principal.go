package auth

import (
	"context"
	"strings"
)

// Role is the account role stored on users and carried in tokens.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleBidder  Role = "bidder"
)

// ParseRole maps free-form input to a known role.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleManager:
		return RoleManager, true
	case RoleBidder:
		return RoleBidder, true
	default:
		return "", false
	}
}

// Principal is the authenticated caller of a request. It is passed explicitly
// to services and repositories, which make every authorization decision.
type Principal struct {
	UserID string
	Role   Role
}

func (p Principal) IsZero() bool { return strings.TrimSpace(p.UserID) == "" }

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// CanManage reports whether the caller may create, edit or assign profiles.
func (p Principal) CanManage() bool {
	return p.Role == RoleAdmin || p.Role == RoleManager
}

type principalKey struct{}

// WithPrincipal stores the principal on a context for non-gin callers.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored by WithPrincipal.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
