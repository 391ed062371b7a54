package domain

// Role enumerates entitlement tiers. A subject without a stored role is free.
type Role string

const (
	RoleFree  Role = "free"
	RolePro   Role = "pro"
	RoleAdmin Role = "admin"
)

// ParseRole maps a raw string onto a known role. Unknown values are rejected
// rather than defaulted so that admin writes cannot store junk.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleFree, RolePro, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// BypassesQuota reports whether the role skips the daily ledger entirely.
func (r Role) BypassesQuota() bool {
	return r == RolePro || r == RoleAdmin
}
