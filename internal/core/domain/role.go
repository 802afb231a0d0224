package domain

// Role is the coarse portal classification used to pick a dashboard. It
// is not a security boundary; authorization is enforced by the directory
// backend. The type is closed: exactly two values exist.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ResolveRole derives the role from an auth record. Precedence, first
// match wins:
//
//  1. an explicit top-level or nested role/user_type equal to "admin"
//  2. is_superuser or is_staff on the nested user object
//  3. a top-level is_admin flag
//
// Everything else, including a nil or partial record, resolves to
// RoleUser. The function is pure and total.
func ResolveRole(rec *AuthRecord) Role {
	if rec == nil {
		return RoleUser
	}
	if rec.Role == string(RoleAdmin) || rec.UserType == string(RoleAdmin) {
		return RoleAdmin
	}
	if rec.User != nil {
		if rec.User.Role == string(RoleAdmin) || rec.User.UserType == string(RoleAdmin) {
			return RoleAdmin
		}
		if rec.User.IsSuperuser || rec.User.IsStaff {
			return RoleAdmin
		}
	}
	if rec.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}
