package entity

type UserRole string

const (
	RoleLearner UserRole = "learner"
	RoleAdmin   UserRole = "admin"
)

// ParseRole resolves a role claim into the closed enum.
func ParseRole(s string) (UserRole, bool) {
	switch UserRole(s) {
	case RoleLearner:
		return RoleLearner, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

type User struct {
	Base
	Username     string   `db:"username"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password_hash"`
	Role         UserRole `db:"role"`
}
