package domain

import "fmt"

// Role type to distinguish between user roles
type Role string

// Define constants for roles. The set is closed: every switch over Role
// handles exactly these three values and treats anything else as invalid.
const (
	RoleManager Role = "manager"
	RoleTrainer Role = "trainer"
	RoleMember  Role = "member"
)

// ParseRole validates a raw role string coming from config, a login form,
// or a token claim.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleManager, RoleTrainer, RoleMember:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string {
	return string(r)
}
