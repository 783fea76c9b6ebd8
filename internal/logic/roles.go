package logic

import (
	"context"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/constants"
)

// RoleDirectory is the role lookup and assignment collaborator. The production
// implementation lives in pkg/roles on top of Ory Keto; tests use fakes.
type RoleDirectory interface {
	HasRole(ctx context.Context, userID string, role constants.Role) (bool, error)
	GetUserRole(ctx context.Context, userID string) (constants.Role, error)
	ListUsersWithRole(ctx context.Context, role constants.Role) ([]string, error)
	AssignRole(ctx context.Context, userID string, role constants.Role) error
	RemoveRole(ctx context.Context, userID string, role constants.Role) error
}
