package provider

import (
	"context"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/constants"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/logic"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/pkg/roles"
)

// roleDirectoryAdapter translates between the typed roles the logic layer
// uses and the plain role names pkg/roles stores.
type roleDirectoryAdapter struct {
	dir *roles.Directory
}

var _ logic.RoleDirectory = (*roleDirectoryAdapter)(nil)

func (a *roleDirectoryAdapter) HasRole(ctx context.Context, userID string, role constants.Role) (bool, error) {
	return a.dir.HasRole(ctx, userID, role.String())
}

func (a *roleDirectoryAdapter) GetUserRole(ctx context.Context, userID string) (constants.Role, error) {
	name, err := a.dir.GetUserRole(ctx, userID)
	if err != nil {
		return constants.RoleUnknown, err
	}
	return constants.ParseRole(name), nil
}

func (a *roleDirectoryAdapter) ListUsersWithRole(ctx context.Context, role constants.Role) ([]string, error) {
	return a.dir.ListUsersWithRole(ctx, role.String())
}

func (a *roleDirectoryAdapter) AssignRole(ctx context.Context, userID string, role constants.Role) error {
	return a.dir.AssignRole(ctx, userID, role.String())
}

func (a *roleDirectoryAdapter) RemoveRole(ctx context.Context, userID string, role constants.Role) error {
	return a.dir.RemoveRole(ctx, userID, role.String())
}
