package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/constants"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/mongodb"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/repository"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/models"
)

// IdentityLogic covers credential checks and admin-managed user accounts.
// Passwords are bcrypt-hashed at rest; roles live in the relationship store.
type IdentityLogic interface {
	Login(ctx context.Context, email, password string) (*models.User, constants.Role, error)
	// VerifyCredential re-checks an authenticated user's password before a
	// sensitive operation. It has no session side effects.
	VerifyCredential(ctx context.Context, userID primitive.ObjectID, password string) error

	CreateUser(ctx context.Context, params *CreateUserParams) (*models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, params *UpdateUserParams) (*models.User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	ListUsers(ctx context.Context) ([]*UserWithRole, error)
}

var _ IdentityLogic = (*identityLogic)(nil)

type CreateUserParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      constants.Role
}

type UpdateUserParams struct {
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
	Role      *constants.Role
}

type UserWithRole struct {
	User *models.User   `json:"user"`
	Role constants.Role `json:"role"`
}

type identityLogic struct {
	userRepo repository.UsersRepository
	roles    RoleDirectory
	logger   *zap.Logger
}

func NewIdentityLogic(userRepo repository.UsersRepository, roles RoleDirectory, logger *zap.Logger) *identityLogic {
	return &identityLogic{
		userRepo: userRepo,
		roles:    roles,
		logger:   logger.Named("IdentityLogic"),
	}
}

func (l *identityLogic) Login(ctx context.Context, email, password string) (*models.User, constants.Role, error) {
	user, err := l.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, constants.RoleUnknown, ErrInvalidCredential
		}
		return nil, constants.RoleUnknown, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, constants.RoleUnknown, ErrInvalidCredential
	}

	role, err := l.roles.GetUserRole(ctx, user.ID.Hex())
	if err != nil {
		l.logger.Error("Login: failed to resolve role", zap.Error(err), zap.Stringer("userID", user.ID))
		return nil, constants.RoleUnknown, fmt.Errorf("failed to resolve role: %w", err)
	}

	return user, role, nil
}

func (l *identityLogic) VerifyCredential(ctx context.Context, userID primitive.ObjectID, password string) error {
	user, err := l.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredential
	}
	return nil
}

func (l *identityLogic) CreateUser(ctx context.Context, params *CreateUserParams) (*models.User, error) {
	if err := validateCreateUser(params); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           primitive.NewObjectID(),
		Email:        params.Email,
		PasswordHash: string(hash),
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := l.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, mongodb.ErrDuplicateEmail) {
			return nil, fmt.Errorf("%w: email already registered", ErrValidation)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := l.roles.AssignRole(ctx, user.ID.Hex(), params.Role); err != nil {
		l.logger.Error("CreateUser: failed to assign role",
			zap.Error(err), zap.Stringer("userID", user.ID), zap.Stringer("role", params.Role))
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}

	return user, nil
}

func validateCreateUser(params *CreateUserParams) error {
	if strings.TrimSpace(params.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if params.Password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	if params.Role == constants.RoleUnknown {
		return fmt.Errorf("%w: unknown role", ErrValidation)
	}
	return nil
}

func (l *identityLogic) UpdateUser(ctx context.Context, id primitive.ObjectID, params *UpdateUserParams) (*models.User, error) {
	opts := []repository.UpdateOption{repository.WithUpdatedAt(time.Now())}
	if params.Email != nil {
		if strings.TrimSpace(*params.Email) == "" {
			return nil, fmt.Errorf("%w: email must not be empty", ErrValidation)
		}
		opts = append(opts, repository.WithUserEmail(*params.Email))
	}
	if params.FirstName != nil {
		opts = append(opts, repository.WithUserFirstName(*params.FirstName))
	}
	if params.LastName != nil {
		opts = append(opts, repository.WithUserLastName(*params.LastName))
	}
	if params.Password != nil {
		if *params.Password == "" {
			return nil, fmt.Errorf("%w: password must not be empty", ErrValidation)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*params.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		opts = append(opts, repository.WithUserPasswordHash(string(hash)))
	}

	if err := l.userRepo.UpdateUser(ctx, id, opts...); err != nil {
		switch {
		case errors.Is(err, mongodb.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, mongodb.ErrDuplicateEmail):
			return nil, fmt.Errorf("%w: email already registered", ErrValidation)
		default:
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	if params.Role != nil {
		if *params.Role == constants.RoleUnknown {
			return nil, fmt.Errorf("%w: unknown role", ErrValidation)
		}
		if err := l.replaceRole(ctx, id, *params.Role); err != nil {
			return nil, err
		}
	}

	user, err := l.userRepo.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	return user, nil
}

func (l *identityLogic) replaceRole(ctx context.Context, id primitive.ObjectID, role constants.Role) error {
	current, err := l.roles.GetUserRole(ctx, id.Hex())
	if err != nil {
		return fmt.Errorf("failed to resolve current role: %w", err)
	}
	if current == role {
		return nil
	}
	if current != constants.RoleUnknown {
		if err := l.roles.RemoveRole(ctx, id.Hex(), current); err != nil {
			return fmt.Errorf("failed to remove role: %w", err)
		}
	}
	if err := l.roles.AssignRole(ctx, id.Hex(), role); err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}
	return nil
}

func (l *identityLogic) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	role, err := l.roles.GetUserRole(ctx, id.Hex())
	if err != nil {
		l.logger.Error("DeleteUser: failed to resolve role", zap.Error(err), zap.Stringer("userID", id))
	}

	if err := l.userRepo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if role != constants.RoleUnknown {
		if err := l.roles.RemoveRole(ctx, id.Hex(), role); err != nil {
			l.logger.Error("DeleteUser: failed to remove role", zap.Error(err), zap.Stringer("userID", id))
		}
	}
	return nil
}

func (l *identityLogic) ListUsers(ctx context.Context) ([]*UserWithRole, error) {
	users, err := l.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	result := make([]*UserWithRole, len(users))
	for i, user := range users {
		role, err := l.roles.GetUserRole(ctx, user.ID.Hex())
		if err != nil {
			l.logger.Warn("ListUsers: failed to resolve role", zap.Error(err), zap.Stringer("userID", user.ID))
			role = constants.RoleUnknown
		}
		result[i] = &UserWithRole{User: user, Role: role}
	}
	return result, nil
}

var IdentityLogicProviderSet = wire.NewSet(NewIdentityLogic, wire.Bind(new(IdentityLogic), new(*identityLogic)))
