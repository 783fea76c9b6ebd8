package service

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/constants"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dto"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/logic"
)

// AdminUsersService is the admin-only account CRUD surface.
type AdminUsersService struct {
	identity logic.IdentityLogic
	logger   *zap.Logger
}

func NewAdminUsersService(identity logic.IdentityLogic, logger *zap.Logger) *AdminUsersService {
	return &AdminUsersService{
		identity: identity,
		logger:   logger.Named("AdminUsersService"),
	}
}

// Create handles POST /admin/users.
func (s *AdminUsersService) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	role := constants.ParseRole(req.Role)
	if role == constants.RoleUnknown {
		AbortWithError(c, http.StatusBadRequest, "unknown role")
		return
	}

	user, err := s.identity.CreateUser(c.Request.Context(), &logic.CreateUserParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
	})
	if err != nil {
		RespondLogicError(c, err)
		return
	}

	s.logger.Info("User created", zap.String("email", user.Email), zap.String("role", role.String()))
	RespondOK(c, &dto.UserResponse{User: user, Role: role.String()})
}

// Update handles PATCH /admin/users/:id.
func (s *AdminUsersService) Update(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		AbortWithError(c, http.StatusBadRequest, "invalid user id")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	params := &logic.UpdateUserParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.Role != nil {
		role := constants.ParseRole(*req.Role)
		if role == constants.RoleUnknown {
			AbortWithError(c, http.StatusBadRequest, "unknown role")
			return
		}
		params.Role = &role
	}

	user, err := s.identity.UpdateUser(c.Request.Context(), userID, params)
	if err != nil {
		RespondLogicError(c, err)
		return
	}
	RespondOK(c, user)
}

// Delete handles DELETE /admin/users/:id.
func (s *AdminUsersService) Delete(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		AbortWithError(c, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := s.identity.DeleteUser(c.Request.Context(), userID); err != nil {
		RespondLogicError(c, err)
		return
	}
	RespondOKWithMsg(c, nil, "user deleted")
}

// List handles GET /admin/users.
func (s *AdminUsersService) List(c *gin.Context) {
	users, err := s.identity.ListUsers(c.Request.Context())
	if err != nil {
		RespondLogicError(c, err)
		return
	}
	RespondOK(c, users)
}
