package service

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/constants"
)

// Context keys populated by the auth middleware.
const (
	CtxUserID    = "auth_user_id"
	CtxUserEmail = "auth_user_email"
	CtxUserRole  = "auth_user_role"
)

// CurrentUserID returns the authenticated caller's id from the gin context.
func CurrentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, ok := v.(primitive.ObjectID)
	return id, ok
}

// CurrentUserRole returns the authenticated caller's role from the gin context.
func CurrentUserRole(c *gin.Context) (constants.Role, bool) {
	v, ok := c.Get(CtxUserRole)
	if !ok {
		return constants.RoleUnknown, false
	}
	role, ok := v.(constants.Role)
	return role, ok
}
