package service

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/conf"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dto"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/logic"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/pkg/jwt"
)

const defaultTokenLifetime = 8 * time.Hour

// AuthService issues session tokens and re-verifies credentials.
type AuthService struct {
	identity      logic.IdentityLogic
	jwtManager    *jwt.Manager
	tokenLifetime time.Duration
	logger        *zap.Logger
}

func NewAuthService(identity logic.IdentityLogic, jwtManager *jwt.Manager, cfg *conf.JwtConfig, logger *zap.Logger) *AuthService {
	lifetime := defaultTokenLifetime
	if cfg.ExpireMinutes > 0 {
		lifetime = time.Duration(cfg.ExpireMinutes) * time.Minute
	}
	return &AuthService{
		identity:      identity,
		jwtManager:    jwtManager,
		tokenLifetime: lifetime,
		logger:        logger.Named("AuthService"),
	}
}

// Login handles POST /auth/login.
func (s *AuthService) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, role, err := s.identity.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondLogicError(c, err)
		return
	}

	token, err := s.jwtManager.Generate(map[string]interface{}{
		"sub":   user.ID.Hex(),
		"email": user.Email,
		"role":  role.String(),
	}, jwt.WithExpiresAt(time.Now().Add(s.tokenLifetime)))
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err))
		AbortWithError(c, http.StatusInternalServerError, "internal error")
		return
	}

	RespondOK(c, &dto.LoginResponse{
		Token: token,
		Role:  role.String(),
		User:  user,
	})
}

// VerifyCredential handles POST /auth/verify-credential. It re-checks the
// authenticated caller's own password before a sensitive operation and has
// no session side effects.
func (s *AuthService) VerifyCredential(c *gin.Context) {
	var req dto.VerifyCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, ok := CurrentUserID(c)
	if !ok {
		AbortWithError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	if err := s.identity.VerifyCredential(c.Request.Context(), userID, req.Password); err != nil {
		RespondLogicError(c, err)
		return
	}
	RespondOKWithMsg(c, nil, "credential verified")
}
