package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/constants"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/limiter"
	httpmw "github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/middleware/http"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/provider"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/service"
)

// NewRouter wires every endpoint under /api/v1. Write endpoints carry role
// checks mirroring the workflow: finance submits edits, admins review.
func NewRouter(
	mode provider.AppMode,
	logger *zap.Logger,
	auth httpmw.AuthMiddleware,
	limiterManager *limiter.Manager,
	authService *service.AuthService,
	recordsService *service.RecordsService,
	changesService *service.ChangesService,
	notificationsService *service.NotificationsService,
	adminUsersService *service.AdminUsersService,
	membersService *service.MembersService,
) *gin.Engine {
	if mode != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := engine.Group("/api/v1")

	v1.POST("/auth/login", authService.Login)

	authed := v1.Group("", gin.HandlerFunc(auth))
	{
		authed.POST("/auth/verify-credential",
			httpmw.RateLimit(limiterManager, "verify_credential"),
			authService.VerifyCredential)

		finance := authed.Group("/finance", httpmw.RequireRole(constants.RoleFinance, constants.RoleAdmin))
		{
			finance.GET("/records", recordsService.ListRecords)
			finance.GET("/records/:id", recordsService.GetRecord)
			finance.POST("/records/:id/edits",
				httpmw.RateLimit(limiterManager, "submit_edit"),
				recordsService.SubmitEdit)
			finance.POST("/records/initialize",
				httpmw.RequireRole(constants.RoleAdmin),
				recordsService.InitializeMonth)
		}

		authed.GET("/changes", changesService.ListChangeLogs)
		authed.GET("/changes/:id/comments", changesService.ListComments)

		review := authed.Group("/changes", httpmw.RequireRole(constants.RoleAdmin))
		{
			review.POST("/:id/approve", changesService.Approve)
			review.POST("/:id/comments", changesService.AddComment)
		}

		authed.GET("/notifications", notificationsService.List)
		authed.POST("/notifications/:id/read", notificationsService.MarkRead)

		authed.GET("/members", membersService.List)

		admin := authed.Group("/admin", httpmw.RequireRole(constants.RoleAdmin))
		{
			admin.GET("/users", adminUsersService.List)
			admin.POST("/users", adminUsersService.Create)
			admin.PATCH("/users/:id", adminUsersService.Update)
			admin.DELETE("/users/:id", adminUsersService.Delete)
		}
	}

	logger.Info("Router initialized")
	return engine
}
