package service

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dto"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/logic"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/pkg/pagination"
)

// NotificationsService exposes the caller's own notification feed.
type NotificationsService struct {
	dispatcher logic.NotificationDispatcher
	logger     *zap.Logger
}

func NewNotificationsService(dispatcher logic.NotificationDispatcher, logger *zap.Logger) *NotificationsService {
	return &NotificationsService{
		dispatcher: dispatcher,
		logger:     logger.Named("NotificationsService"),
	}
}

// List handles GET /notifications.
func (s *NotificationsService) List(c *gin.Context) {
	var query dto.ListNotificationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, ok := CurrentUserID(c)
	if !ok {
		AbortWithError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	page, err := s.dispatcher.ListForUser(c.Request.Context(), userID, query.Limit, pagination.PageToken(query.PageToken))
	if err != nil {
		RespondLogicError(c, err)
		return
	}
	RespondOK(c, page)
}

// MarkRead handles POST /notifications/:id/read.
func (s *NotificationsService) MarkRead(c *gin.Context) {
	notificationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		AbortWithError(c, http.StatusBadRequest, "invalid notification id")
		return
	}

	userID, ok := CurrentUserID(c)
	if !ok {
		AbortWithError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	if err := s.dispatcher.MarkRead(c.Request.Context(), notificationID, userID); err != nil {
		RespondLogicError(c, err)
		return
	}
	RespondOKWithMsg(c, nil, "marked as read")
}
