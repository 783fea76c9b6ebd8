package service

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/constants"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dto"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/logic"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/pkg/pagination"
)

// ChangesService exposes the review side of the workflow: approvals,
// comments, and change-log listing.
type ChangesService struct {
	review logic.ReviewLogic
	logger *zap.Logger
}

func NewChangesService(review logic.ReviewLogic, logger *zap.Logger) *ChangesService {
	return &ChangesService{
		review: review,
		logger: logger.Named("ChangesService"),
	}
}

// Approve handles POST /changes/:id/approve.
func (s *ChangesService) Approve(c *gin.Context) {
	entryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		AbortWithError(c, http.StatusBadRequest, "invalid change id")
		return
	}

	reviewer, ok := CurrentUserID(c)
	if !ok {
		AbortWithError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	entry, err := s.review.Approve(c.Request.Context(), entryID, reviewer)
	if err != nil {
		RespondLogicError(c, err)
		return
	}
	RespondOK(c, entry)
}

// AddComment handles POST /changes/:id/comments.
func (s *ChangesService) AddComment(c *gin.Context) {
	entryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		AbortWithError(c, http.StatusBadRequest, "invalid change id")
		return
	}

	var req dto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	author, ok := CurrentUserID(c)
	if !ok {
		AbortWithError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	comment, err := s.review.AddComment(c.Request.Context(), entryID, author, req.Content, constants.ParseCommentScope(req.Scope))
	if err != nil {
		RespondLogicError(c, err)
		return
	}
	RespondOK(c, comment)
}

// ListChangeLogs handles GET /changes.
func (s *ChangesService) ListChangeLogs(c *gin.Context) {
	var query dto.ListChangeLogsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var recordID *primitive.ObjectID
	if query.RecordID != "" {
		id, err := primitive.ObjectIDFromHex(query.RecordID)
		if err != nil {
			AbortWithError(c, http.StatusBadRequest, "invalid record_id")
			return
		}
		recordID = &id
	}

	pageReq := pagination.NewPageRequest(query.Page, query.PageSize)
	result, err := s.review.ListChangeLogs(c.Request.Context(), recordID, constants.ParseChangeStatus(query.Status), pageReq)
	if err != nil {
		RespondLogicError(c, err)
		return
	}
	RespondOK(c, result)
}

// ListComments handles GET /changes/:id/comments.
func (s *ChangesService) ListComments(c *gin.Context) {
	entryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		AbortWithError(c, http.StatusBadRequest, "invalid change id")
		return
	}

	comments, err := s.review.ListComments(c.Request.Context(), entryID)
	if err != nil {
		RespondLogicError(c, err)
		return
	}
	RespondOK(c, comments)
}
