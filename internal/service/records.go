package service

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dto"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/logic"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/pkg/pagination"
)

// monthLayout is the wire format for month parameters.
const monthLayout = "2006-01"

// RecordsService exposes the monthly-record side of the review workflow.
type RecordsService struct {
	review logic.ReviewLogic
	logger *zap.Logger
}

func NewRecordsService(review logic.ReviewLogic, logger *zap.Logger) *RecordsService {
	return &RecordsService{
		review: review,
		logger: logger.Named("RecordsService"),
	}
}

// SubmitEdit handles POST /finance/records/:id/edits.
func (s *RecordsService) SubmitEdit(c *gin.Context) {
	recordID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		AbortWithError(c, http.StatusBadRequest, "invalid record id")
		return
	}

	var req dto.SubmitEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	editor, ok := CurrentUserID(c)
	if !ok {
		AbortWithError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	record, entries, err := s.review.SubmitEdit(c.Request.Context(), recordID, editor, req.Fields)
	if err != nil {
		RespondLogicError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"record":  record,
		"changes": entries,
	})
}

// GetRecord handles GET /finance/records/:id.
func (s *RecordsService) GetRecord(c *gin.Context) {
	recordID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		AbortWithError(c, http.StatusBadRequest, "invalid record id")
		return
	}

	record, err := s.review.GetRecord(c.Request.Context(), recordID)
	if err != nil {
		RespondLogicError(c, err)
		return
	}
	RespondOK(c, record)
}

// ListRecords handles GET /finance/records?month=2024-05.
func (s *RecordsService) ListRecords(c *gin.Context) {
	var query dto.ListRecordsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	month, err := time.Parse(monthLayout, query.Month)
	if err != nil {
		AbortWithError(c, http.StatusBadRequest, "invalid month, expected YYYY-MM")
		return
	}

	pageReq := pagination.NewPageRequest(query.Page, query.PageSize)
	result, err := s.review.ListRecords(c.Request.Context(), month, pageReq)
	if err != nil {
		RespondLogicError(c, err)
		return
	}
	RespondOK(c, result)
}

// InitializeMonth handles POST /finance/records/initialize.
func (s *RecordsService) InitializeMonth(c *gin.Context) {
	var req dto.InitializeMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	month, err := time.Parse(monthLayout, req.Month)
	if err != nil {
		AbortWithError(c, http.StatusBadRequest, "invalid month, expected YYYY-MM")
		return
	}

	caller, ok := CurrentUserID(c)
	if !ok {
		AbortWithError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	created, err := s.review.InitializeMonth(c.Request.Context(), month, caller)
	if err != nil {
		RespondLogicError(c, err)
		return
	}

	s.logger.Info("Month initialized", zap.String("month", req.Month), zap.Int("created", created))
	RespondOK(c, &dto.InitializeMonthResponse{Created: created})
}
