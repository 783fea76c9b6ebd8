package service

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/repository"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/pkg/pagination"
)

// MembersService is the read-only member directory. It sits directly on the
// repository: directory lookup has no workflow rules to enforce.
type MembersService struct {
	memberRepo repository.MembersRepository
	logger     *zap.Logger
}

func NewMembersService(memberRepo repository.MembersRepository, logger *zap.Logger) *MembersService {
	return &MembersService{
		memberRepo: memberRepo,
		logger:     logger.Named("MembersService"),
	}
}

// List handles GET /members.
func (s *MembersService) List(c *gin.Context) {
	var query struct {
		Page     int `form:"page"`
		PageSize int `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	pageReq := pagination.NewPageRequest(query.Page, query.PageSize)
	members, total, err := s.memberRepo.ListMembers(c.Request.Context(), &repository.ListMembersParams{Page: pageReq})
	if err != nil {
		s.logger.Error("Failed to list members", zap.Error(err))
		AbortWithError(c, http.StatusInternalServerError, "internal error")
		return
	}
	RespondOK(c, pagination.NewPageResult(members, total, pageReq))
}
