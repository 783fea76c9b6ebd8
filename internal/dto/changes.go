package dto

// AddCommentRequest attaches admin feedback to a change-log entry. Scope is
// "row" or "field".
type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
	Scope   string `json:"scope" binding:"required"`
}

type ListChangeLogsQuery struct {
	RecordID string `form:"record_id"`
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}
