package dto

// SubmitEditRequest carries a partial update of a record's monetary fields.
// Values are decimal strings; validation happens in the review engine.
type SubmitEditRequest struct {
	Fields map[string]string `json:"fields" binding:"required"`
}

// InitializeMonthRequest asks for pending rows to be created for every member
// missing one for the month. Month uses the "2006-01" layout.
type InitializeMonthRequest struct {
	Month string `json:"month" binding:"required"`
}

type ListRecordsQuery struct {
	Month    string `form:"month" binding:"required"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type InitializeMonthResponse struct {
	Created int `json:"created"`
}
