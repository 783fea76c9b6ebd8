package dto

type ListNotificationsQuery struct {
	Limit     int64  `form:"limit"`
	PageToken string `form:"page_token"`
}
