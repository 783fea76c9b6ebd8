package mongodb

const (
	CollectionMonthlyRecords = "monthly_records"
	CollectionChangeLogs     = "change_logs"
	CollectionChangeComments = "change_comments"
	CollectionNotifications  = "notifications"
	CollectionMembers        = "members"
	CollectionUsers          = "users"
	CollectionOutbox         = "outbox"
)
