package constants

type RecordStatus int

const (
	RecordStatusUnknown RecordStatus = iota
	RecordStatusPending
	RecordStatusUpdated
	RecordStatusApproved
	RecordStatusNeedsRevision
)

func (s RecordStatus) String() string {
	switch s {
	case RecordStatusPending:
		return "pending"
	case RecordStatusUpdated:
		return "updated"
	case RecordStatusApproved:
		return "approved"
	case RecordStatusNeedsRevision:
		return "needs_revision"
	default:
		return "unknown"
	}
}

var recordStatusMap = map[string]RecordStatus{
	"pending":        RecordStatusPending,
	"updated":        RecordStatusUpdated,
	"approved":       RecordStatusApproved,
	"needs_revision": RecordStatusNeedsRevision,
	"unknown":        RecordStatusUnknown,
}

func ParseRecordStatus(s string) RecordStatus {
	if status, ok := recordStatusMap[s]; ok {
		return status
	}
	return RecordStatusUnknown
}
