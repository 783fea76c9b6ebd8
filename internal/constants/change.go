package constants

type ChangeStatus int

const (
	ChangeStatusUnknown ChangeStatus = iota
	ChangeStatusPending
	ChangeStatusApproved
	ChangeStatusNeedsRevision
)

func (s ChangeStatus) String() string {
	switch s {
	case ChangeStatusPending:
		return "pending"
	case ChangeStatusApproved:
		return "approved"
	case ChangeStatusNeedsRevision:
		return "needs_revision"
	default:
		return "unknown"
	}
}

var changeStatusMap = map[string]ChangeStatus{
	"pending":        ChangeStatusPending,
	"approved":       ChangeStatusApproved,
	"needs_revision": ChangeStatusNeedsRevision,
	"unknown":        ChangeStatusUnknown,
}

func ParseChangeStatus(s string) ChangeStatus {
	if status, ok := changeStatusMap[s]; ok {
		return status
	}
	return ChangeStatusUnknown
}
