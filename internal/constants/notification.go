package constants

type NotificationType int

const (
	NotificationTypeUnknown NotificationType = iota
	NotificationTypeInfo
	NotificationTypeSuccess
	NotificationTypeWarning
)

func (t NotificationType) String() string {
	switch t {
	case NotificationTypeInfo:
		return "info"
	case NotificationTypeSuccess:
		return "success"
	case NotificationTypeWarning:
		return "warning"
	default:
		return "unknown"
	}
}

var notificationTypeMap = map[string]NotificationType{
	"info":    NotificationTypeInfo,
	"success": NotificationTypeSuccess,
	"warning": NotificationTypeWarning,
	"unknown": NotificationTypeUnknown,
}

func ParseNotificationType(s string) NotificationType {
	if t, ok := notificationTypeMap[s]; ok {
		return t
	}
	return NotificationTypeUnknown
}
