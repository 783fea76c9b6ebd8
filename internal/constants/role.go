package constants

type Role int

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleOfficer
	RoleViewer
	RoleFinance
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleOfficer:
		return "officer"
	case RoleViewer:
		return "viewer"
	case RoleFinance:
		return "finance"
	default:
		return "unknown"
	}
}

var roleMap = map[string]Role{
	"admin":   RoleAdmin,
	"officer": RoleOfficer,
	"viewer":  RoleViewer,
	"finance": RoleFinance,
	"unknown": RoleUnknown,
}

func ParseRole(s string) Role {
	if role, ok := roleMap[s]; ok {
		return role
	}
	return RoleUnknown
}

// AllRoles lists every assignable role, in precedence order.
var AllRoles = []Role{RoleAdmin, RoleOfficer, RoleViewer, RoleFinance}
