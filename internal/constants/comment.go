package constants

// CommentScope tags whether a review comment targets the whole monthly row or
// a single changed field.
type CommentScope int

const (
	CommentScopeUnknown CommentScope = iota
	CommentScopeRow
	CommentScopeField
)

func (s CommentScope) String() string {
	switch s {
	case CommentScopeRow:
		return "row"
	case CommentScopeField:
		return "field"
	default:
		return "unknown"
	}
}

var commentScopeMap = map[string]CommentScope{
	"row":     CommentScopeRow,
	"field":   CommentScopeField,
	"unknown": CommentScopeUnknown,
}

func ParseCommentScope(s string) CommentScope {
	if scope, ok := commentScopeMap[s]; ok {
		return scope
	}
	return CommentScopeUnknown
}
