package logic

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/constants"
)

const commentExcerptLimit = 50

// NotificationBatch is one dispatch request: the same title/message/type
// addressed to every recipient.
type NotificationBatch struct {
	Recipients      []primitive.ObjectID
	Title           string
	Message         string
	Type            constants.NotificationType
	RelatedChangeID *primitive.ObjectID
}

// buildDataUpdatedBatch addresses every admin after a finance user submits an
// edit. One aggregate notification per admin regardless of how many fields
// changed.
func buildDataUpdatedBatch(admins []primitive.ObjectID, memberName string, changedFields int, relatedChangeID *primitive.ObjectID) *NotificationBatch {
	return &NotificationBatch{
		Recipients:      admins,
		Title:           "Monthly Data Updated",
		Message:         fmt.Sprintf("Finance user updated data for %s (%d field(s) changed)", memberName, changedFields),
		Type:            constants.NotificationTypeInfo,
		RelatedChangeID: relatedChangeID,
	}
}

// buildChangeApprovedBatch addresses the record owner after an admin approves
// one of their pending changes.
func buildChangeApprovedBatch(owner primitive.ObjectID, fieldName string, entryID primitive.ObjectID) *NotificationBatch {
	return &NotificationBatch{
		Recipients:      []primitive.ObjectID{owner},
		Title:           "Change Approved",
		Message:         fmt.Sprintf("Your update to %s has been approved", fieldName),
		Type:            constants.NotificationTypeSuccess,
		RelatedChangeID: &entryID,
	}
}

// buildCommentBatch addresses the record owner after an admin comments on one
// of their changes. The comment body is excerpted to keep messages short.
func buildCommentBatch(owner primitive.ObjectID, fieldName, content string, entryID primitive.ObjectID) *NotificationBatch {
	return &NotificationBatch{
		Recipients:      []primitive.ObjectID{owner},
		Title:           "Comment on Your Change",
		Message:         fmt.Sprintf("Admin commented on your %s update: %q", fieldName, excerpt(content, commentExcerptLimit)),
		Type:            constants.NotificationTypeWarning,
		RelatedChangeID: &entryID,
	}
}

func excerpt(content string, limit int) string {
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	return string(runes[:limit]) + "..."
}
