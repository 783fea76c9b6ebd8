package fields

const (
	FieldObjectId  = "_id"
	FieldCreatedAt = "created_at"
	FieldCreatedBy = "created_by"
	FieldUpdatedAt = "updated_at"
	FieldStatus    = "status"

	FieldRecordMemberID            = "member_id"
	FieldRecordMonth               = "month"
	FieldRecordTotalSavings        = "total_savings"
	FieldRecordTotalLoans          = "total_loans"
	FieldRecordLoanBalance         = "loan_balance"
	FieldRecordMonthlyContribution = "monthly_contribution"
	FieldRecordMonthlyRepayment    = "monthly_repayment"

	FieldChangeRecordID    = "monthly_record_id"
	FieldChangeFieldName   = "field_name"
	FieldChangeOldValue    = "old_value"
	FieldChangeNewValue    = "new_value"
	FieldChangeChangedBy   = "changed_by"
	FieldChangeReviewedBy  = "reviewed_by"
	FieldChangeReviewedAt  = "reviewed_at"
	FieldChangeBatchSerial = "batch_serial"

	FieldCommentChangeLogID = "change_log_id"
	FieldCommentAuthorID    = "author_id"
	FieldCommentContent     = "content"
	FieldCommentScope       = "scope"

	FieldNotificationUserID    = "user_id"
	FieldNotificationTitle     = "title"
	FieldNotificationMessage   = "message"
	FieldNotificationType      = "type"
	FieldNotificationRead      = "read"
	FieldNotificationRelatedID = "related_change_id"

	FieldMemberEmployeeID    = "employee_id"
	FieldMemberFirstName     = "first_name"
	FieldMemberLastName      = "last_name"
	FieldMemberCollegeID     = "college_id"
	FieldMemberInstitutionID = "institution_id"

	FieldUserEmail        = "email"
	FieldUserPasswordHash = "password_hash"
	FieldUserFirstName    = "first_name"
	FieldUserLastName     = "last_name"
)

// ReviewableRecordFields are the monetary columns of a monthly record that a
// finance user may edit; every change-log entry names one of these.
var ReviewableRecordFields = []string{
	FieldRecordTotalSavings,
	FieldRecordTotalLoans,
	FieldRecordLoanBalance,
	FieldRecordMonthlyContribution,
	FieldRecordMonthlyRepayment,
}

// IsReviewableRecordField reports whether name is one of the five monetary
// fields governed by the change-review workflow.
func IsReviewableRecordField(name string) bool {
	for _, f := range ReviewableRecordFields {
		if f == name {
			return true
		}
	}
	return false
}
