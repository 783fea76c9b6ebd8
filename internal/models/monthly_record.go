package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/fields"
)

// MonthlyRecord is one member's financial snapshot for one calendar month.
// There is at most one record per (member, month) pair; the five monetary
// fields are only ever mutated through the change-review workflow.
type MonthlyRecord struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	MemberID            primitive.ObjectID   `bson:"member_id" json:"member_id"`
	Month               time.Time            `bson:"month" json:"month"`
	TotalSavings        primitive.Decimal128 `bson:"total_savings" json:"total_savings"`
	TotalLoans          primitive.Decimal128 `bson:"total_loans" json:"total_loans"`
	LoanBalance         primitive.Decimal128 `bson:"loan_balance" json:"loan_balance"`
	MonthlyContribution primitive.Decimal128 `bson:"monthly_contribution" json:"monthly_contribution"`
	MonthlyRepayment    primitive.Decimal128 `bson:"monthly_repayment" json:"monthly_repayment"`
	Status              string               `bson:"status" json:"status"`
	CreatedBy           *primitive.ObjectID  `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt           time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time            `bson:"updated_at" json:"updated_at"`
}

// Amount returns the stored value of one of the five monetary fields.
// The second return is false for any other name.
func (r *MonthlyRecord) Amount(field string) (primitive.Decimal128, bool) {
	switch field {
	case fields.FieldRecordTotalSavings:
		return r.TotalSavings, true
	case fields.FieldRecordTotalLoans:
		return r.TotalLoans, true
	case fields.FieldRecordLoanBalance:
		return r.LoanBalance, true
	case fields.FieldRecordMonthlyContribution:
		return r.MonthlyContribution, true
	case fields.FieldRecordMonthlyRepayment:
		return r.MonthlyRepayment, true
	default:
		return primitive.Decimal128{}, false
	}
}
