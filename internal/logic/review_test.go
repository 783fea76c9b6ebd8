package logic

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/constants"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/fields"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/mongodb"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/repository"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/db"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/models"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/pkg/pagination"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/pkg/snowflake"
)

type reviewLogicMocks struct {
	recordRepo  *mockMonthlyRecordsRepository
	changeRepo  *mockChangeLogsRepository
	commentRepo *mockCommentsRepository
	memberRepo  *mockMembersRepository
	dispatcher  *mockDispatcher
	roles       *mockRoleDirectory
}

func newTestReviewLogic(t *testing.T) (*reviewLogic, *reviewLogicMocks) {
	t.Helper()

	idGen, err := snowflake.NewGenerator(1)
	require.NoError(t, err)

	m := &reviewLogicMocks{
		recordRepo:  newMockMonthlyRecordsRepository(),
		changeRepo:  newMockChangeLogsRepository(),
		commentRepo: newMockCommentsRepository(),
		memberRepo:  newMockMembersRepository(),
		dispatcher:  newMockDispatcher(),
		roles:       newMockRoleDirectory(),
	}

	l := &reviewLogic{
		recordRepo:  m.recordRepo,
		changeRepo:  m.changeRepo,
		commentRepo: m.commentRepo,
		memberRepo:  m.memberRepo,
		txManager:   db.NewNoOpTransactionManager(),
		dispatcher:  m.dispatcher,
		roles:       m.roles,
		idGenerator: idGen,
		logger:      zap.NewNop(),
	}
	return l, m
}

func (m *reviewLogicMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.recordRepo.AssertExpectations(t)
	m.changeRepo.AssertExpectations(t)
	m.commentRepo.AssertExpectations(t)
	m.memberRepo.AssertExpectations(t)
	m.dispatcher.AssertExpectations(t)
	m.roles.AssertExpectations(t)
}

func buildRecord(savings, loans string) *models.MonthlyRecord {
	savingsDec, _ := primitive.ParseDecimal128(savings)
	loansDec, _ := primitive.ParseDecimal128(loans)
	zero := primitive.NewDecimal128(0, 0)
	creator := primitive.NewObjectID()
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &models.MonthlyRecord{
		ID:                  primitive.NewObjectID(),
		MemberID:            primitive.NewObjectID(),
		Month:               time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
		TotalSavings:        savingsDec,
		TotalLoans:          loansDec,
		LoanBalance:         zero,
		MonthlyContribution: zero,
		MonthlyRepayment:    zero,
		Status:              constants.RecordStatusPending.String(),
		CreatedBy:           &creator,
		CreatedAt:           now.Add(-time.Hour),
		UpdatedAt:           now,
	}
}

func TestReviewLogic_SubmitEdit(t *testing.T) {
	ctx := context.Background()
	editor := primitive.NewObjectID()

	t.Run("rejects unknown field", func(t *testing.T) {
		l, m := newTestReviewLogic(t)

		_, _, err := l.SubmitEdit(ctx, primitive.NewObjectID(), editor, map[string]string{"note": "1"})
		require.ErrorIs(t, err, ErrValidation)
		m.assertExpectations(t)
	})

	t.Run("rejects negative and malformed amounts", func(t *testing.T) {
		l, m := newTestReviewLogic(t)

		_, _, err := l.SubmitEdit(ctx, primitive.NewObjectID(), editor, map[string]string{
			fields.FieldRecordTotalSavings: "-5",
		})
		require.ErrorIs(t, err, ErrValidation)

		_, _, err = l.SubmitEdit(ctx, primitive.NewObjectID(), editor, map[string]string{
			fields.FieldRecordTotalSavings: "abc",
		})
		require.ErrorIs(t, err, ErrValidation)
		m.assertExpectations(t)
	})

	t.Run("missing record returns ErrRecordNotFound", func(t *testing.T) {
		l, m := newTestReviewLogic(t)
		recordID := primitive.NewObjectID()
		m.recordRepo.On("GetMonthlyRecord", mock.Anything, recordID).Return(nil, mongodb.ErrNotFound).Once()

		_, _, err := l.SubmitEdit(ctx, recordID, editor, map[string]string{
			fields.FieldRecordTotalSavings: "10",
		})
		require.ErrorIs(t, err, ErrRecordNotFound)
		m.assertExpectations(t)
	})

	t.Run("identical values produce no entries and no write", func(t *testing.T) {
		l, m := newTestReviewLogic(t)
		record := buildRecord("100.5", "40")
		m.recordRepo.On("GetMonthlyRecord", mock.Anything, record.ID).Return(record, nil).Once()

		result, entries, err := l.SubmitEdit(ctx, record.ID, editor, map[string]string{
			fields.FieldRecordTotalSavings: "100.5",
			fields.FieldRecordTotalLoans:   "40",
		})
		require.NoError(t, err)
		require.Empty(t, entries)
		require.Equal(t, record.Status, result.Status)
		require.True(t, record.UpdatedAt.Equal(result.UpdatedAt))
		m.assertExpectations(t)
	})

	t.Run("changed fields produce one entry each and notify admins", func(t *testing.T) {
		l, m := newTestReviewLogic(t)
		record := buildRecord("100.5", "40")
		adminA := primitive.NewObjectID()
		adminB := primitive.NewObjectID()

		m.recordRepo.On("GetMonthlyRecord", mock.Anything, record.ID).Return(record, nil).Once()
		m.recordRepo.On("UpdateRecordFields", mock.Anything, mock.MatchedBy(func(p *repository.UpdateRecordFieldsParams) bool {
			return p.RecordID == record.ID &&
				p.SnapshotUpdatedAt.Equal(record.UpdatedAt) &&
				p.NewStatus == constants.RecordStatusUpdated.String() &&
				len(p.Amounts) == 2
		})).Return(nil).Once()

		var inserted []*models.ChangeLogEntry
		m.changeRepo.On("InsertChangeLogs", mock.Anything, mock.AnythingOfType("[]*models.ChangeLogEntry")).
			Run(func(args mock.Arguments) {
				inserted = args.Get(1).([]*models.ChangeLogEntry)
			}).
			Return(nil).Once()

		m.roles.On("ListUsersWithRole", mock.Anything, constants.RoleAdmin).
			Return([]string{adminA.Hex(), adminB.Hex()}, nil).Once()
		m.memberRepo.On("GetMember", mock.Anything, record.MemberID).
			Return(&models.Member{ID: record.MemberID, FirstName: "Abebe", LastName: "Kebede"}, nil).Once()
		m.dispatcher.On("NotifyUsers", mock.Anything, mock.MatchedBy(func(b *NotificationBatch) bool {
			return b.Title == "Monthly Data Updated" &&
				b.Message == "Finance user updated data for Abebe Kebede (2 field(s) changed)" &&
				b.Type == constants.NotificationTypeInfo &&
				len(b.Recipients) == 2
		})).Return(&DispatchResult{Delivered: []primitive.ObjectID{adminA, adminB}}, nil).Once()

		updated, entries, err := l.SubmitEdit(ctx, record.ID, editor, map[string]string{
			fields.FieldRecordTotalSavings: "120.75",
			fields.FieldRecordTotalLoans:   "55",
		})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		require.Equal(t, inserted, entries)

		byField := map[string]*models.ChangeLogEntry{}
		for _, e := range entries {
			byField[e.FieldName] = e
			assert.Equal(t, constants.ChangeStatusPending.String(), e.Status)
			assert.Equal(t, editor, e.ChangedBy)
			assert.Equal(t, entries[0].BatchSerial, e.BatchSerial)
		}
		require.Equal(t, "100.5", byField[fields.FieldRecordTotalSavings].OldValue)
		require.Equal(t, "120.75", byField[fields.FieldRecordTotalSavings].NewValue)
		require.Equal(t, "40", byField[fields.FieldRecordTotalLoans].OldValue)
		require.Equal(t, "55", byField[fields.FieldRecordTotalLoans].NewValue)

		require.Equal(t, constants.RecordStatusUpdated.String(), updated.Status)
		require.Equal(t, "120.75", updated.TotalSavings.String())
		require.True(t, updated.UpdatedAt.After(record.CreatedAt))
		m.assertExpectations(t)
	})

	t.Run("stale snapshot recomputes diff against new pre-image", func(t *testing.T) {
		l, m := newTestReviewLogic(t)

		first := buildRecord("100.5", "40")
		second := *first
		secondSavings, _ := primitive.ParseDecimal128("110")
		second.TotalSavings = secondSavings
		second.UpdatedAt = first.UpdatedAt.Add(time.Second)

		m.recordRepo.On("GetMonthlyRecord", mock.Anything, first.ID).Return(first, nil).Once()
		m.recordRepo.On("UpdateRecordFields", mock.Anything, mock.MatchedBy(func(p *repository.UpdateRecordFieldsParams) bool {
			return p.SnapshotUpdatedAt.Equal(first.UpdatedAt)
		})).Return(mongodb.ErrStaleRecord).Once()

		m.recordRepo.On("GetMonthlyRecord", mock.Anything, first.ID).Return(&second, nil).Once()
		m.recordRepo.On("UpdateRecordFields", mock.Anything, mock.MatchedBy(func(p *repository.UpdateRecordFieldsParams) bool {
			return p.SnapshotUpdatedAt.Equal(second.UpdatedAt)
		})).Return(nil).Once()

		m.changeRepo.On("InsertChangeLogs", mock.Anything, mock.AnythingOfType("[]*models.ChangeLogEntry")).Return(nil).Once()
		m.roles.On("ListUsersWithRole", mock.Anything, constants.RoleAdmin).Return([]string{}, nil).Once()

		_, entries, err := l.SubmitEdit(ctx, first.ID, editor, map[string]string{
			fields.FieldRecordTotalSavings: "120.75",
		})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		// The committed entry captures the concurrent writer's value, not the
		// original snapshot's.
		require.Equal(t, "110", entries[0].OldValue)
		m.assertExpectations(t)
	})

	t.Run("exhausted retries return ErrEditConflict", func(t *testing.T) {
		l, m := newTestReviewLogic(t)
		record := buildRecord("100.5", "40")

		m.recordRepo.On("GetMonthlyRecord", mock.Anything, record.ID).Return(record, nil).Times(maxSubmitEditRetries)
		m.recordRepo.On("UpdateRecordFields", mock.Anything, mock.Anything).Return(mongodb.ErrStaleRecord).Times(maxSubmitEditRetries)

		_, _, err := l.SubmitEdit(ctx, record.ID, editor, map[string]string{
			fields.FieldRecordTotalSavings: "200",
		})
		require.ErrorIs(t, err, ErrEditConflict)
		m.assertExpectations(t)
	})
}

func TestReviewLogic_Approve(t *testing.T) {
	ctx := context.Background()
	reviewer := primitive.NewObjectID()

	t.Run("approves pending entry and notifies owner", func(t *testing.T) {
		l, m := newTestReviewLogic(t)
		record := buildRecord("100.5", "40")
		entry := &models.ChangeLogEntry{
			ID:              primitive.NewObjectID(),
			MonthlyRecordID: record.ID,
			FieldName:       fields.FieldRecordTotalSavings,
			Status:          constants.ChangeStatusApproved.String(),
			ReviewedBy:      &reviewer,
		}

		m.changeRepo.On("SetChangeLogStatus", mock.Anything, mock.MatchedBy(func(p *repository.SetChangeLogStatusParams) bool {
			return p.EntryID == entry.ID &&
				p.ExpectedStatus == constants.ChangeStatusPending.String() &&
				p.NewStatus == constants.ChangeStatusApproved.String() &&
				p.ReviewedBy != nil && *p.ReviewedBy == reviewer &&
				p.ReviewedAt != nil
		})).Return(int64(1), nil).Once()
		m.changeRepo.On("GetChangeLogEntry", mock.Anything, entry.ID).Return(entry, nil).Once()
		m.recordRepo.On("GetMonthlyRecord", mock.Anything, record.ID).Return(record, nil).Once()
		m.dispatcher.On("NotifyUsers", mock.Anything, mock.MatchedBy(func(b *NotificationBatch) bool {
			return b.Title == "Change Approved" &&
				b.Message == "Your update to total_savings has been approved" &&
				b.Type == constants.NotificationTypeSuccess &&
				len(b.Recipients) == 1 && b.Recipients[0] == *record.CreatedBy
		})).Return(&DispatchResult{Delivered: []primitive.ObjectID{*record.CreatedBy}}, nil).Once()

		got, err := l.Approve(ctx, entry.ID, reviewer)
		require.NoError(t, err)
		require.Equal(t, entry, got)
		m.assertExpectations(t)
	})

	t.Run("second approve returns ErrInvalidState", func(t *testing.T) {
		l, m := newTestReviewLogic(t)
		entry := &models.ChangeLogEntry{
			ID:     primitive.NewObjectID(),
			Status: constants.ChangeStatusApproved.String(),
		}

		m.changeRepo.On("SetChangeLogStatus", mock.Anything, mock.Anything).Return(int64(0), nil).Once()
		m.changeRepo.On("GetChangeLogEntry", mock.Anything, entry.ID).Return(entry, nil).Once()

		_, err := l.Approve(ctx, entry.ID, reviewer)
		require.ErrorIs(t, err, ErrInvalidState)
		m.assertExpectations(t)
	})

	t.Run("missing entry returns ErrChangeNotFound", func(t *testing.T) {
		l, m := newTestReviewLogic(t)
		entryID := primitive.NewObjectID()

		m.changeRepo.On("SetChangeLogStatus", mock.Anything, mock.Anything).Return(int64(0), nil).Once()
		m.changeRepo.On("GetChangeLogEntry", mock.Anything, entryID).Return(nil, mongodb.ErrNotFound).Once()

		_, err := l.Approve(ctx, entryID, reviewer)
		require.ErrorIs(t, err, ErrChangeNotFound)
		m.assertExpectations(t)
	})

	t.Run("nil created_by produces no notification", func(t *testing.T) {
		l, m := newTestReviewLogic(t)
		record := buildRecord("100.5", "40")
		record.CreatedBy = nil
		entry := &models.ChangeLogEntry{
			ID:              primitive.NewObjectID(),
			MonthlyRecordID: record.ID,
			FieldName:       fields.FieldRecordTotalLoans,
			Status:          constants.ChangeStatusApproved.String(),
		}

		m.changeRepo.On("SetChangeLogStatus", mock.Anything, mock.Anything).Return(int64(1), nil).Once()
		m.changeRepo.On("GetChangeLogEntry", mock.Anything, entry.ID).Return(entry, nil).Once()
		m.recordRepo.On("GetMonthlyRecord", mock.Anything, record.ID).Return(record, nil).Once()

		_, err := l.Approve(ctx, entry.ID, reviewer)
		require.NoError(t, err)
		m.dispatcher.AssertNotCalled(t, "NotifyUsers", mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})
}

func TestReviewLogic_AddComment(t *testing.T) {
	ctx := context.Background()
	author := primitive.NewObjectID()

	t.Run("rejects blank content and unknown scope", func(t *testing.T) {
		l, m := newTestReviewLogic(t)

		_, err := l.AddComment(ctx, primitive.NewObjectID(), author, "   ", constants.CommentScopeRow)
		require.ErrorIs(t, err, ErrValidation)

		_, err = l.AddComment(ctx, primitive.NewObjectID(), author, "fix it", constants.CommentScopeUnknown)
		require.ErrorIs(t, err, ErrValidation)
		m.assertExpectations(t)
	})

	t.Run("comment on pending entry flags needs_revision and notifies owner", func(t *testing.T) {
		l, m := newTestReviewLogic(t)
		record := buildRecord("100.5", "40")
		entry := &models.ChangeLogEntry{
			ID:              primitive.NewObjectID(),
			MonthlyRecordID: record.ID,
			FieldName:       fields.FieldRecordLoanBalance,
			Status:          constants.ChangeStatusPending.String(),
		}

		m.changeRepo.On("GetChangeLogEntry", mock.Anything, entry.ID).Return(entry, nil).Once()
		m.commentRepo.On("InsertComment", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
			return c.ChangeLogID == entry.ID &&
				c.AuthorID == author &&
				c.Content == "please double check the balance" &&
				c.Scope == constants.CommentScopeField.String()
		})).Return(nil).Once()
		m.changeRepo.On("SetChangeLogStatus", mock.Anything, mock.MatchedBy(func(p *repository.SetChangeLogStatusParams) bool {
			return p.EntryID == entry.ID &&
				p.ExpectedStatus == constants.ChangeStatusPending.String() &&
				p.NewStatus == constants.ChangeStatusNeedsRevision.String() &&
				p.ReviewedBy == nil
		})).Return(int64(1), nil).Once()
		m.recordRepo.On("GetMonthlyRecord", mock.Anything, record.ID).Return(record, nil).Once()
		m.dispatcher.On("NotifyUsers", mock.Anything, mock.MatchedBy(func(b *NotificationBatch) bool {
			return b.Title == "Comment on Your Change" &&
				b.Message == `Admin commented on your loan_balance update: "please double check the balance"` &&
				b.Type == constants.NotificationTypeWarning
		})).Return(&DispatchResult{Delivered: []primitive.ObjectID{*record.CreatedBy}}, nil).Once()

		comment, err := l.AddComment(ctx, entry.ID, author, "please double check the balance", constants.CommentScopeField)
		require.NoError(t, err)
		require.Equal(t, entry.ID, comment.ChangeLogID)
		m.assertExpectations(t)
	})

	t.Run("comment on approved entry leaves status untouched", func(t *testing.T) {
		l, m := newTestReviewLogic(t)
		record := buildRecord("100.5", "40")
		record.CreatedBy = nil
		entry := &models.ChangeLogEntry{
			ID:              primitive.NewObjectID(),
			MonthlyRecordID: record.ID,
			FieldName:       fields.FieldRecordTotalSavings,
			Status:          constants.ChangeStatusApproved.String(),
		}

		m.changeRepo.On("GetChangeLogEntry", mock.Anything, entry.ID).Return(entry, nil).Once()
		m.commentRepo.On("InsertComment", mock.Anything, mock.Anything).Return(nil).Once()
		// The CAS filter does not match an approved entry; that is fine.
		m.changeRepo.On("SetChangeLogStatus", mock.Anything, mock.Anything).Return(int64(0), nil).Once()
		m.recordRepo.On("GetMonthlyRecord", mock.Anything, record.ID).Return(record, nil).Once()

		_, err := l.AddComment(ctx, entry.ID, author, "noted for audit", constants.CommentScopeRow)
		require.NoError(t, err)
		m.dispatcher.AssertNotCalled(t, "NotifyUsers", mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("missing entry returns ErrChangeNotFound", func(t *testing.T) {
		l, m := newTestReviewLogic(t)
		entryID := primitive.NewObjectID()
		m.changeRepo.On("GetChangeLogEntry", mock.Anything, entryID).Return(nil, mongodb.ErrNotFound).Once()

		_, err := l.AddComment(ctx, entryID, author, "where is this from?", constants.CommentScopeRow)
		require.ErrorIs(t, err, ErrChangeNotFound)
		m.assertExpectations(t)
	})
}

func TestReviewLogic_InitializeMonth(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending rows for every member", func(t *testing.T) {
		l, m := newTestReviewLogic(t)
		creator := primitive.NewObjectID()
		members := []*models.Member{
			{ID: primitive.NewObjectID(), EmployeeID: "E-001"},
			{ID: primitive.NewObjectID(), EmployeeID: "E-002"},
		}

		m.memberRepo.On("ListMembers", mock.Anything, mock.Anything).Return(members, int64(2), nil).Once()
		m.recordRepo.On("CreateRecords", mock.Anything, mock.MatchedBy(func(records []*models.MonthlyRecord) bool {
			if len(records) != 2 {
				return false
			}
			for _, r := range records {
				if r.Status != constants.RecordStatusPending.String() {
					return false
				}
				if r.Month != time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC) {
					return false
				}
			}
			return true
		})).Return(2, nil).Once()

		inserted, err := l.InitializeMonth(ctx, time.Date(2025, time.May, 17, 8, 30, 0, 0, time.UTC), creator)
		require.NoError(t, err)
		require.Equal(t, 2, inserted)
		m.assertExpectations(t)
	})

	t.Run("zero month is rejected", func(t *testing.T) {
		l, m := newTestReviewLogic(t)
		_, err := l.InitializeMonth(ctx, time.Time{}, primitive.NewObjectID())
		require.ErrorIs(t, err, ErrValidation)
		m.assertExpectations(t)
	})
}

func TestReviewLogic_Listing(t *testing.T) {
	ctx := context.Background()

	t.Run("ListChangeLogs passes filters and wraps page result", func(t *testing.T) {
		l, m := newTestReviewLogic(t)
		recordID := primitive.NewObjectID()
		entries := []*models.ChangeLogEntry{{ID: primitive.NewObjectID()}}

		m.changeRepo.On("ListChangeLogs", mock.Anything, mock.MatchedBy(func(p *repository.ListChangeLogsParams) bool {
			return p.RecordID != nil && *p.RecordID == recordID &&
				p.Status == constants.ChangeStatusPending.String()
		})).Return(entries, int64(1), nil).Once()

		result, err := l.ListChangeLogs(ctx, &recordID, constants.ChangeStatusPending, pagination.NewPageRequest(1, 20))
		require.NoError(t, err)
		require.Equal(t, int64(1), result.Total)
		require.Equal(t, entries, result.Data)
		m.assertExpectations(t)
	})

	t.Run("ListComments on missing entry returns ErrChangeNotFound", func(t *testing.T) {
		l, m := newTestReviewLogic(t)
		entryID := primitive.NewObjectID()
		m.changeRepo.On("GetChangeLogEntry", mock.Anything, entryID).Return(nil, mongodb.ErrNotFound).Once()

		_, err := l.ListComments(ctx, entryID)
		require.ErrorIs(t, err, ErrChangeNotFound)
		m.assertExpectations(t)
	})
}

func TestBuildCommentBatch_Excerpt(t *testing.T) {
	owner := primitive.NewObjectID()
	entryID := primitive.NewObjectID()

	long := "this comment is well over fifty characters long and must be cut down"
	batch := buildCommentBatch(owner, fields.FieldRecordTotalSavings, long, entryID)
	require.Equal(t, `Admin commented on your total_savings update: "this comment is well over fifty characters long an..."`, batch.Message)

	short := buildCommentBatch(owner, fields.FieldRecordTotalSavings, "short note", entryID)
	require.Equal(t, `Admin commented on your total_savings update: "short note"`, short.Message)
}
