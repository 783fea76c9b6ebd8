package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/wire"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/constants"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/fields"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/mongodb"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/repository"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/db"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/helper"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/models"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/pkg/pagination"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/pkg/snowflake"
)

// maxSubmitEditRetries bounds the reload-and-retry loop after a CAS miss.
const maxSubmitEditRetries = 3

// ReviewLogic is the change-review workflow engine: field-level edits to
// monthly records, the pending/approved/needs_revision state machine, review
// comments, and the notifications each transition produces.
type ReviewLogic interface {
	SubmitEdit(ctx context.Context, recordID, editor primitive.ObjectID, fieldValues map[string]string) (*models.MonthlyRecord, []*models.ChangeLogEntry, error)
	Approve(ctx context.Context, entryID, reviewer primitive.ObjectID) (*models.ChangeLogEntry, error)
	AddComment(ctx context.Context, entryID, author primitive.ObjectID, content string, scope constants.CommentScope) (*models.Comment, error)

	GetRecord(ctx context.Context, id primitive.ObjectID) (*models.MonthlyRecord, error)
	ListRecords(ctx context.Context, month time.Time, pageReq *pagination.PageRequest) (*pagination.PageResult, error)
	ListChangeLogs(ctx context.Context, recordID *primitive.ObjectID, status constants.ChangeStatus, pageReq *pagination.PageRequest) (*pagination.PageResult, error)
	ListComments(ctx context.Context, entryID primitive.ObjectID) ([]*models.Comment, error)
	InitializeMonth(ctx context.Context, month time.Time, createdBy primitive.ObjectID) (int, error)
}

var _ ReviewLogic = (*reviewLogic)(nil)

type reviewLogic struct {
	recordRepo  repository.MonthlyRecordsRepository
	changeRepo  repository.ChangeLogsRepository
	commentRepo repository.CommentsRepository
	memberRepo  repository.MembersRepository
	txManager   db.TransactionManager
	dispatcher  NotificationDispatcher
	roles       RoleDirectory
	idGenerator *snowflake.Generator
	logger      *zap.Logger
}

func NewReviewLogic(
	recordRepo repository.MonthlyRecordsRepository,
	changeRepo repository.ChangeLogsRepository,
	commentRepo repository.CommentsRepository,
	memberRepo repository.MembersRepository,
	txManager db.TransactionManager,
	dispatcher NotificationDispatcher,
	roles RoleDirectory,
	idGenerator *snowflake.Generator,
	logger *zap.Logger,
) *reviewLogic {
	return &reviewLogic{
		recordRepo:  recordRepo,
		changeRepo:  changeRepo,
		commentRepo: commentRepo,
		memberRepo:  memberRepo,
		txManager:   txManager,
		dispatcher:  dispatcher,
		roles:       roles,
		idGenerator: idGenerator,
		logger:      logger.Named("ReviewLogic"),
	}
}

// fieldChange is one entry of a computed diff.
type fieldChange struct {
	name     string
	oldValue primitive.Decimal128
	newValue decimal.Decimal
}

func (l *reviewLogic) SubmitEdit(ctx context.Context, recordID, editor primitive.ObjectID, fieldValues map[string]string) (*models.MonthlyRecord, []*models.ChangeLogEntry, error) {
	parsed, err := parseEditValues(fieldValues)
	if err != nil {
		return nil, nil, err
	}

	for attempt := 0; attempt < maxSubmitEditRetries; attempt++ {
		record, err := l.loadRecord(ctx, recordID)
		if err != nil {
			return nil, nil, err
		}

		diff, err := computeDiff(record, parsed)
		if err != nil {
			return nil, nil, err
		}
		if len(diff) == 0 {
			// Nothing changed: no entries, no status transition, no write.
			return record, nil, nil
		}

		updated, entries, err := l.applyEdit(ctx, record, editor, diff)
		if err != nil {
			if errors.Is(err, mongodb.ErrStaleRecord) {
				// A concurrent edit landed between our read and write.
				// Reload and recompute the diff against the new pre-image.
				l.logger.Warn("SubmitEdit: stale snapshot, retrying",
					zap.Stringer("recordID", recordID), zap.Int("attempt", attempt+1))
				continue
			}
			return nil, nil, err
		}

		l.notifyAdminsOfEdit(ctx, updated, entries)
		return updated, entries, nil
	}

	return nil, nil, ErrEditConflict
}

func parseEditValues(fieldValues map[string]string) (map[string]decimal.Decimal, error) {
	parsed := make(map[string]decimal.Decimal, len(fieldValues))
	for name, value := range fieldValues {
		if !fields.IsReviewableRecordField(name) {
			return nil, fmt.Errorf("%w: unknown field %q", ErrValidation, name)
		}
		d, err := helper.ParseAmount(value)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", ErrValidation, name, err)
		}
		parsed[name] = d
	}
	return parsed, nil
}

// computeDiff compares submitted values against the stored amounts with exact
// decimal equality. Iteration follows ReviewableRecordFields so the resulting
// change-log entries have a stable order.
func computeDiff(record *models.MonthlyRecord, parsed map[string]decimal.Decimal) ([]fieldChange, error) {
	var diff []fieldChange
	for _, name := range fields.ReviewableRecordFields {
		newValue, ok := parsed[name]
		if !ok {
			continue
		}
		stored, _ := record.Amount(name)
		storedDecimal, err := helper.DecimalFromDecimal128(stored)
		if err != nil {
			return nil, fmt.Errorf("stored value of %s is unreadable: %w", name, err)
		}
		if storedDecimal.Equal(newValue) {
			continue
		}
		diff = append(diff, fieldChange{name: name, oldValue: stored, newValue: newValue})
	}
	return diff, nil
}

// applyEdit writes the record update and its change-log entries in one
// transaction. The record write is a CAS on the snapshot's updated_at.
func (l *reviewLogic) applyEdit(ctx context.Context, record *models.MonthlyRecord, editor primitive.ObjectID, diff []fieldChange) (*models.MonthlyRecord, []*models.ChangeLogEntry, error) {
	batchSerial, err := l.idGenerator.GetID()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate batch serial: %w", err)
	}

	now := time.Now()
	amounts := make(map[string]primitive.Decimal128, len(diff))
	entries := make([]*models.ChangeLogEntry, len(diff))
	for i, change := range diff {
		newAmount, err := helper.Decimal128FromDecimal(change.newValue)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to convert %s: %w", change.name, err)
		}
		amounts[change.name] = newAmount
		entries[i] = &models.ChangeLogEntry{
			ID:              primitive.NewObjectID(),
			MonthlyRecordID: record.ID,
			FieldName:       change.name,
			OldValue:        change.oldValue.String(),
			NewValue:        newAmount.String(),
			Status:          constants.ChangeStatusPending.String(),
			ChangedBy:       editor,
			BatchSerial:     batchSerial,
			CreatedAt:       now,
		}
	}

	_, err = l.txManager.WithTransaction(ctx, func(sessCtx context.Context) (interface{}, error) {
		if err := l.recordRepo.UpdateRecordFields(sessCtx, &repository.UpdateRecordFieldsParams{
			RecordID:          record.ID,
			Amounts:           amounts,
			NewStatus:         constants.RecordStatusUpdated.String(),
			SnapshotUpdatedAt: record.UpdatedAt,
			NewUpdatedAt:      now,
		}); err != nil {
			return nil, err
		}
		if err := l.changeRepo.InsertChangeLogs(sessCtx, entries); err != nil {
			return nil, fmt.Errorf("failed to insert change logs: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return nil, nil, err
	}

	updated := *record
	updated.Status = constants.RecordStatusUpdated.String()
	updated.UpdatedAt = now
	applyAmounts(&updated, amounts)

	return &updated, entries, nil
}

func applyAmounts(record *models.MonthlyRecord, amounts map[string]primitive.Decimal128) {
	for name, amount := range amounts {
		switch name {
		case fields.FieldRecordTotalSavings:
			record.TotalSavings = amount
		case fields.FieldRecordTotalLoans:
			record.TotalLoans = amount
		case fields.FieldRecordLoanBalance:
			record.LoanBalance = amount
		case fields.FieldRecordMonthlyContribution:
			record.MonthlyContribution = amount
		case fields.FieldRecordMonthlyRepayment:
			record.MonthlyRepayment = amount
		}
	}
}

// notifyAdminsOfEdit fans an aggregate notification out to every admin.
// Failures are logged and never unwind the committed edit.
func (l *reviewLogic) notifyAdminsOfEdit(ctx context.Context, record *models.MonthlyRecord, entries []*models.ChangeLogEntry) {
	adminIDs, err := l.roles.ListUsersWithRole(ctx, constants.RoleAdmin)
	if err != nil {
		l.logger.Error("SubmitEdit: failed to list admins for notification", zap.Error(err))
		return
	}
	if len(adminIDs) == 0 {
		return
	}

	recipients, err := helper.ConvertStringsToObjectID(adminIDs)
	if err != nil {
		l.logger.Error("SubmitEdit: invalid admin subject ids", zap.Error(err))
		return
	}

	memberName := record.MemberID.Hex()
	if member, err := l.memberRepo.GetMember(ctx, record.MemberID); err == nil {
		memberName = member.FullName()
	} else {
		l.logger.Warn("SubmitEdit: failed to resolve member name for notification",
			zap.Error(err), zap.Stringer("memberID", record.MemberID))
	}

	batch := buildDataUpdatedBatch(recipients, memberName, len(entries), &entries[0].ID)
	if _, err := l.dispatcher.NotifyUsers(ctx, batch); err != nil {
		l.logger.Error("SubmitEdit: failed to dispatch admin notifications", zap.Error(err))
	}
}

func (l *reviewLogic) Approve(ctx context.Context, entryID, reviewer primitive.ObjectID) (*models.ChangeLogEntry, error) {
	now := time.Now()
	matched, err := l.changeRepo.SetChangeLogStatus(ctx, &repository.SetChangeLogStatusParams{
		EntryID:        entryID,
		ExpectedStatus: constants.ChangeStatusPending.String(),
		NewStatus:      constants.ChangeStatusApproved.String(),
		ReviewedBy:     &reviewer,
		ReviewedAt:     &now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to approve change: %w", err)
	}
	if matched == 0 {
		// Either the entry does not exist or it already left pending.
		if _, err := l.loadEntry(ctx, entryID); err != nil {
			return nil, err
		}
		return nil, ErrInvalidState
	}

	entry, err := l.loadEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	l.notifyOwner(ctx, entry, func(owner primitive.ObjectID) *NotificationBatch {
		return buildChangeApprovedBatch(owner, entry.FieldName, entry.ID)
	})

	return entry, nil
}

func (l *reviewLogic) AddComment(ctx context.Context, entryID, author primitive.ObjectID, content string, scope constants.CommentScope) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: comment content must not be empty", ErrValidation)
	}
	if scope != constants.CommentScopeRow && scope != constants.CommentScopeField {
		return nil, fmt.Errorf("%w: unknown comment scope", ErrValidation)
	}

	entry, err := l.loadEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:          primitive.NewObjectID(),
		ChangeLogID: entry.ID,
		AuthorID:    author,
		Content:     content,
		Scope:       scope.String(),
		CreatedAt:   time.Now(),
	}
	if err := l.commentRepo.InsertComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}

	// Only a pending entry is pushed to needs_revision. Zero matches means
	// the entry was approved or already flagged; the comment still stands as
	// an audit note.
	if _, err := l.changeRepo.SetChangeLogStatus(ctx, &repository.SetChangeLogStatusParams{
		EntryID:        entry.ID,
		ExpectedStatus: constants.ChangeStatusPending.String(),
		NewStatus:      constants.ChangeStatusNeedsRevision.String(),
	}); err != nil {
		return nil, fmt.Errorf("failed to flag change for revision: %w", err)
	}

	l.notifyOwner(ctx, entry, func(owner primitive.ObjectID) *NotificationBatch {
		return buildCommentBatch(owner, entry.FieldName, content, entry.ID)
	})

	return comment, nil
}

// notifyOwner dispatches to the owning record's creator when one is set.
// A record with no creator produces no notification and no error.
func (l *reviewLogic) notifyOwner(ctx context.Context, entry *models.ChangeLogEntry, build func(owner primitive.ObjectID) *NotificationBatch) {
	record, err := l.recordRepo.GetMonthlyRecord(ctx, entry.MonthlyRecordID)
	if err != nil {
		l.logger.Error("failed to load record for owner notification",
			zap.Error(err), zap.Stringer("entryID", entry.ID))
		return
	}
	if record.CreatedBy == nil {
		return
	}

	if _, err := l.dispatcher.NotifyUsers(ctx, build(*record.CreatedBy)); err != nil {
		l.logger.Error("failed to dispatch owner notification",
			zap.Error(err), zap.Stringer("entryID", entry.ID))
	}
}

func (l *reviewLogic) GetRecord(ctx context.Context, id primitive.ObjectID) (*models.MonthlyRecord, error) {
	return l.loadRecord(ctx, id)
}

func (l *reviewLogic) ListRecords(ctx context.Context, month time.Time, pageReq *pagination.PageRequest) (*pagination.PageResult, error) {
	records, total, err := l.recordRepo.ListRecordsByMonth(ctx, &repository.ListRecordsParams{
		Month: normalizeMonth(month),
		Page:  pageReq,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return pagination.NewPageResult(records, total, pageReq), nil
}

func (l *reviewLogic) ListChangeLogs(ctx context.Context, recordID *primitive.ObjectID, status constants.ChangeStatus, pageReq *pagination.PageRequest) (*pagination.PageResult, error) {
	params := &repository.ListChangeLogsParams{
		RecordID: recordID,
		Page:     pageReq,
	}
	if status != constants.ChangeStatusUnknown {
		params.Status = status.String()
	}

	entries, total, err := l.changeRepo.ListChangeLogs(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list change logs: %w", err)
	}
	return pagination.NewPageResult(entries, total, pageReq), nil
}

func (l *reviewLogic) ListComments(ctx context.Context, entryID primitive.ObjectID) ([]*models.Comment, error) {
	if _, err := l.loadEntry(ctx, entryID); err != nil {
		return nil, err
	}
	comments, err := l.commentRepo.ListCommentsByChangeLog(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// InitializeMonth inserts a pending zero-amount record for every member that
// has no row for the month yet. Existing rows are left alone via the
// (member_id, month) unique index.
func (l *reviewLogic) InitializeMonth(ctx context.Context, month time.Time, createdBy primitive.ObjectID) (int, error) {
	normalized := normalizeMonth(month)
	if normalized.IsZero() {
		return 0, fmt.Errorf("%w: month is required", ErrValidation)
	}

	now := time.Now()
	zero := primitive.NewDecimal128(0, 0)
	inserted := 0

	pageReq := pagination.NewPageRequest(1, pagination.MaxPageSize)
	for {
		members, total, err := l.memberRepo.ListMembers(ctx, &repository.ListMembersParams{Page: pageReq})
		if err != nil {
			return inserted, fmt.Errorf("failed to list members: %w", err)
		}

		records := make([]*models.MonthlyRecord, len(members))
		for i, member := range members {
			records[i] = &models.MonthlyRecord{
				ID:                  primitive.NewObjectID(),
				MemberID:            member.ID,
				Month:               normalized,
				TotalSavings:        zero,
				TotalLoans:          zero,
				LoanBalance:         zero,
				MonthlyContribution: zero,
				MonthlyRepayment:    zero,
				Status:              constants.RecordStatusPending.String(),
				CreatedBy:           &createdBy,
				CreatedAt:           now,
				UpdatedAt:           now,
			}
		}

		count, err := l.recordRepo.CreateRecords(ctx, records)
		if err != nil {
			return inserted, fmt.Errorf("failed to create records: %w", err)
		}
		inserted += count

		if int64(pageReq.Page*pageReq.PageSize) >= total {
			break
		}
		pageReq = pagination.NewPageRequest(pageReq.Page+1, pageReq.PageSize)
	}

	return inserted, nil
}

func (l *reviewLogic) loadRecord(ctx context.Context, id primitive.ObjectID) (*models.MonthlyRecord, error) {
	record, err := l.recordRepo.GetMonthlyRecord(ctx, id)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return record, nil
}

func (l *reviewLogic) loadEntry(ctx context.Context, id primitive.ObjectID) (*models.ChangeLogEntry, error) {
	entry, err := l.changeRepo.GetChangeLogEntry(ctx, id)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, ErrChangeNotFound
		}
		return nil, fmt.Errorf("failed to get change log entry: %w", err)
	}
	return entry, nil
}

// normalizeMonth truncates a timestamp to the first of its month in UTC.
func normalizeMonth(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), 1, 0, 0, 0, 0, time.UTC)
}

var ReviewLogicProviderSet = wire.NewSet(NewReviewLogic, wire.Bind(new(ReviewLogic), new(*reviewLogic)))
