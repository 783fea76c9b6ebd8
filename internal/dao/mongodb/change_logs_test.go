package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/constants"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/fields"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/repository"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/models"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/pkg/pagination"
)

func TestChangeLogsDAO_SetChangeLogStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	t.Run("pending entry transitions once", func(t *testing.T) {
		db := setupIntegrationDatabase(t)
		dao := NewChangeLogsDAO(db, zap.NewNop())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		entry := buildChangeLogEntry()
		require.NoError(t, dao.InsertChangeLogs(ctx, []*models.ChangeLogEntry{entry}))

		reviewer := primitive.NewObjectID()
		reviewedAt := time.Now().UTC().Truncate(time.Millisecond)

		matched, err := dao.SetChangeLogStatus(ctx, &repository.SetChangeLogStatusParams{
			EntryID:        entry.ID,
			ExpectedStatus: constants.ChangeStatusPending.String(),
			NewStatus:      constants.ChangeStatusApproved.String(),
			ReviewedBy:     &reviewer,
			ReviewedAt:     &reviewedAt,
		})
		require.NoError(t, err)
		require.Equal(t, int64(1), matched)

		stored, err := dao.GetChangeLogEntry(ctx, entry.ID)
		require.NoError(t, err)
		require.Equal(t, constants.ChangeStatusApproved.String(), stored.Status)
		require.NotNil(t, stored.ReviewedBy)
		require.Equal(t, reviewer, *stored.ReviewedBy)
	})

	t.Run("second transition matches nothing", func(t *testing.T) {
		db := setupIntegrationDatabase(t)
		dao := NewChangeLogsDAO(db, zap.NewNop())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		entry := buildChangeLogEntry()
		require.NoError(t, dao.InsertChangeLogs(ctx, []*models.ChangeLogEntry{entry}))

		reviewer := primitive.NewObjectID()
		reviewedAt := time.Now().UTC().Truncate(time.Millisecond)
		params := &repository.SetChangeLogStatusParams{
			EntryID:        entry.ID,
			ExpectedStatus: constants.ChangeStatusPending.String(),
			NewStatus:      constants.ChangeStatusApproved.String(),
			ReviewedBy:     &reviewer,
			ReviewedAt:     &reviewedAt,
		}

		matched, err := dao.SetChangeLogStatus(ctx, params)
		require.NoError(t, err)
		require.Equal(t, int64(1), matched)

		matched, err = dao.SetChangeLogStatus(ctx, params)
		require.NoError(t, err)
		require.Zero(t, matched)
	})

	t.Run("missing entry matches nothing", func(t *testing.T) {
		db := setupIntegrationDatabase(t)
		dao := NewChangeLogsDAO(db, zap.NewNop())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		matched, err := dao.SetChangeLogStatus(ctx, &repository.SetChangeLogStatusParams{
			EntryID:        primitive.NewObjectID(),
			ExpectedStatus: constants.ChangeStatusPending.String(),
			NewStatus:      constants.ChangeStatusNeedsRevision.String(),
		})
		require.NoError(t, err)
		require.Zero(t, matched)
	})
}

func TestChangeLogsDAO_ListChangeLogs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupIntegrationDatabase(t)
	dao := NewChangeLogsDAO(db, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	recordID := primitive.NewObjectID()
	otherRecordID := primitive.NewObjectID()
	now := time.Now().UTC().Truncate(time.Millisecond)

	older := buildChangeLogEntry()
	older.MonthlyRecordID = recordID
	older.CreatedAt = now.Add(-time.Hour)

	newer := buildChangeLogEntry()
	newer.MonthlyRecordID = recordID
	newer.FieldName = fields.FieldRecordTotalLoans
	newer.CreatedAt = now

	approved := buildChangeLogEntry()
	approved.MonthlyRecordID = recordID
	approved.Status = constants.ChangeStatusApproved.String()
	approved.CreatedAt = now.Add(-2 * time.Hour)

	unrelated := buildChangeLogEntry()
	unrelated.MonthlyRecordID = otherRecordID
	unrelated.CreatedAt = now

	require.NoError(t, dao.InsertChangeLogs(ctx, []*models.ChangeLogEntry{older, newer, approved, unrelated}))

	t.Run("filters by record and status newest first", func(t *testing.T) {
		entries, total, err := dao.ListChangeLogs(ctx, &repository.ListChangeLogsParams{
			RecordID: &recordID,
			Status:   constants.ChangeStatusPending.String(),
			Page:     pagination.NewPageRequest(1, 10),
		})
		require.NoError(t, err)
		require.Equal(t, int64(2), total)
		require.Len(t, entries, 2)
		require.Equal(t, newer.ID, entries[0].ID)
		require.Equal(t, older.ID, entries[1].ID)
	})

	t.Run("paginates", func(t *testing.T) {
		entries, total, err := dao.ListChangeLogs(ctx, &repository.ListChangeLogsParams{
			RecordID: &recordID,
			Page:     pagination.NewPageRequest(2, 2),
		})
		require.NoError(t, err)
		require.Equal(t, int64(3), total)
		require.Len(t, entries, 1)
		require.Equal(t, approved.ID, entries[0].ID)
	})
}

func buildChangeLogEntry() *models.ChangeLogEntry {
	return &models.ChangeLogEntry{
		ID:              primitive.NewObjectID(),
		MonthlyRecordID: primitive.NewObjectID(),
		FieldName:       fields.FieldRecordTotalSavings,
		OldValue:        "100.00",
		NewValue:        "150.00",
		Status:          constants.ChangeStatusPending.String(),
		ChangedBy:       primitive.NewObjectID(),
		BatchSerial:     1,
		CreatedAt:       time.Now().UTC().Truncate(time.Millisecond),
	}
}
