package logic

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/constants"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/repository"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/models"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/pkg/pagination"
)

type mockMonthlyRecordsRepository struct {
	mock.Mock
}

func newMockMonthlyRecordsRepository() *mockMonthlyRecordsRepository {
	return &mockMonthlyRecordsRepository{}
}

func (m *mockMonthlyRecordsRepository) GetMonthlyRecord(ctx context.Context, id primitive.ObjectID) (*models.MonthlyRecord, error) {
	args := m.Called(ctx, id)
	if record := args.Get(0); record != nil {
		return record.(*models.MonthlyRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMonthlyRecordsRepository) UpdateRecordFields(ctx context.Context, params *repository.UpdateRecordFieldsParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *mockMonthlyRecordsRepository) ListRecordsByMonth(ctx context.Context, params *repository.ListRecordsParams) ([]*models.MonthlyRecord, int64, error) {
	args := m.Called(ctx, params)
	if records := args.Get(0); records != nil {
		return records.([]*models.MonthlyRecord), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *mockMonthlyRecordsRepository) CreateRecords(ctx context.Context, records []*models.MonthlyRecord) (int, error) {
	args := m.Called(ctx, records)
	return args.Int(0), args.Error(1)
}

type mockChangeLogsRepository struct {
	mock.Mock
}

func newMockChangeLogsRepository() *mockChangeLogsRepository {
	return &mockChangeLogsRepository{}
}

func (m *mockChangeLogsRepository) InsertChangeLogs(ctx context.Context, entries []*models.ChangeLogEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *mockChangeLogsRepository) GetChangeLogEntry(ctx context.Context, id primitive.ObjectID) (*models.ChangeLogEntry, error) {
	args := m.Called(ctx, id)
	if entry := args.Get(0); entry != nil {
		return entry.(*models.ChangeLogEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChangeLogsRepository) SetChangeLogStatus(ctx context.Context, params *repository.SetChangeLogStatusParams) (int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockChangeLogsRepository) ListChangeLogs(ctx context.Context, params *repository.ListChangeLogsParams) ([]*models.ChangeLogEntry, int64, error) {
	args := m.Called(ctx, params)
	if entries := args.Get(0); entries != nil {
		return entries.([]*models.ChangeLogEntry), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

type mockCommentsRepository struct {
	mock.Mock
}

func newMockCommentsRepository() *mockCommentsRepository {
	return &mockCommentsRepository{}
}

func (m *mockCommentsRepository) InsertComment(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *mockCommentsRepository) ListCommentsByChangeLog(ctx context.Context, changeLogID primitive.ObjectID) ([]*models.Comment, error) {
	args := m.Called(ctx, changeLogID)
	if comments := args.Get(0); comments != nil {
		return comments.([]*models.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotificationsRepository struct {
	mock.Mock
}

func newMockNotificationsRepository() *mockNotificationsRepository {
	return &mockNotificationsRepository{}
}

func (m *mockNotificationsRepository) InsertNotifications(ctx context.Context, notifications []*models.Notification) ([]int, error) {
	args := m.Called(ctx, notifications)
	if failed := args.Get(0); failed != nil {
		return failed.([]int), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationsRepository) GetNotification(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	args := m.Called(ctx, id)
	if notification := args.Get(0); notification != nil {
		return notification.(*models.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationsRepository) SetNotificationRead(ctx context.Context, id, userID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationsRepository) ListNotificationsByUser(ctx context.Context, params *repository.ListNotificationsParams) ([]*models.Notification, error) {
	args := m.Called(ctx, params)
	if notifications := args.Get(0); notifications != nil {
		return notifications.([]*models.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMembersRepository struct {
	mock.Mock
}

func newMockMembersRepository() *mockMembersRepository {
	return &mockMembersRepository{}
}

func (m *mockMembersRepository) GetMember(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	args := m.Called(ctx, id)
	if member := args.Get(0); member != nil {
		return member.(*models.Member), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMembersRepository) ListMembers(ctx context.Context, params *repository.ListMembersParams) ([]*models.Member, int64, error) {
	args := m.Called(ctx, params)
	if members := args.Get(0); members != nil {
		return members.([]*models.Member), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

type mockUsersRepository struct {
	mock.Mock
}

func newMockUsersRepository() *mockUsersRepository {
	return &mockUsersRepository{}
}

func (m *mockUsersRepository) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUsersRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUsersRepository) CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	if oid := args.Get(0); oid != nil {
		return oid.(primitive.ObjectID), args.Error(1)
	}
	return primitive.NilObjectID, args.Error(1)
}

func (m *mockUsersRepository) UpdateUser(ctx context.Context, id primitive.ObjectID, opts ...repository.UpdateOption) error {
	args := m.Called(ctx, id, opts)
	return args.Error(0)
}

func (m *mockUsersRepository) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUsersRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if users := args.Get(0); users != nil {
		return users.([]*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockOutboxRepository struct {
	mock.Mock
}

func newMockOutboxRepository() *mockOutboxRepository {
	return &mockOutboxRepository{}
}

func (m *mockOutboxRepository) Create(ctx context.Context, message *models.OutboxMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *mockOutboxRepository) ClaimAndFetchEvents(ctx context.Context, limit int) ([]*models.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if messages := args.Get(0); messages != nil {
		return messages.([]*models.OutboxMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOutboxRepository) MarkAsProcessed(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOutboxRepository) IncrementRetry(ctx context.Context, id primitive.ObjectID, errorMessage string) error {
	args := m.Called(ctx, id, errorMessage)
	return args.Error(0)
}

func (m *mockOutboxRepository) ReleaseStaleClaims(ctx context.Context, olderThan time.Duration) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

type mockRoleDirectory struct {
	mock.Mock
}

func newMockRoleDirectory() *mockRoleDirectory {
	return &mockRoleDirectory{}
}

func (m *mockRoleDirectory) HasRole(ctx context.Context, userID string, role constants.Role) (bool, error) {
	args := m.Called(ctx, userID, role)
	return args.Bool(0), args.Error(1)
}

func (m *mockRoleDirectory) GetUserRole(ctx context.Context, userID string) (constants.Role, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(constants.Role), args.Error(1)
}

func (m *mockRoleDirectory) ListUsersWithRole(ctx context.Context, role constants.Role) ([]string, error) {
	args := m.Called(ctx, role)
	if ids := args.Get(0); ids != nil {
		return ids.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRoleDirectory) AssignRole(ctx context.Context, userID string, role constants.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *mockRoleDirectory) RemoveRole(ctx context.Context, userID string, role constants.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

type mockDispatcher struct {
	mock.Mock
}

func newMockDispatcher() *mockDispatcher {
	return &mockDispatcher{}
}

func (m *mockDispatcher) NotifyUsers(ctx context.Context, batch *NotificationBatch) (*DispatchResult, error) {
	args := m.Called(ctx, batch)
	if result := args.Get(0); result != nil {
		return result.(*DispatchResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDispatcher) MarkRead(ctx context.Context, notificationID, caller primitive.ObjectID) error {
	args := m.Called(ctx, notificationID, caller)
	return args.Error(0)
}

func (m *mockDispatcher) ListForUser(ctx context.Context, userID primitive.ObjectID, limit int64, token pagination.PageToken) (*NotificationPage, error) {
	args := m.Called(ctx, userID, limit, token)
	if page := args.Get(0); page != nil {
		return page.(*NotificationPage), args.Error(1)
	}
	return nil, args.Error(1)
}
