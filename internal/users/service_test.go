package users

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/sim-feed/user-service/internal/apperr"
	"github.com/sim-feed/user-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockStore) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockStore) Save(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockStore) Delete(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

var _ Store = (*MockStore)(nil)

func newTestService(store Store) *Service {
	logger, _ := zap.NewDevelopment()
	return NewService(store, nil, time.Minute, logger.Sugar())
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, status, apperr.StatusOf(err))
}

func TestGetByID(t *testing.T) {
	store := &MockStore{}
	store.On("FindByID", mock.Anything, "user_1").
		Return(&model.User{ID: "user_1", Username: "ada"}, nil)

	user, err := newTestService(store).GetByID(context.Background(), "user_1")
	require.NoError(t, err)
	assert.Equal(t, "ada", user.Username)
}

func TestGetByIDNotFound(t *testing.T) {
	store := &MockStore{}
	store.On("FindByID", mock.Anything, "user_missing").
		Return(nil, gorm.ErrRecordNotFound)

	_, err := newTestService(store).GetByID(context.Background(), "user_missing")
	requireStatus(t, err, http.StatusNotFound)
}

func TestUpdateRequesterMismatch(t *testing.T) {
	// Unauthorized regardless of the body contents: the store is never hit.
	store := &MockStore{}
	svc := newTestService(store)

	_, err := svc.Update(context.Background(), "u1", "u2", UpdateParams{ID: "u1", Username: "x", Bio: "y"})
	requireStatus(t, err, http.StatusUnauthorized)
	store.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestUpdateValidation(t *testing.T) {
	tests := []struct {
		name   string
		params UpdateParams
	}{
		{"body id mismatch", UpdateParams{ID: "other", Username: "ada", Bio: "ok"}},
		{"bio too long", UpdateParams{ID: "u1", Username: "ada", Bio: strings.Repeat("b", 201)}},
		{"username too long", UpdateParams{ID: "u1", Username: strings.Repeat("u", 51), Bio: "ok"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestService(&MockStore{}).Update(context.Background(), "u1", "u1", tt.params)
			requireStatus(t, err, http.StatusBadRequest)
		})
	}
}

func TestUpdateOverwritesWhitelistedFields(t *testing.T) {
	store := &MockStore{}
	store.On("FindByID", mock.Anything, "u1").
		Return(&model.User{ID: "u1", Username: "old", Bio: "old bio"}, nil)
	store.On("Save", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Username == "new" && u.Bio == "new bio"
	})).Return(nil)

	user, err := newTestService(store).Update(context.Background(), "u1", "u1",
		UpdateParams{ID: "u1", Username: "new", Bio: "new bio"})
	require.NoError(t, err)
	assert.Equal(t, "new", user.Username)
	store.AssertExpectations(t)
}

func TestCreateBlankUsername(t *testing.T) {
	for _, username := range []string{"", "   "} {
		_, err := newTestService(&MockStore{}).Create(context.Background(), "user_1", username)
		requireStatus(t, err, http.StatusBadRequest)
	}
}

func TestUpdateBioCountsRunesNotBytes(t *testing.T) {
	bio := strings.Repeat("é", 200) // 400 bytes, 200 characters
	store := &MockStore{}
	store.On("FindByID", mock.Anything, "u1").
		Return(&model.User{ID: "u1", Username: "ada"}, nil)
	store.On("Save", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Bio == bio
	})).Return(nil)

	_, err := newTestService(store).Update(context.Background(), "u1", "u1",
		UpdateParams{ID: "u1", Username: "ada", Bio: bio})
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestDeleteRequesterMismatch(t *testing.T) {
	err := newTestService(&MockStore{}).Delete(context.Background(), "u1", "u2")
	requireStatus(t, err, http.StatusUnauthorized)
}
