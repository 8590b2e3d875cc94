package follows

import (
	"context"
	"net/http"
	"testing"

	"github.com/sim-feed/user-service/internal/apperr"
	"github.com/sim-feed/user-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Create(ctx context.Context, follow *model.UserFollow) error {
	return m.Called(ctx, follow).Error(0)
}

func (m *MockStore) FindByID(ctx context.Context, id int64) (*model.UserFollow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserFollow), args.Error(1)
}

func (m *MockStore) Delete(ctx context.Context, follow *model.UserFollow) error {
	return m.Called(ctx, follow).Error(0)
}

func (m *MockStore) ListByFollower(ctx context.Context, userID string) ([]model.UserFollow, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserFollow), args.Error(1)
}

func (m *MockStore) ListByUserFollowed(ctx context.Context, userID string) ([]model.UserFollow, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserFollow), args.Error(1)
}

var _ Store = (*MockStore)(nil)

type stubUsers struct {
	users map[string]*model.User
}

func (s *stubUsers) GetByID(ctx context.Context, id string) (*model.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User not found")
}

type stubPersonas struct {
	personas map[int64]*model.Persona
}

func (s *stubPersonas) GetByID(ctx context.Context, id int64) (*model.Persona, error) {
	if p, ok := s.personas[id]; ok {
		return p, nil
	}
	return nil, apperr.NotFound("Persona not found")
}

func strPtr(s string) *string { return &s }
func i64Ptr(i int64) *int64   { return &i }

func newTestService(store Store) *Service {
	users := &stubUsers{users: map[string]*model.User{
		"user_1": {ID: "user_1", Username: "ada"},
		"user_2": {ID: "user_2", Username: "grace"},
	}}
	personas := &stubPersonas{personas: map[int64]*model.Persona{
		7: {ID: 7, Username: "shadow"},
	}}
	return NewService(store, users, personas)
}

func TestFollowSelf(t *testing.T) {
	_, err := newTestService(&MockStore{}).Follow(context.Background(),
		NewFollow{UserID: strPtr("user_1")}, "user_1")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	assert.Equal(t, "Requester cannot follow themselves.", err.Error())
}

func TestFollowTargetValidation(t *testing.T) {
	tests := []struct {
		name      string
		newFollow NewFollow
	}{
		{"neither target", NewFollow{}},
		{"both targets", NewFollow{UserID: strPtr("user_2"), PersonaID: i64Ptr(7)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestService(&MockStore{}).Follow(context.Background(), tt.newFollow, "user_1")
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
			assert.Equal(t, "Either userId or personaId must be provided, not both.", err.Error())
		})
	}
}

func TestFollowUser(t *testing.T) {
	store := &MockStore{}
	store.On("Create", mock.Anything, mock.MatchedBy(func(f *model.UserFollow) bool {
		return f.FollowerID == "user_1" &&
			f.UserFollowedID != nil && *f.UserFollowedID == "user_2" &&
			f.PersonaFollowedID == nil
	})).Return(nil)

	follow, err := newTestService(store).Follow(context.Background(),
		NewFollow{UserID: strPtr("user_2")}, "user_1")
	require.NoError(t, err)
	assert.Equal(t, "user_2", *follow.UserFollowedID)
	store.AssertExpectations(t)
}

func TestFollowPersona(t *testing.T) {
	store := &MockStore{}
	store.On("Create", mock.Anything, mock.MatchedBy(func(f *model.UserFollow) bool {
		return f.FollowerID == "user_1" &&
			f.PersonaFollowedID != nil && *f.PersonaFollowedID == 7 &&
			f.UserFollowedID == nil
	})).Return(nil)

	follow, err := newTestService(store).Follow(context.Background(),
		NewFollow{PersonaID: i64Ptr(7)}, "user_1")
	require.NoError(t, err)
	assert.EqualValues(t, 7, *follow.PersonaFollowedID)
}

func TestFollowUnknownTarget(t *testing.T) {
	_, err := newTestService(&MockStore{}).Follow(context.Background(),
		NewFollow{UserID: strPtr("user_missing")}, "user_1")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestDeleteFollowNotFound(t *testing.T) {
	store := &MockStore{}
	store.On("FindByID", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	err := newTestService(store).Delete(context.Background(), 42, "user_1")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
	assert.Equal(t, "Follow not found", err.Error())
}

func TestDeleteFollowNotFollower(t *testing.T) {
	store := &MockStore{}
	store.On("FindByID", mock.Anything, int64(42)).
		Return(&model.UserFollow{ID: 42, FollowerID: "user_2", UserFollowedID: strPtr("user_3")}, nil)

	err := newTestService(store).Delete(context.Background(), 42, "user_1")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))
	assert.Equal(t, "Requester is not the follower", err.Error())
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteFollowByFollower(t *testing.T) {
	follow := &model.UserFollow{ID: 42, FollowerID: "user_1", UserFollowedID: strPtr("user_2")}
	store := &MockStore{}
	store.On("FindByID", mock.Anything, int64(42)).Return(follow, nil)
	store.On("Delete", mock.Anything, follow).Return(nil)

	require.NoError(t, newTestService(store).Delete(context.Background(), 42, "user_1"))
	store.AssertExpectations(t)
}
