package chats

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

func (m *MockStore) CreateChat(ctx context.Context, chat *model.Chat) error {
	return m.Called(ctx, chat).Error(0)
}

func (m *MockStore) FindChatByID(ctx context.Context, id int64) (*model.Chat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Chat), args.Error(1)
}

func (m *MockStore) AddMember(ctx context.Context, member *model.ChatMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MockStore) FindMemberByID(ctx context.Context, id int64) (*model.ChatMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChatMember), args.Error(1)
}

func (m *MockStore) DeleteMember(ctx context.Context, member *model.ChatMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MockStore) ListMembers(ctx context.Context, chatID int64) ([]model.ChatMember, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChatMember), args.Error(1)
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

func TestCreateSeedsCreatorMembership(t *testing.T) {
	store := &MockStore{}
	store.On("CreateChat", mock.Anything, mock.MatchedBy(func(c *model.Chat) bool {
		return c.ChatName == "general" && c.CreatorID == "user_1" &&
			len(c.Members) == 1 && *c.Members[0].UserID == "user_1"
	})).Return(nil)

	chat, err := newTestService(store).Create(context.Background(), "general", "user_1")
	require.NoError(t, err)
	assert.Equal(t, "general", chat.ChatName)
	store.AssertExpectations(t)
}

func TestCreateBlankName(t *testing.T) {
	for _, name := range []string{"", "   "} {
		_, err := newTestService(&MockStore{}).Create(context.Background(), name, "user_1")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	}
}

func TestAddMemberXOR(t *testing.T) {
	tests := []struct {
		name   string
		member NewMember
	}{
		{"neither", NewMember{}},
		{"both", NewMember{UserID: strPtr("user_2"), PersonaID: i64Ptr(7)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestService(&MockStore{}).AddMember(context.Background(), 1, tt.member)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
		})
	}
}

func TestAddMemberChatMissing(t *testing.T) {
	store := &MockStore{}
	store.On("FindChatByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := newTestService(store).AddMember(context.Background(), 99, NewMember{UserID: strPtr("user_2")})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestAddMemberPersona(t *testing.T) {
	store := &MockStore{}
	store.On("FindChatByID", mock.Anything, int64(1)).
		Return(&model.Chat{ID: 1, CreatorID: "user_1"}, nil)
	store.On("AddMember", mock.Anything, mock.MatchedBy(func(m *model.ChatMember) bool {
		return m.ChatID == 1 && m.PersonaID != nil && *m.PersonaID == 7 && m.UserID == nil
	})).Return(nil)

	member, err := newTestService(store).AddMember(context.Background(), 1, NewMember{PersonaID: i64Ptr(7)})
	require.NoError(t, err)
	assert.EqualValues(t, 7, *member.PersonaID)
}

func TestRemoveMemberForbidden(t *testing.T) {
	store := &MockStore{}
	store.On("FindChatByID", mock.Anything, int64(1)).
		Return(&model.Chat{ID: 1, CreatorID: "user_1"}, nil)
	store.On("FindMemberByID", mock.Anything, int64(5)).
		Return(&model.ChatMember{ID: 5, ChatID: 1, UserID: strPtr("user_2")}, nil)

	err := newTestService(store).RemoveMember(context.Background(), 1, 5, "user_3")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))
}

func TestRemoveMemberByCreator(t *testing.T) {
	member := &model.ChatMember{ID: 5, ChatID: 1, UserID: strPtr("user_2")}
	store := &MockStore{}
	store.On("FindChatByID", mock.Anything, int64(1)).
		Return(&model.Chat{ID: 1, CreatorID: "user_1"}, nil)
	store.On("FindMemberByID", mock.Anything, int64(5)).Return(member, nil)
	store.On("DeleteMember", mock.Anything, member).Return(nil)

	require.NoError(t, newTestService(store).RemoveMember(context.Background(), 1, 5, "user_1"))
	store.AssertExpectations(t)
}

func TestRemoveMemberWrongChat(t *testing.T) {
	store := &MockStore{}
	store.On("FindChatByID", mock.Anything, int64(1)).
		Return(&model.Chat{ID: 1, CreatorID: "user_1"}, nil)
	store.On("FindMemberByID", mock.Anything, int64(5)).
		Return(&model.ChatMember{ID: 5, ChatID: 2, UserID: strPtr("user_2")}, nil)

	err := newTestService(store).RemoveMember(context.Background(), 1, 5, "user_1")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}
