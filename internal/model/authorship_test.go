package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func i64Ptr(i int64) *int64   { return &i }

func TestPostAuthorship(t *testing.T) {
	tests := []struct {
		name    string
		post    Post
		wantErr bool
	}{
		{"user author only", Post{UserAuthorID: strPtr("user_1")}, false},
		{"persona author only", Post{PersonaAuthorID: i64Ptr(7)}, false},
		{"both authors", Post{UserAuthorID: strPtr("user_1"), PersonaAuthorID: i64Ptr(7)}, true},
		{"no author", Post{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.BeforeSave(nil)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrExactlyOneRef)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCommentAuthorship(t *testing.T) {
	assert.NoError(t, (&Comment{UserAuthorID: strPtr("user_1")}).BeforeSave(nil))
	assert.NoError(t, (&Comment{PersonaAuthorID: i64Ptr(3)}).BeforeSave(nil))
	assert.ErrorIs(t, (&Comment{}).BeforeSave(nil), ErrExactlyOneRef)
	assert.ErrorIs(t, (&Comment{UserAuthorID: strPtr("u"), PersonaAuthorID: i64Ptr(1)}).BeforeSave(nil), ErrExactlyOneRef)
}

func TestLikeAuthorship(t *testing.T) {
	assert.NoError(t, (&Like{PostID: 1, UserID: strPtr("user_1")}).BeforeSave(nil))
	assert.NoError(t, (&Like{PostID: 1, PersonaID: i64Ptr(3)}).BeforeSave(nil))
	assert.ErrorIs(t, (&Like{PostID: 1}).BeforeSave(nil), ErrExactlyOneRef)
	assert.ErrorIs(t, (&Like{PostID: 1, UserID: strPtr("u"), PersonaID: i64Ptr(1)}).BeforeSave(nil), ErrExactlyOneRef)
}

func TestChatMemberAuthorship(t *testing.T) {
	assert.NoError(t, (&ChatMember{ChatID: 1, UserID: strPtr("user_1")}).BeforeSave(nil))
	assert.NoError(t, (&ChatMember{ChatID: 1, PersonaID: i64Ptr(3)}).BeforeSave(nil))
	assert.ErrorIs(t, (&ChatMember{ChatID: 1}).BeforeSave(nil), ErrExactlyOneRef)
	assert.ErrorIs(t, (&ChatMember{ChatID: 1, UserID: strPtr("u"), PersonaID: i64Ptr(1)}).BeforeSave(nil), ErrExactlyOneRef)
}

func TestUserFollowTarget(t *testing.T) {
	tests := []struct {
		name    string
		follow  UserFollow
		wantErr bool
	}{
		{"user target only", UserFollow{FollowerID: "user_1", UserFollowedID: strPtr("user_2")}, false},
		{"persona target only", UserFollow{FollowerID: "user_1", PersonaFollowedID: i64Ptr(4)}, false},
		{"both targets", UserFollow{FollowerID: "user_1", UserFollowedID: strPtr("user_2"), PersonaFollowedID: i64Ptr(4)}, true},
		{"no target", UserFollow{FollowerID: "user_1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.follow.BeforeSave(nil)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrExactlyOneRef)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
