package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPost() *Post {
	return &Post{
		ID:        "post-1",
		UserID:    1,
		Title:     "A",
		Content:   "B",
		Comments:  []Comment{},
		Reactions: []Reaction{},
	}
}

func TestPrependComment_NewestFirst(t *testing.T) {
	post := newTestPost()

	post.PrependComment(2, "alice", "first")
	comments := post.PrependComment(3, "bob", "second")

	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Content)
	assert.Equal(t, uint(3), comments[0].UserID)
	assert.Equal(t, "bob", comments[0].AuthorName)
	assert.Equal(t, "first", comments[1].Content)
	assert.NotEmpty(t, comments[0].ID)
	assert.NotEqual(t, comments[0].ID, comments[1].ID)
}

func TestPrependReply_NewestFirst(t *testing.T) {
	post := newTestPost()
	comments := post.PrependComment(2, "alice", "hi")
	commentID := comments[0].ID

	_, err := post.PrependReply(commentID, 3, "bob", "older reply")
	require.NoError(t, err)
	replies, err := post.PrependReply(commentID, 4, "carol", "newer reply")
	require.NoError(t, err)

	require.Len(t, replies, 2)
	assert.Equal(t, "newer reply", replies[0].Content)
	assert.Equal(t, "older reply", replies[1].Content)
}

func TestPrependReply_UnknownComment(t *testing.T) {
	post := newTestPost()

	_, err := post.PrependReply("no-such-comment", 3, "bob", "hi")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestSetReaction_OnPost(t *testing.T) {
	post := newTestPost()

	reactions, err := post.SetReaction("", "", 2, ReactionLove)
	require.NoError(t, err)
	require.Len(t, reactions, 1)
	assert.Equal(t, ReactionLove, reactions[0].Type)
	assert.NotEmpty(t, reactions[0].ID)
}

func TestSetReaction_OverwritesSameUser(t *testing.T) {
	post := newTestPost()

	first, err := post.SetReaction("", "", 2, ReactionLove)
	require.NoError(t, err)
	originalID := first[0].ID

	reactions, err := post.SetReaction("", "", 2, ReactionLike)
	require.NoError(t, err)

	require.Len(t, reactions, 1)
	assert.Equal(t, ReactionLike, reactions[0].Type)
	assert.Equal(t, originalID, reactions[0].ID, "overwrite keeps the reaction id")
}

func TestSetReaction_DistinctUsersAccumulate(t *testing.T) {
	post := newTestPost()

	_, err := post.SetReaction("", "", 2, ReactionHaha)
	require.NoError(t, err)
	reactions, err := post.SetReaction("", "", 3, ReactionSad)
	require.NoError(t, err)

	require.Len(t, reactions, 2)
}

func TestSetReaction_InvalidType(t *testing.T) {
	post := newTestPost()

	_, err := post.SetReaction("", "", 2, ReactionType("meh"))
	assert.ErrorIs(t, err, ErrInvalidReactionType)
	assert.Empty(t, post.Reactions)
}

func TestSetReaction_OnCommentAndReply(t *testing.T) {
	post := newTestPost()
	comments := post.PrependComment(2, "alice", "hi")
	commentID := comments[0].ID
	replies, err := post.PrependReply(commentID, 3, "bob", "yo")
	require.NoError(t, err)
	replyID := replies[0].ID

	commentReactions, err := post.SetReaction(commentID, "", 4, ReactionAngry)
	require.NoError(t, err)
	require.Len(t, commentReactions, 1)

	replyReactions, err := post.SetReaction(commentID, replyID, 5, ReactionLike)
	require.NoError(t, err)
	require.Len(t, replyReactions, 1)

	// The three targets keep independent sets.
	assert.Empty(t, post.Reactions)
	assert.Len(t, post.Comments[0].Reactions, 1)
	assert.Len(t, post.Comments[0].Replies[0].Reactions, 1)
}

func TestSetReaction_UnknownTargets(t *testing.T) {
	post := newTestPost()
	comments := post.PrependComment(2, "alice", "hi")

	_, err := post.SetReaction("no-such-comment", "", 3, ReactionLike)
	assert.ErrorIs(t, err, ErrCommentNotFound)

	_, err = post.SetReaction(comments[0].ID, "no-such-reply", 3, ReactionLike)
	assert.ErrorIs(t, err, ErrReplyNotFound)
}

func TestRemoveReaction_Owner(t *testing.T) {
	post := newTestPost()
	reactions, err := post.SetReaction("", "", 2, ReactionLove)
	require.NoError(t, err)

	updated, err := post.RemoveReaction("", "", reactions[0].ID, 2)
	require.NoError(t, err)
	assert.Empty(t, updated)
	assert.Empty(t, post.Reactions)
}

func TestRemoveReaction_OtherUser(t *testing.T) {
	post := newTestPost()
	reactions, err := post.SetReaction("", "", 2, ReactionLove)
	require.NoError(t, err)

	_, err = post.RemoveReaction("", "", reactions[0].ID, 99)
	assert.ErrorIs(t, err, ErrNotReactionOwner)
	assert.Len(t, post.Reactions, 1, "set is unchanged after a refused removal")
}

func TestRemoveReaction_Unknown(t *testing.T) {
	post := newTestPost()

	_, err := post.RemoveReaction("", "", "no-such-reaction", 2)
	assert.ErrorIs(t, err, ErrReactionNotFound)

	_, err = post.RemoveReaction("no-such-comment", "", "whatever", 2)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
