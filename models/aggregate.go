package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReactionType enumerates the supported reaction kinds.
type ReactionType string

const (
	ReactionLike  ReactionType = "like"
	ReactionLove  ReactionType = "love"
	ReactionHaha  ReactionType = "haha"
	ReactionSad   ReactionType = "sad"
	ReactionAngry ReactionType = "angry"
)

// Valid reports whether t is one of the enumerated reaction kinds.
func (t ReactionType) Valid() bool {
	switch t {
	case ReactionLike, ReactionLove, ReactionHaha, ReactionSad, ReactionAngry:
		return true
	}
	return false
}

var (
	ErrCommentNotFound     = errors.New("comment not found")
	ErrReplyNotFound       = errors.New("reply not found")
	ErrReactionNotFound    = errors.New("reaction not found")
	ErrNotReactionOwner    = errors.New("reaction belongs to another user")
	ErrInvalidReactionType = errors.New("invalid reaction type")
)

// Reaction is a single user's emoji-style response to a post, comment or reply.
// A target holds at most one reaction per user; a repeated reaction from the
// same user changes the type of the existing entry in place.
type Reaction struct {
	ID        string       `json:"id"`
	UserID    uint         `json:"user_id"`
	Type      ReactionType `json:"type"`
	CreatedAt time.Time    `json:"created_at"`
}

// Reply lives inside exactly one comment. The author name is snapshotted at
// write time so reads never fan out to the users table.
type Reply struct {
	ID         string     `json:"id"`
	UserID     uint       `json:"user_id"`
	AuthorName string     `json:"author_name"`
	Content    string     `json:"content"`
	Reactions  []Reaction `json:"reactions"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Comment lives inside exactly one post; its id is only meaningful within
// that post. Replies and reactions are ordered sequences, newest reply first.
type Comment struct {
	ID         string     `json:"id"`
	UserID     uint       `json:"user_id"`
	AuthorName string     `json:"author_name"`
	Content    string     `json:"content"`
	Replies    []Reply    `json:"replies"`
	Reactions  []Reaction `json:"reactions"`
	CreatedAt  time.Time  `json:"created_at"`
}

// PrependComment inserts a new comment at the front of the post's comment
// sequence and returns the updated sequence.
func (p *Post) PrependComment(userID uint, authorName, content string) []Comment {
	comment := Comment{
		ID:         uuid.NewString(),
		UserID:     userID,
		AuthorName: authorName,
		Content:    content,
		Replies:    []Reply{},
		Reactions:  []Reaction{},
		CreatedAt:  time.Now(),
	}
	p.Comments = append([]Comment{comment}, p.Comments...)
	return p.Comments
}

// PrependReply inserts a new reply at the front of the addressed comment's
// reply sequence and returns the updated sequence.
func (p *Post) PrependReply(commentID string, userID uint, authorName, content string) ([]Reply, error) {
	comment := p.findComment(commentID)
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	reply := Reply{
		ID:         uuid.NewString(),
		UserID:     userID,
		AuthorName: authorName,
		Content:    content,
		Reactions:  []Reaction{},
		CreatedAt:  time.Now(),
	}
	comment.Replies = append([]Reply{reply}, comment.Replies...)
	return comment.Replies, nil
}

// SetReaction upserts the caller's reaction on the addressed target. An empty
// commentID addresses the post itself, a non-empty replyID addresses a reply
// within that comment. If the user already reacted on the target, only the
// type changes; the reaction keeps its id and position.
func (p *Post) SetReaction(commentID, replyID string, userID uint, kind ReactionType) ([]Reaction, error) {
	if !kind.Valid() {
		return nil, ErrInvalidReactionType
	}
	set, err := p.reactionSet(commentID, replyID)
	if err != nil {
		return nil, err
	}
	for i := range *set {
		if (*set)[i].UserID == userID {
			(*set)[i].Type = kind
			return *set, nil
		}
	}
	*set = append(*set, Reaction{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      kind,
		CreatedAt: time.Now(),
	})
	return *set, nil
}

// RemoveReaction deletes the addressed reaction. Existence is checked before
// ownership: an unknown reaction id reports not-found even for non-owners,
// while an existing reaction owned by someone else is refused and the set is
// left unchanged.
func (p *Post) RemoveReaction(commentID, replyID, reactionID string, userID uint) ([]Reaction, error) {
	set, err := p.reactionSet(commentID, replyID)
	if err != nil {
		return nil, err
	}
	for i := range *set {
		if (*set)[i].ID != reactionID {
			continue
		}
		if (*set)[i].UserID != userID {
			return nil, ErrNotReactionOwner
		}
		*set = append((*set)[:i], (*set)[i+1:]...)
		return *set, nil
	}
	return nil, ErrReactionNotFound
}

func (p *Post) findComment(commentID string) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return &p.Comments[i]
		}
	}
	return nil
}

// reactionSet resolves the reaction list of the addressed target. The full id
// chain is required; no id is ever inferred from another.
func (p *Post) reactionSet(commentID, replyID string) (*[]Reaction, error) {
	if commentID == "" {
		return &p.Reactions, nil
	}
	comment := p.findComment(commentID)
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if replyID == "" {
		return &comment.Reactions, nil
	}
	for i := range comment.Replies {
		if comment.Replies[i].ID == replyID {
			return &comment.Replies[i].Reactions, nil
		}
	}
	return nil, ErrReplyNotFound
}
