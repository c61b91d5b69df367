package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is the aggregate root. The row owns its comments, replies and reactions:
// they are stored as JSON documents on the same row and always written back as
// a unit. Version guards concurrent whole-aggregate writes.
type Post struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Version   int64      `gorm:"not null;default:0" json:"-"`
	Comments  []Comment  `gorm:"serializer:json;type:json" json:"comments"`
	Reactions []Reaction `gorm:"serializer:json;type:json" json:"reactions"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	User      User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
}

// BeforeCreate assigns the document id and materializes empty collections so
// the stored JSON is always an array, never null.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
	if p.Reactions == nil {
		p.Reactions = []Reaction{}
	}
	return nil
}
