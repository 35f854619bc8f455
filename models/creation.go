package models

import (
	"time"

	"gorm.io/datatypes"
)

// CreationType tags which capability produced a creation.
type CreationType string

const (
	CreationTypeArticle      CreationType = "article"
	CreationTypeBlogTitle    CreationType = "blog-title"
	CreationTypeImage        CreationType = "image"
	CreationTypeResumeReview CreationType = "resume-review"
)

// Creation records one generation attempt. Prompt and content are immutable
// after insert; only the likes array and UpdatedAt ever change.
type Creation struct {
	ID        uint                        `json:"id" gorm:"primarykey"`
	UserID    string                      `json:"user_id" gorm:"index;not null"`
	Prompt    string                      `json:"prompt" gorm:"type:text;not null"`
	Content   string                      `json:"content" gorm:"type:text"`
	Type      CreationType                `json:"type" gorm:"type:varchar(50);index;not null"`
	Publish   bool                        `json:"publish" gorm:"default:false"` // only ever true for type 'image'
	Likes     datatypes.JSONSlice[string] `json:"likes"`
	CreatedAt time.Time                   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time                   `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Creation model.
func (Creation) TableName() string {
	return "creations"
}

// PublishedCreation is the feed view of a published creation: the row plus
// like aggregates for the requesting viewer and the owner's display name.
type PublishedCreation struct {
	Creation
	LikeCount int    `json:"like_count"`
	IsLiked   bool   `json:"is_liked"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
