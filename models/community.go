package models

import "time"

// CommunityPost is an image explicitly shared to the community feed. This is
// a separate mechanism from Creation.Publish and the two are intentionally
// not unified.
type CommunityPost struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	UserID      string    `json:"user_id" gorm:"index;not null"`
	ImageURL    string    `json:"image_url" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the CommunityPost model.
func (CommunityPost) TableName() string {
	return "community_posts"
}

// CommunityLike is one user's like on one community post. Uniqueness of the
// (user, post) pair is enforced by an existence check before insert, not by
// a database constraint.
type CommunityLike struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	PostID    uint      `json:"post_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the CommunityLike model.
func (CommunityLike) TableName() string {
	return "community_likes"
}

// PostUser is the slice of an identity profile shown alongside a post.
type PostUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	ImageURL  string `json:"imageUrl"`
}

// CommunityPostView is a post enriched with like aggregates and poster info.
type CommunityPostView struct {
	CommunityPost
	LikeCount int      `json:"like_count"`
	IsLiked   bool     `json:"is_liked"`
	User      PostUser `json:"user"`
}
