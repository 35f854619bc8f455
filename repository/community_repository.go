package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/AdityaSohal/QuickAI/models"

	"gorm.io/gorm"
)

// CommunityRepository defines the interface for interacting with community
// posts and their like relation.
type CommunityRepository interface {
	CreatePost(post *models.CommunityPost) error
	GetPosts() ([]*models.CommunityPost, error)
	GetPostByID(id uint) (*models.CommunityPost, error)
	HasLike(userID string, postID uint) (bool, error)
	AddLike(userID string, postID uint) error
	RemoveLike(userID string, postID uint) error
	CountLikes(postID uint) (int64, error)
}

type communityRepository struct {
	db *gorm.DB
}

// NewCommunityRepository creates a new instance of CommunityRepository.
func NewCommunityRepository(db *gorm.DB) CommunityRepository {
	return &communityRepository{db: db}
}

// CreatePost inserts a new community post.
func (r *communityRepository) CreatePost(post *models.CommunityPost) error {
	if post == nil {
		return errors.New("post cannot be nil")
	}
	if err := r.db.Create(post).Error; err != nil {
		log.Printf("ERROR: [CommunityRepository] Failed to create post for user %s: %v", post.UserID, err)
		return fmt.Errorf("failed to create community post for user %s: %w", post.UserID, err)
	}
	log.Printf("INFO: [CommunityRepository] Created community post ID %d for user %s.", post.ID, post.UserID)
	return nil
}

// GetPosts retrieves all community posts, newest first.
func (r *communityRepository) GetPosts() ([]*models.CommunityPost, error) {
	var posts []*models.CommunityPost
	err := r.db.Order("created_at desc").Find(&posts).Error
	if err != nil {
		log.Printf("ERROR: [CommunityRepository] Failed to retrieve community posts: %v", err)
		return nil, fmt.Errorf("failed to retrieve community posts: %w", err)
	}
	return posts, nil
}

// GetPostByID retrieves one post. Returns (nil, nil) when not found.
func (r *communityRepository) GetPostByID(id uint) (*models.CommunityPost, error) {
	var post models.CommunityPost
	err := r.db.First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("ERROR: [CommunityRepository] Failed to retrieve post ID %d: %v", id, err)
		return nil, fmt.Errorf("failed to retrieve post ID %d: %w", id, err)
	}
	return &post, nil
}

// HasLike reports whether a user has already liked a post.
func (r *communityRepository) HasLike(userID string, postID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.CommunityLike{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		log.Printf("ERROR: [CommunityRepository] Failed to check like for user %s on post %d: %v", userID, postID, err)
		return false, fmt.Errorf("failed to check like on post %d: %w", postID, err)
	}
	return count > 0, nil
}

// AddLike records a like. Callers are expected to check HasLike first;
// there is no uniqueness constraint backing this up.
func (r *communityRepository) AddLike(userID string, postID uint) error {
	like := models.CommunityLike{UserID: userID, PostID: postID}
	if err := r.db.Create(&like).Error; err != nil {
		log.Printf("ERROR: [CommunityRepository] Failed to add like for user %s on post %d: %v", userID, postID, err)
		return fmt.Errorf("failed to add like on post %d: %w", postID, err)
	}
	return nil
}

// RemoveLike deletes every like the user holds on the post.
func (r *communityRepository) RemoveLike(userID string, postID uint) error {
	err := r.db.Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.CommunityLike{}).Error
	if err != nil {
		log.Printf("ERROR: [CommunityRepository] Failed to remove like for user %s on post %d: %v", userID, postID, err)
		return fmt.Errorf("failed to remove like on post %d: %w", postID, err)
	}
	return nil
}

// CountLikes returns the number of likes on a post.
func (r *communityRepository) CountLikes(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.CommunityLike{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	if err != nil {
		log.Printf("ERROR: [CommunityRepository] Failed to count likes for post %d: %v", postID, err)
		return 0, fmt.Errorf("failed to count likes for post %d: %w", postID, err)
	}
	return count, nil
}
