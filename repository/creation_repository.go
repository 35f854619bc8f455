package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/AdityaSohal/QuickAI/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreationRepository defines the interface for interacting with creation data.
type CreationRepository interface {
	Create(creation *models.Creation) error
	GetByID(id uint) (*models.Creation, error)
	GetByUserID(userID string) ([]*models.Creation, error)
	GetPrivateByUserID(userID string) ([]*models.Creation, error)
	GetPublished() ([]*models.Creation, error)
	ToggleLike(userID string, creationID uint) (bool, error)
}

type creationRepository struct {
	db *gorm.DB
}

// NewCreationRepository creates a new instance of CreationRepository.
func NewCreationRepository(db *gorm.DB) CreationRepository {
	return &creationRepository{db: db}
}

// Create inserts a new creation record.
func (r *creationRepository) Create(creation *models.Creation) error {
	if creation == nil {
		return errors.New("creation cannot be nil")
	}
	if err := r.db.Create(creation).Error; err != nil {
		log.Printf("ERROR: [CreationRepository] Failed to create %s creation for user %s: %v", creation.Type, creation.UserID, err)
		return fmt.Errorf("failed to create creation for user %s: %w", creation.UserID, err)
	}
	log.Printf("INFO: [CreationRepository] Created %s creation ID %d for user %s.", creation.Type, creation.ID, creation.UserID)
	return nil
}

// GetByID retrieves a creation by its ID. Returns (nil, nil) when not found.
func (r *creationRepository) GetByID(id uint) (*models.Creation, error) {
	var creation models.Creation
	err := r.db.First(&creation, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("ERROR: [CreationRepository] Failed to retrieve creation ID %d: %v", id, err)
		return nil, fmt.Errorf("failed to retrieve creation ID %d: %w", id, err)
	}
	return &creation, nil
}

// GetByUserID retrieves every creation owned by a user, newest first.
func (r *creationRepository) GetByUserID(userID string) ([]*models.Creation, error) {
	var creations []*models.Creation
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&creations).Error
	if err != nil {
		log.Printf("ERROR: [CreationRepository] Failed to retrieve creations for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to retrieve creations for user %s: %w", userID, err)
	}
	return creations, nil
}

// GetPrivateByUserID retrieves a user's unpublished creations, newest first.
func (r *creationRepository) GetPrivateByUserID(userID string) ([]*models.Creation, error) {
	var creations []*models.Creation
	err := r.db.Where("user_id = ? AND publish = ?", userID, false).Order("created_at desc").Find(&creations).Error
	if err != nil {
		log.Printf("ERROR: [CreationRepository] Failed to retrieve private creations for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to retrieve private creations for user %s: %w", userID, err)
	}
	return creations, nil
}

// GetPublished retrieves published image creations across all users,
// newest first. Only images are ever published.
func (r *creationRepository) GetPublished() ([]*models.Creation, error) {
	var creations []*models.Creation
	err := r.db.Where("publish = ? AND type = ?", true, models.CreationTypeImage).Order("created_at desc").Find(&creations).Error
	if err != nil {
		log.Printf("ERROR: [CreationRepository] Failed to retrieve published creations: %v", err)
		return nil, fmt.Errorf("failed to retrieve published creations: %w", err)
	}
	return creations, nil
}

// ToggleLike flips the given user's membership in a creation's likes array
// and reports the new liked state. This is a read-then-write, not a
// compare-and-swap; concurrent toggles from the same user can race.
func (r *creationRepository) ToggleLike(userID string, creationID uint) (bool, error) {
	creation, err := r.GetByID(creationID)
	if err != nil {
		return false, err
	}
	if creation == nil {
		return false, gorm.ErrRecordNotFound
	}

	liked := false
	newLikes := make([]string, 0, len(creation.Likes)+1)
	for _, id := range creation.Likes {
		if id == userID {
			liked = true
			continue
		}
		newLikes = append(newLikes, id)
	}
	if !liked {
		newLikes = append(newLikes, userID)
	}

	err = r.db.Model(&models.Creation{}).
		Where("id = ?", creationID).
		Update("likes", datatypes.NewJSONSlice(newLikes)).Error
	if err != nil {
		log.Printf("ERROR: [CreationRepository] Failed to update likes for creation ID %d: %v", creationID, err)
		return false, fmt.Errorf("failed to update likes for creation ID %d: %w", creationID, err)
	}

	log.Printf("INFO: [CreationRepository] User %s %s creation ID %d.", userID, likeAction(!liked), creationID)
	return !liked, nil
}

func likeAction(liked bool) string {
	if liked {
		return "liked"
	}
	return "unliked"
}
