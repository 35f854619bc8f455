package services

import (
	"context"
	"testing"

	"github.com/AdityaSohal/QuickAI/identity"
	"github.com/AdityaSohal/QuickAI/models"
	"github.com/AdityaSohal/QuickAI/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCommunityRepository is a mock type for repository.CommunityRepository
type MockCommunityRepository struct {
	mock.Mock
}

func (m *MockCommunityRepository) CreatePost(post *models.CommunityPost) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockCommunityRepository) GetPosts() ([]*models.CommunityPost, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CommunityPost), args.Error(1)
}

func (m *MockCommunityRepository) GetPostByID(id uint) (*models.CommunityPost, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CommunityPost), args.Error(1)
}

func (m *MockCommunityRepository) HasLike(userID string, postID uint) (bool, error) {
	args := m.Called(userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommunityRepository) AddLike(userID string, postID uint) error {
	args := m.Called(userID, postID)
	return args.Error(0)
}

func (m *MockCommunityRepository) RemoveLike(userID string, postID uint) error {
	args := m.Called(userID, postID)
	return args.Error(0)
}

func (m *MockCommunityRepository) CountLikes(postID uint) (int64, error) {
	args := m.Called(postID)
	return args.Get(0).(int64), args.Error(1)
}

func TestCommunityService_PostImage(t *testing.T) {
	ctx := context.Background()

	t.Run("description is required before any upload", func(t *testing.T) {
		repo := new(MockCommunityRepository)
		store := new(MockImageStore)
		svc := NewCommunityService(repo, store, new(MockIdentityClient))

		_, err := svc.PostImage(ctx, premiumActor(), "/tmp/img.png", "   ")

		assert.True(t, IsValidation(err))
		store.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("uploads to the community folder and records the post", func(t *testing.T) {
		repo := new(MockCommunityRepository)
		store := new(MockImageStore)
		svc := NewCommunityService(repo, store, new(MockIdentityClient))

		store.On("UploadFile", ctx, "/tmp/img.png", mock.MatchedBy(func(opts providers.UploadOptions) bool {
			return opts.Folder == "community"
		})).Return(&providers.UploadResult{PublicID: "community_1", SecureURL: "https://cdn.example.com/c1.png"}, nil)
		repo.On("CreatePost", mock.MatchedBy(func(p *models.CommunityPost) bool {
			return p.UserID == "user_premium" &&
				p.ImageURL == "https://cdn.example.com/c1.png" &&
				p.Description == "sunset over the bay"
		})).Return(nil)

		url, err := svc.PostImage(ctx, premiumActor(), "/tmp/img.png", "  sunset over the bay  ")

		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/c1.png", url)
		repo.AssertExpectations(t)
	})
}

func TestCommunityService_ToggleLike(t *testing.T) {
	ctx := context.Background()
	post := &models.CommunityPost{ID: 7, UserID: "author"}

	t.Run("missing post is reported, no like written", func(t *testing.T) {
		repo := new(MockCommunityRepository)
		svc := NewCommunityService(repo, new(MockImageStore), new(MockIdentityClient))
		repo.On("GetPostByID", uint(7)).Return(nil, nil)

		_, err := svc.ToggleLike(ctx, "viewer", 7)

		assert.True(t, IsValidation(err))
		repo.AssertNotCalled(t, "AddLike", mock.Anything, mock.Anything)
	})

	t.Run("toggling twice returns to the original state", func(t *testing.T) {
		repo := new(MockCommunityRepository)
		svc := NewCommunityService(repo, new(MockImageStore), new(MockIdentityClient))

		repo.On("GetPostByID", uint(7)).Return(post, nil)
		repo.On("HasLike", "viewer", uint(7)).Return(false, nil).Once()
		repo.On("AddLike", "viewer", uint(7)).Return(nil).Once()
		repo.On("HasLike", "viewer", uint(7)).Return(true, nil).Once()
		repo.On("RemoveLike", "viewer", uint(7)).Return(nil).Once()

		liked, err := svc.ToggleLike(ctx, "viewer", 7)
		assert.NoError(t, err)
		assert.True(t, liked)

		liked, err = svc.ToggleLike(ctx, "viewer", 7)
		assert.NoError(t, err)
		assert.False(t, liked)

		repo.AssertExpectations(t)
	})
}

func TestCommunityService_ListPosts(t *testing.T) {
	ctx := context.Background()

	t.Run("enriches posts and degrades to Unknown User on profile failure", func(t *testing.T) {
		repo := new(MockCommunityRepository)
		idClient := new(MockIdentityClient)
		svc := NewCommunityService(repo, new(MockImageStore), idClient)

		repo.On("GetPosts").Return([]*models.CommunityPost{
			{ID: 1, UserID: "alice"},
			{ID: 2, UserID: "ghost"},
		}, nil)
		repo.On("CountLikes", uint(1)).Return(int64(3), nil)
		repo.On("CountLikes", uint(2)).Return(int64(0), nil)
		repo.On("HasLike", "viewer", uint(1)).Return(true, nil)
		repo.On("HasLike", "viewer", uint(2)).Return(false, nil)
		idClient.On("GetUser", ctx, "alice").Return(&identity.User{ID: "alice", FirstName: "Alice", LastName: "Ng"}, nil)
		idClient.On("GetUser", ctx, "ghost").Return(nil, assert.AnError)

		views, err := svc.ListPosts(ctx, "viewer")

		assert.NoError(t, err)
		assert.Len(t, views, 2)
		assert.Equal(t, 3, views[0].LikeCount)
		assert.True(t, views[0].IsLiked)
		assert.Equal(t, "Alice", views[0].User.FirstName)
		assert.Equal(t, "Unknown", views[1].User.FirstName)
		assert.Equal(t, "User", views[1].User.LastName)
	})
}
