package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/AdityaSohal/QuickAI/identity"
	"github.com/AdityaSohal/QuickAI/models"
	"github.com/AdityaSohal/QuickAI/providers"
	"github.com/AdityaSohal/QuickAI/repository"
)

// CommunityService manages the community feed: explicit image shares and
// the join-table like relation. This is a separate mechanism from
// Creation.Publish and the two are intentionally kept in parallel.
type CommunityService interface {
	PostImage(ctx context.Context, actor identity.Actor, imagePath, description string) (string, error)
	ListPosts(ctx context.Context, viewerID string) ([]*models.CommunityPostView, error)
	ToggleLike(ctx context.Context, userID string, postID uint) (bool, error)
}

type communityService struct {
	posts          repository.CommunityRepository
	store          providers.ImageStore
	identityClient identity.Client
}

// NewCommunityService creates a new CommunityService.
func NewCommunityService(posts repository.CommunityRepository, store providers.ImageStore, identityClient identity.Client) CommunityService {
	return &communityService{posts: posts, store: store, identityClient: identityClient}
}

// PostImage hosts the uploaded image and records a community post. Returns
// the hosted URL.
func (s *communityService) PostImage(ctx context.Context, actor identity.Actor, imagePath, description string) (string, error) {
	if imagePath == "" {
		return "", validationErr("No image uploaded")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return "", validationErr("Description is required")
	}

	uploaded, err := s.store.UploadFile(ctx, imagePath, providers.UploadOptions{
		Folder:   "community",
		PublicID: fmt.Sprintf("community_%d", time.Now().UnixMilli()),
	})
	if err != nil {
		return "", err
	}

	post := &models.CommunityPost{
		UserID:      actor.UserID,
		ImageURL:    uploaded.SecureURL,
		Description: description,
	}
	if err := s.posts.CreatePost(post); err != nil {
		return "", err
	}

	return uploaded.SecureURL, nil
}

// ListPosts returns every community post enriched with like aggregates for
// the viewer and the poster's profile. A failed profile lookup degrades to
// an "Unknown User" placeholder rather than failing the feed.
func (s *communityService) ListPosts(ctx context.Context, viewerID string) ([]*models.CommunityPostView, error) {
	posts, err := s.posts.GetPosts()
	if err != nil {
		return nil, err
	}

	views := make([]*models.CommunityPostView, 0, len(posts))
	for _, post := range posts {
		likeCount, err := s.posts.CountLikes(post.ID)
		if err != nil {
			return nil, err
		}
		isLiked, err := s.posts.HasLike(viewerID, post.ID)
		if err != nil {
			return nil, err
		}

		view := &models.CommunityPostView{
			CommunityPost: *post,
			LikeCount:     int(likeCount),
			IsLiked:       isLiked,
		}
		if user, err := s.identityClient.GetUser(ctx, post.UserID); err != nil {
			log.Printf("WARN: [CommunityService] Failed to fetch profile for user %s: %v", post.UserID, err)
			view.User = models.PostUser{ID: post.UserID, FirstName: "Unknown", LastName: "User"}
		} else {
			view.User = models.PostUser{
				ID:        user.ID,
				FirstName: user.FirstName,
				LastName:  user.LastName,
				ImageURL:  user.ImageURL,
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// ToggleLike flips the (user, post) like row and reports the new state.
// Existence-check-then-insert/delete; two concurrent toggles from the same
// user can race.
func (s *communityService) ToggleLike(ctx context.Context, userID string, postID uint) (bool, error) {
	post, err := s.posts.GetPostByID(postID)
	if err != nil {
		return false, err
	}
	if post == nil {
		return false, validationErr("Post not found")
	}

	liked, err := s.posts.HasLike(userID, postID)
	if err != nil {
		return false, err
	}

	if liked {
		if err := s.posts.RemoveLike(userID, postID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.posts.AddLike(userID, postID); err != nil {
		return false, err
	}
	return true, nil
}
