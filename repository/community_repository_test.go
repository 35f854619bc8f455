package repository

import (
	"testing"

	"github.com/AdityaSohal/QuickAI/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommunityRepository_Posts(t *testing.T) {
	repo := NewCommunityRepository(setupTestDB(t))

	require.NoError(t, repo.CreatePost(&models.CommunityPost{
		UserID: "alice", ImageURL: "https://cdn.example.com/a.png", Description: "first",
	}))
	require.NoError(t, repo.CreatePost(&models.CommunityPost{
		UserID: "bob", ImageURL: "https://cdn.example.com/b.png", Description: "second",
	}))

	posts, err := repo.GetPosts()
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	post, err := repo.GetPostByID(posts[0].ID)
	require.NoError(t, err)
	require.NotNil(t, post)

	missing, err := repo.GetPostByID(9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCommunityRepository_Likes(t *testing.T) {
	repo := NewCommunityRepository(setupTestDB(t))

	post := &models.CommunityPost{UserID: "alice", ImageURL: "https://cdn.example.com/a.png", Description: "first"}
	require.NoError(t, repo.CreatePost(post))

	has, err := repo.HasLike("bob", post.ID)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, repo.AddLike("bob", post.ID))
	require.NoError(t, repo.AddLike("carol", post.ID))

	has, err = repo.HasLike("bob", post.ID)
	require.NoError(t, err)
	assert.True(t, has)

	count, err := repo.CountLikes(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.RemoveLike("bob", post.ID))

	has, err = repo.HasLike("bob", post.ID)
	require.NoError(t, err)
	assert.False(t, has)

	count, err = repo.CountLikes(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
