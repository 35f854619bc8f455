package services

import (
	"context"
	"errors"
	"testing"

	"github.com/AdityaSohal/QuickAI/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestQuotaService_Permit(t *testing.T) {
	mockIdentity := new(MockIdentityClient)
	quota := NewQuotaService(mockIdentity, 10)

	t.Run("free user under the ceiling is permitted", func(t *testing.T) {
		assert.True(t, quota.Permit(freeActor(0)))
		assert.True(t, quota.Permit(freeActor(9)))
	})

	t.Run("free user at the ceiling is rejected", func(t *testing.T) {
		assert.False(t, quota.Permit(freeActor(10)))
		assert.False(t, quota.Permit(freeActor(11)))
	})

	t.Run("premium always permits", func(t *testing.T) {
		actor := premiumActor()
		actor.FreeUsage = 9999
		assert.True(t, quota.Permit(actor))
	})
}

func TestQuotaService_Remaining(t *testing.T) {
	mockIdentity := new(MockIdentityClient)
	quota := NewQuotaService(mockIdentity, 10)

	assert.Equal(t, 10, quota.Remaining(freeActor(0)))
	assert.Equal(t, 3, quota.Remaining(freeActor(7)))
	assert.Equal(t, 0, quota.Remaining(freeActor(15)))
	assert.Equal(t, -1, quota.Remaining(premiumActor()))
}

func TestQuotaService_Track(t *testing.T) {
	ctx := context.Background()

	t.Run("free user increments the counter by one", func(t *testing.T) {
		mockIdentity := new(MockIdentityClient)
		quota := NewQuotaService(mockIdentity, 10)
		mockIdentity.On("SetFreeUsage", ctx, "user_free", 4).Return(nil)

		quota.Track(ctx, freeActor(3))

		mockIdentity.AssertExpectations(t)
	})

	t.Run("premium never writes the counter", func(t *testing.T) {
		mockIdentity := new(MockIdentityClient)
		quota := NewQuotaService(mockIdentity, 10)

		quota.Track(ctx, premiumActor())

		mockIdentity.AssertNotCalled(t, "SetFreeUsage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("increment failures are swallowed", func(t *testing.T) {
		mockIdentity := new(MockIdentityClient)
		quota := NewQuotaService(mockIdentity, 10)
		mockIdentity.On("SetFreeUsage", ctx, "user_free", 1).Return(errors.New("metadata service down"))

		// Must not panic or propagate; the generation already succeeded.
		quota.Track(ctx, freeActor(0))

		mockIdentity.AssertExpectations(t)
	})
}

var _ identity.Client = (*MockIdentityClient)(nil)
