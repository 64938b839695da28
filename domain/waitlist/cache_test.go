package waitlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestNewMembershipCache_NilStore(t *testing.T) {
	assert.Nil(t, NewMembershipCache(nil, time.Hour))
}

func TestMembershipCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := NewMockKeyValueCache(ctrl)
	cache := NewMembershipCache(kv, time.Hour)
	ctx := context.Background()

	kv.EXPECT().Set(ctx, "waitlist:member:Jane@Example.com", "1", time.Hour).Return(nil)
	assert.NoError(t, cache.Remember(ctx, "Jane@Example.com"))

	kv.EXPECT().Get(ctx, "waitlist:member:Jane@Example.com").Return("1", nil)
	member, err := cache.IsMember(ctx, "Jane@Example.com")
	assert.NoError(t, err)
	assert.True(t, member)

	kv.EXPECT().Get(ctx, "waitlist:member:jane@example.com").Return("", nil)
	member, err = cache.IsMember(ctx, "jane@example.com")
	assert.NoError(t, err)
	assert.False(t, member)

	kv.EXPECT().Get(ctx, gomock.Any()).Return("", errors.New("i/o timeout"))
	_, err = cache.IsMember(ctx, "x@y.z")
	assert.Error(t, err)
}
