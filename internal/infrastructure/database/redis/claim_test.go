package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/chemsolver/pkg/errors"
)

func TestJobClaims_ClaimOnce(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	a := NewJobClaims(client, nil, "test:", time.Minute)
	b := NewJobClaims(client, nil, "test:", time.Minute)
	assert.NotEqual(t, a.Owner(), b.Owner())

	ok, err := a.TryClaim(ctx, "job-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = b.TryClaim(ctx, "job-1")
	require.NoError(t, err)
	assert.False(t, ok)

	owner, err := mr.Get("test:job:job-1")
	require.NoError(t, err)
	assert.Equal(t, a.Owner(), owner)
	assert.Equal(t, time.Minute, mr.TTL("test:job:job-1"))
}

func TestJobClaims_Release(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	a := NewJobClaims(client, nil, "test:", time.Minute)
	b := NewJobClaims(client, nil, "test:", time.Minute)

	_, err := a.TryClaim(ctx, "job-2")
	require.NoError(t, err)

	err = b.Release(ctx, "job-2")
	assert.True(t, errors.IsCode(err, errors.ErrCodeConflict))

	require.NoError(t, a.Release(ctx, "job-2"))
	ok, err := b.TryClaim(ctx, "job-2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestJobClaims_Expire(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	a := NewJobClaims(client, nil, "test:", time.Second)
	_, err := a.TryClaim(ctx, "job-3")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	ok, err := NewJobClaims(client, nil, "test:", time.Second).TryClaim(ctx, "job-3")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestJobClaims_DefaultTTL(t *testing.T) {
	client, _ := newTestClient(t)
	assert.Equal(t, 10*time.Minute, NewJobClaims(client, nil, "", 0).ttl)
}

func TestJobClaims_ClosedClient(t *testing.T) {
	client, _ := newTestClient(t)
	require.NoError(t, client.Close())

	c := NewJobClaims(client, nil, "test:", time.Minute)
	_, err := c.TryClaim(context.Background(), "job")
	assert.True(t, errors.IsCode(err, errors.ErrCodeCacheUnavailable))
	assert.True(t, errors.IsCode(c.Release(context.Background(), "job"), errors.ErrCodeCacheUnavailable))
}

//Personal.AI order the ending
