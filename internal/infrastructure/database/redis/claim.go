package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/turtacn/chemsolver/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/chemsolver/pkg/errors"
)

// releaseScript deletes a claim only when it is still held by the caller.
var releaseScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`)

// ErrClaimNotHeld is returned when releasing a claim owned by someone else or
// already expired.
var ErrClaimNotHeld = errors.New(errors.ErrCodeConflict, "job claim not held by this owner")

// JobClaims marks async solve jobs as taken so that a redelivered message is
// processed by one worker only. Each JobClaims value has its own owner token.
type JobClaims struct {
	client *Client
	logger logging.Logger
	prefix string
	ttl    time.Duration
	owner  string
}

// NewJobClaims builds claims with the given lifetime. A claim outliving its
// worker expires after ttl.
func NewJobClaims(client *Client, log logging.Logger, prefix string, ttl time.Duration) *JobClaims {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &JobClaims{
		client: client,
		logger: logging.OrNop(log).Named("claims"),
		prefix: prefix + "job:",
		ttl:    ttl,
		owner:  uuid.NewString(),
	}
}

// Owner returns the token written into claims.
func (j *JobClaims) Owner() string { return j.owner }

// TryClaim returns true when the job was free and is now held by this owner.
func (j *JobClaims) TryClaim(ctx context.Context, jobID string) (bool, error) {
	ok, err := j.client.SetNX(ctx, j.prefix+jobID, j.owner, j.ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeCacheUnavailable, "failed to claim job").WithDetail(jobID)
	}
	if !ok {
		j.logger.Debug("job already claimed", logging.String("job_id", jobID))
	}
	return ok, nil
}

// Release frees a claim held by this owner.
func (j *JobClaims) Release(ctx context.Context, jobID string) error {
	n, err := j.client.Run(ctx, releaseScript, []string{j.prefix + jobID}, j.owner).Int64()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheUnavailable, "failed to release job").WithDetail(jobID)
	}
	if n == 0 {
		return ErrClaimNotHeld.WithDetail(jobID)
	}
	return nil
}

//Personal.AI order the ending
