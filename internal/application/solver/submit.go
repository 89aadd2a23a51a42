package solver

import (
	"context"
	"time"

	"github.com/turtacn/chemsolver/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/chemsolver/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/chemsolver/pkg/errors"
	"github.com/turtacn/chemsolver/pkg/types/chemistry"
	"github.com/turtacn/chemsolver/pkg/types/common"
)

// SourceAPI is written into the source of request envelopes.
const SourceAPI = "chemsolver-api"

// Submitter queues solve requests for the async worker.
type Submitter interface {
	Submit(ctx context.Context, req chemistry.SolveRequest, traceID string) (*chemistry.SolveJob, error)
}

// JobSubmitter publishes formula.requested events.
type JobSubmitter struct {
	publisher kafka.Publisher
	topic     string
	logger    logging.Logger
	now       func() time.Time
	newID     func() string
}

var _ Submitter = (*JobSubmitter)(nil)

// NewJobSubmitter publishes to topic through p.
func NewJobSubmitter(p kafka.Publisher, topic string, log logging.Logger) *JobSubmitter {
	return &JobSubmitter{
		publisher: p,
		topic:     topic,
		logger:    logging.OrNop(log).Named("submitter"),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return common.GenerateID("job") },
	}
}

// Submit validates req and publishes it under a fresh job ID. The formula is
// only checked for emptiness here; parse errors surface in the outcome.
func (s *JobSubmitter) Submit(ctx context.Context, req chemistry.SolveRequest, traceID string) (*chemistry.SolveJob, error) {
	if req.Formula == "" {
		return nil, errors.IllegalFormula(req.Formula)
	}
	if err := req.Validate(); err != nil {
		return nil, errors.New(errors.ErrCodeValidation, "invalid solve request").WithDetail(err.Error())
	}

	job := &chemistry.SolveJob{JobID: s.newID(), Request: req, RequestedAt: s.now()}
	env, err := kafka.NewEventEnvelope(kafka.EventFormulaRequested, SourceAPI, job)
	if err != nil {
		return nil, err
	}
	env.TraceID = traceID
	msg, err := env.ToMessage(s.topic)
	if err != nil {
		return nil, err
	}
	msg.Key = []byte(job.JobID)
	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.logger.Warn("job submission failed", logging.String("job_id", job.JobID), logging.Err(err))
		return nil, err
	}
	s.logger.Debug("job submitted", logging.String("job_id", job.JobID), logging.Formula(req.Formula))
	return job, nil
}

//Personal.AI order the ending
