package solver

import (
	"context"
	"time"

	"github.com/turtacn/chemsolver/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/chemsolver/internal/infrastructure/monitoring/logging"
	metrics "github.com/turtacn/chemsolver/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/chemsolver/pkg/errors"
	"github.com/turtacn/chemsolver/pkg/types/chemistry"
	"github.com/turtacn/chemsolver/pkg/types/common"
)

// SourceWorker is written into the source of outcome envelopes.
const SourceWorker = "chemsolver-worker"

// JobClaimer deduplicates redelivered jobs. *redis.JobClaims satisfies it.
type JobClaimer interface {
	TryClaim(ctx context.Context, jobID string) (bool, error)
	Release(ctx context.Context, jobID string) error
}

// WorkerConfig wires a Worker.
type WorkerConfig struct {
	Solver      Service
	Claims      JobClaimer
	Publisher   kafka.Publisher
	ResultTopic string
	Logger      logging.Logger
	Metrics     *metrics.AppMetrics
}

// Worker turns formula.requested events into formula.solved events.
type Worker struct {
	solver      Service
	claims      JobClaimer
	publisher   kafka.Publisher
	resultTopic string
	logger      logging.Logger
	metrics     *metrics.AppMetrics
	now         func() time.Time
}

// NewWorker validates cfg and builds a Worker. Claims may be nil, in which
// case every delivery is solved.
func NewWorker(cfg WorkerConfig) (*Worker, error) {
	if cfg.Solver == nil || cfg.Publisher == nil {
		return nil, errors.New(errors.ErrCodeValidation, "worker requires a solver and a publisher")
	}
	if cfg.ResultTopic == "" {
		return nil, errors.New(errors.ErrCodeValidation, "worker requires a result topic")
	}
	return &Worker{
		solver:      cfg.Solver,
		claims:      cfg.Claims,
		publisher:   cfg.Publisher,
		resultTopic: cfg.ResultTopic,
		logger:      logging.OrNop(cfg.Logger).Named("worker"),
		metrics:     cfg.Metrics,
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

// Handle is a common.MessageHandler for the request topic.
//
// Requests failing with a client or chemistry error are answered with an
// outcome carrying that error. Any other failure releases the job claim and is
// returned so the consumer retries the message.
func (w *Worker) Handle(ctx context.Context, msg *common.Message) error {
	job, traceID, err := decodeJob(msg)
	if err != nil {
		w.logger.Warn("dropping malformed request",
			logging.String("topic", msg.Topic),
			logging.Int64("offset", msg.Offset),
			logging.Err(err))
		return err
	}
	log := w.logger.With(logging.String("job_id", job.JobID), logging.Formula(job.Request.Formula))

	claimed, err := w.claim(ctx, job.JobID)
	if err != nil {
		log.Warn("job claim unavailable, solving anyway", logging.Err(err))
	} else if !claimed {
		log.Info("skipping redelivered job")
		return nil
	}

	out := chemistry.SolveOutcome{JobID: job.JobID}
	res, err := w.solver.Solve(ctx, job.Request)
	switch {
	case err == nil:
		out.Result = res
		out.SolvedAt = res.SolvedAt
	case errors.IsClientError(errors.GetCode(err)):
		out.Error = ErrorView(err)
		out.SolvedAt = w.now()
	default:
		w.metrics.RecordError("worker", errors.GetCode(err).String())
		w.release(ctx, job.JobID, log)
		return err
	}

	if err := w.publish(ctx, out, traceID); err != nil {
		w.metrics.RecordError("worker", errors.GetCode(err).String())
		w.release(ctx, job.JobID, log)
		log.Error("publishing outcome failed", logging.Err(err))
		return err
	}
	log.Info("job solved", logging.Bool("ok", out.Error == nil))
	return nil
}

func decodeJob(msg *common.Message) (*chemistry.SolveJob, string, error) {
	env, err := kafka.MessageToEventEnvelope(msg)
	if err != nil {
		return nil, "", err
	}
	if env.EventType != kafka.EventFormulaRequested {
		return nil, "", errors.New(errors.ErrCodeMessageInvalid, "unexpected event type").WithDetail(env.EventType)
	}
	var job chemistry.SolveJob
	if err := env.DecodePayload(&job); err != nil {
		return nil, "", err
	}
	if job.JobID == "" {
		job.JobID = env.EventID
	}
	return &job, env.TraceID, nil
}

func (w *Worker) claim(ctx context.Context, jobID string) (bool, error) {
	if w.claims == nil {
		return true, nil
	}
	return w.claims.TryClaim(ctx, jobID)
}

func (w *Worker) release(ctx context.Context, jobID string, log logging.Logger) {
	if w.claims == nil {
		return
	}
	if err := w.claims.Release(ctx, jobID); err != nil {
		log.Warn("releasing job claim failed", logging.Code(err), logging.Err(err))
	}
}

func (w *Worker) publish(ctx context.Context, out chemistry.SolveOutcome, traceID string) error {
	env, err := kafka.NewEventEnvelope(kafka.EventFormulaSolved, SourceWorker, out)
	if err != nil {
		return err
	}
	env.TraceID = traceID
	msg, err := env.ToMessage(w.resultTopic)
	if err != nil {
		return err
	}
	msg.Key = []byte(out.JobID)
	return w.publisher.Publish(ctx, msg)
}

//Personal.AI order the ending
