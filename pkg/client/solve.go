package client

import (
	"context"

	"github.com/turtacn/chemsolver/pkg/errors"
	"github.com/turtacn/chemsolver/pkg/types/chemistry"
)

// BatchResult is the outcome of SolveBatch.
type BatchResult struct {
	Items     []chemistry.BatchItem `json:"items"`
	Succeeded int                   `json:"succeeded"`
	Failed    int                   `json:"failed"`
}

// JobAccepted acknowledges an async submission.
type JobAccepted struct {
	JobID string             `json:"job_id"`
	Job   chemistry.SolveJob `json:"job"`
}

// Solve classifies one formula.
func (c *Client) Solve(ctx context.Context, req chemistry.SolveRequest) (*chemistry.SolveResult, error) {
	if req.Formula == "" {
		return nil, errors.InvalidParam("formula is required")
	}
	var res chemistry.SolveResult
	if err := c.post(ctx, "/api/v1/solve", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SolveBatch classifies several formulas in one call. Per-formula failures are
// reported in the items, not as an error.
func (c *Client) SolveBatch(ctx context.Context, reqs []chemistry.SolveRequest) (*BatchResult, error) {
	if len(reqs) == 0 {
		return nil, errors.InvalidParam("at least one request is required")
	}
	body := struct {
		Requests []chemistry.SolveRequest `json:"requests"`
	}{Requests: reqs}
	var res BatchResult
	if err := c.post(ctx, "/api/v1/solve/batch", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SubmitJob queues a formula for the async worker.
func (c *Client) SubmitJob(ctx context.Context, req chemistry.SolveRequest) (*JobAccepted, error) {
	if req.Formula == "" {
		return nil, errors.InvalidParam("formula is required")
	}
	var res JobAccepted
	if err := c.post(ctx, "/api/v1/jobs", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

//Personal.AI order the ending
