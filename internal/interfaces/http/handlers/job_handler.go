package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/chemsolver/internal/application/solver"
	"github.com/turtacn/chemsolver/internal/interfaces/http/middleware"
	"github.com/turtacn/chemsolver/pkg/types/chemistry"
)

// JobHandler accepts asynchronous solve requests.
type JobHandler struct {
	submitter solver.Submitter
}

func NewJobHandler(s solver.Submitter) *JobHandler {
	return &JobHandler{submitter: s}
}

// JobAccepted is the data of a 202 answer.
type JobAccepted struct {
	JobID string             `json:"job_id"`
	Job   chemistry.SolveJob `json:"job"`
}

// Submit handles POST /jobs. The request ID becomes the trace ID of the
// published event.
func (h *JobHandler) Submit(c *gin.Context) {
	var req chemistry.SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, badRequest("invalid request body", err))
		return
	}
	if req.Lang == "" {
		req.Lang = langOf(c)
	}

	job, err := h.submitter.Submit(c.Request.Context(), req, middleware.GetRequestID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusAccepted, JobAccepted{JobID: job.JobID, Job: *job})
}

//Personal.AI order the ending
