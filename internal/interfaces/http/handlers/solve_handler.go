package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/chemsolver/internal/application/solver"
	"github.com/turtacn/chemsolver/pkg/types/chemistry"
)

// SolveHandler serves the synchronous solve endpoints.
type SolveHandler struct {
	svc solver.Service
}

func NewSolveHandler(svc solver.Service) *SolveHandler {
	return &SolveHandler{svc: svc}
}

// BatchRequest is the body of POST /solve/batch.
type BatchRequest struct {
	Requests []chemistry.SolveRequest `json:"requests"`
}

// BatchResponse is the data of a batch solve.
type BatchResponse struct {
	Items     []chemistry.BatchItem `json:"items"`
	Succeeded int                   `json:"succeeded"`
	Failed    int                   `json:"failed"`
}

// Solve handles POST /solve.
func (h *SolveHandler) Solve(c *gin.Context) {
	var req chemistry.SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, badRequest("invalid request body", err))
		return
	}
	if req.Lang == "" {
		req.Lang = langOf(c)
	}

	res, err := h.svc.Solve(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, res)
}

// SolveBatch handles POST /solve/batch. Per-item failures are reported
// inside a 200 response.
func (h *SolveHandler) SolveBatch(c *gin.Context) {
	var body BatchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, badRequest("invalid request body", err))
		return
	}
	lang := langOf(c)
	for i := range body.Requests {
		if body.Requests[i].Lang == "" {
			body.Requests[i].Lang = lang
		}
	}

	items, err := h.svc.SolveBatch(c.Request.Context(), body.Requests)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := BatchResponse{Items: items}
	for _, it := range items {
		if it.OK() {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	respond(c, http.StatusOK, resp)
}

//Personal.AI order the ending
