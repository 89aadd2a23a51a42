package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/chemsolver/internal/application/solver"
	"github.com/turtacn/chemsolver/pkg/errors"
	"github.com/turtacn/chemsolver/pkg/types/chemistry"
)

// CatalogHandler serves element and bond lookups.
type CatalogHandler struct {
	svc solver.Service
}

func NewCatalogHandler(svc solver.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// ElementList is the data of GET /elements.
type ElementList struct {
	Elements []chemistry.ElementView `json:"elements"`
	Count    int                     `json:"count"`
}

// ListElements handles GET /elements?class=.
func (h *CatalogHandler) ListElements(c *gin.Context) {
	elems, err := h.svc.Elements(c.Request.Context(), c.Query("class"), langOf(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, ElementList{Elements: elems, Count: len(elems)})
}

// GetElement handles GET /elements/:symbol.
func (h *CatalogHandler) GetElement(c *gin.Context) {
	elem, err := h.svc.Element(c.Request.Context(), c.Param("symbol"), langOf(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, elem)
}

// Summary handles GET /elements/summary.
func (h *CatalogHandler) Summary(c *gin.Context) {
	sum, err := h.svc.Summary(c.Request.Context(), langOf(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, sum)
}

// Bond handles GET /bonds?a=&b=.
func (h *CatalogHandler) Bond(c *gin.Context) {
	a, b := c.Query("a"), c.Query("b")
	if a == "" || b == "" {
		respondError(c, errors.InvalidParam("query parameters a and b are required"))
		return
	}
	rep, err := h.svc.Bond(c.Request.Context(), a, b, langOf(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, rep)
}

//Personal.AI order the ending
