package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestID_Generated(t *testing.T) {
	var seen string
	w := serve(httptest.NewRequest(http.MethodGet, "/ping", nil), func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusOK)
	}, RequestID())

	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(HeaderRequestID))
}

func TestRequestID_Propagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := serve(req, nil, RequestID())
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}

func TestRequestID_OversizedIsReplaced(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, strings.Repeat("x", 200))
	w := serve(req, nil, RequestID())
	assert.Len(t, w.Header().Get(HeaderRequestID), 36)
}

//Personal.AI order the ending
