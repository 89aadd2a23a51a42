package redis

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/chemsolver/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/chemsolver/internal/testutil"
	"github.com/turtacn/chemsolver/pkg/errors"
	"github.com/turtacn/chemsolver/pkg/types/chemistry"
)

type CacheTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *Client
	cache  *ResultCache
}

func (s *CacheTestSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
	client, err := NewClient(ClientConfig{Addr: s.mr.Addr()}, logging.NewNopLogger())
	s.Require().NoError(err)
	s.client = client
	s.cache = NewResultCache(client, logging.NewNopLogger(), WithPrefix("test:"), WithTTL(time.Hour))
}

func (s *CacheTestSuite) TearDownTest() {
	_ = s.client.Close()
}

func sampleResult(formula string) *chemistry.SolveResult {
	return &chemistry.SolveResult{
		ID:           "id-" + formula,
		Formula:      formula,
		Canonical:    formula,
		Lang:         "en",
		Central:      chemistry.AtomView{Symbol: "C", Name: "Carbon"},
		Bonded:       []chemistry.AtomView{{Symbol: "O", Name: "Oxygen", Token: 1}, {Symbol: "O", Name: "Oxygen", Token: 1}},
		ElementCount: 2,
		Shape:        "line",
		Family:       "anhydride",
		Trace:        []chemistry.TraceEventView{{Kind: "central_atom", Text: strings.Repeat("x", 300)}},
	}
}

func (s *CacheTestSuite) TestResultKey_SortsOperations() {
	a := ResultKey("C,O2", "en", []string{"shape", "compound"})
	b := ResultKey("C,O2", "en", []string{"compound", "shape"})
	s.Equal(a, b)
	s.Equal("solve:en:compound+shape:C,O2", a)
	s.NotEqual(a, ResultKey("C,O2", "it", []string{"compound", "shape"}))
}

func (s *CacheTestSuite) TestGet_Miss() {
	_, err := s.cache.Get(context.Background(), "absent")
	s.ErrorIs(err, ErrCacheMiss)
	s.True(errors.IsNotFound(err))
}

func (s *CacheTestSuite) TestSetThenGet() {
	ctx := context.Background()
	in := sampleResult("C,O2")
	s.Require().NoError(s.cache.Set(ctx, "k1", in))

	raw, err := s.mr.Get("test:k1")
	s.Require().NoError(err)
	s.Equal(formatGzip, raw[0])

	ttl := s.mr.TTL("test:k1")
	s.True(ttl >= 54*time.Minute && ttl <= 66*time.Minute, "ttl %s", ttl)

	out, err := s.cache.Get(ctx, "k1")
	s.Require().NoError(err)
	s.Equal(in, out)
}

func (s *CacheTestSuite) TestSet_NilResult() {
	s.Error(s.cache.Set(context.Background(), "k", nil))
}

func (s *CacheTestSuite) TestGet_CorruptEntry() {
	s.Require().NoError(s.mr.Set("test:bad", "?garbage"))
	_, err := s.cache.Get(context.Background(), "bad")
	s.True(errors.IsCode(err, errors.ErrCodeSerialization))
}

func (s *CacheTestSuite) TestGetOrLoad_MissThenHit() {
	ctx := context.Background()
	var calls int32
	load := func(context.Context) (*chemistry.SolveResult, error) {
		atomic.AddInt32(&calls, 1)
		return sampleResult("C,O2"), nil
	}

	first, err := s.cache.GetOrLoad(ctx, "k", load)
	s.Require().NoError(err)
	s.False(first.Cached)

	second, err := s.cache.GetOrLoad(ctx, "k", load)
	s.Require().NoError(err)
	s.True(second.Cached)
	s.Equal(first.ID, second.ID)
	s.Equal(int32(1), atomic.LoadInt32(&calls))
}

func (s *CacheTestSuite) TestGetOrLoad_FailuresAreNotCached() {
	ctx := context.Background()
	_, err := s.cache.GetOrLoad(ctx, "bad", func(context.Context) (*chemistry.SolveResult, error) {
		return nil, errors.IllegalFormula("C O")
	})
	s.True(errors.IsCode(err, errors.ErrCodeIllegalFormula))
	s.False(s.mr.Exists("test:bad"))
}

func (s *CacheTestSuite) TestGetOrLoad_ConcurrentMissesShareOneLoad() {
	ctx := context.Background()
	var calls int32
	release := make(chan struct{})
	load := func(context.Context) (*chemistry.SolveResult, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return sampleResult("H2,O"), nil
	}

	var wg sync.WaitGroup
	results := make([]*chemistry.SolveResult, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := s.cache.GetOrLoad(ctx, "shared", load)
			s.NoError(err)
			results[i] = r
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	s.LessOrEqual(atomic.LoadInt32(&calls), int32(2))
	for _, r := range results {
		s.Require().NotNil(r)
		s.Equal("H2,O", r.Formula)
	}
}

func (s *CacheTestSuite) TestInvalidateAndFlush() {
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		s.Require().NoError(s.cache.Set(ctx, fmt.Sprintf("solve:en:shape:F%d", i), sampleResult("C,O2")))
	}
	s.Require().NoError(s.mr.Set("test:other", "kept"))

	s.Require().NoError(s.cache.Invalidate(ctx, "solve:en:shape:F0"))
	s.NoError(s.cache.Invalidate(ctx))

	n, err := s.cache.Flush(ctx)
	s.Require().NoError(err)
	s.Equal(int64(4), n)
	s.True(s.mr.Exists("test:other"))
}

func (s *CacheTestSuite) TestPing() {
	s.NoError(s.cache.Ping(context.Background()))
}

func TestCacheTestSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

// ─────────────────────────────────────────────────────────────────────────────
// Failure paths against a mocked server
// ─────────────────────────────────────────────────────────────────────────────

func TestGetOrLoad_BypassesUnavailableCache(t *testing.T) {
	db, mock := redismock.NewClientMock()
	log := testutil.NewMockLogger()
	cache := NewResultCache(NewClientFrom(db, log), log, WithPrefix("p:"))

	mock.ExpectGet("p:k").SetErr(fmt.Errorf("connection refused"))

	r, err := cache.GetOrLoad(context.Background(), "k", func(context.Context) (*chemistry.SolveResult, error) {
		return sampleResult("C,O2"), nil
	})
	require.NoError(t, err)
	assert.False(t, r.Cached)
	assert.NoError(t, mock.ExpectationsWereMet())

	warns := log.ByLevel("warn")
	require.Len(t, warns, 1)
	code, _ := warns[0].Field("error_code")
	assert.Equal(t, "CACHE_002", code)
}

func TestSet_WriteFailure(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewResultCache(NewClientFrom(db, nil), nil, WithTTL(0), WithCompression(false))

	data, err := encode(sampleResult("C,O2"), false)
	require.NoError(t, err)
	mock.ExpectSet("chemsolver:k", data, 0).SetErr(fmt.Errorf("READONLY"))

	err = cache.Set(context.Background(), "k", sampleResult("C,O2"))
	assert.True(t, errors.IsCode(err, errors.ErrCodeCacheUnavailable))
	assert.NoError(t, mock.ExpectationsWereMet())
}

//Personal.AI order the ending
