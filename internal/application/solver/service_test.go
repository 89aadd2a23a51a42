package solver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/chemsolver/internal/domain/atom"
	"github.com/turtacn/chemsolver/internal/domain/locale"
	"github.com/turtacn/chemsolver/internal/infrastructure/database/redis"
	metrics "github.com/turtacn/chemsolver/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/chemsolver/internal/testutil"
	"github.com/turtacn/chemsolver/pkg/errors"
	"github.com/turtacn/chemsolver/pkg/types/chemistry"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestSolver(opts ...Option) *Solver {
	s := New(opts...)
	s.now = func() time.Time { return fixedNow }
	n := 0
	var mu sync.Mutex
	s.newID = func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s
}

// MockResultCache is a testify mock of ResultCache.
type MockResultCache struct {
	mock.Mock
}

func (m *MockResultCache) GetOrLoad(ctx context.Context, key string, load redis.Loader) (*chemistry.SolveResult, error) {
	args := m.Called(ctx, key, load)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chemistry.SolveResult), args.Error(1)
}

// ─────────────────────────────────────────────────────────────────────────────
// Solve
// ─────────────────────────────────────────────────────────────────────────────

func TestSolve_CarbonDioxide(t *testing.T) {
	s := newTestSolver()

	res, err := s.Solve(context.Background(), chemistry.SolveRequest{Formula: "C,O2"})
	require.NoError(t, err)

	assert.Equal(t, "id-1", res.ID)
	assert.Equal(t, "C,O2", res.Formula)
	assert.Equal(t, "C,O2", res.Canonical)
	assert.Equal(t, "en", res.Lang)
	assert.Equal(t, chemistry.AtomView{Symbol: "C", Name: "Carbon", Token: 0}, res.Central)
	assert.Equal(t, 0, res.LonePairs)
	require.Len(t, res.Bonded, 2)
	assert.Equal(t, "O", res.Bonded[0].Symbol)
	assert.Empty(t, res.Hydrogens)
	assert.Equal(t, 2, res.ElementCount)
	assert.InDelta(t, 44.009, res.Mass, 1e-9)
	assert.Equal(t, "line", res.Shape)
	assert.Equal(t, "Line", res.ShapeName)
	assert.Equal(t, "anhydride", res.Family)
	assert.Equal(t, "Anhydride", res.FamilyName)
	assert.Equal(t, fixedNow, res.SolvedAt)
	assert.False(t, res.Cached)

	require.Len(t, res.Trace, 6)
	assert.Equal(t, chemistry.TraceEventView{Kind: "central_atom", Text: "Central atom: Carbon(C)"}, res.Trace[0])
	assert.Equal(t, "compound_family", res.Trace[5].Kind)
}

func TestSolve_SingleOperation(t *testing.T) {
	s := newTestSolver()

	res, err := s.Solve(context.Background(), chemistry.SolveRequest{
		Formula:    "C,Cl4",
		Operations: []chemistry.Operation{chemistry.OperationShape},
	})
	require.NoError(t, err)
	assert.Equal(t, "square", res.Shape)
	assert.Empty(t, res.Family)
	assert.Equal(t, 2, res.ElementCount)
	assert.Equal(t, "shape", res.Trace[len(res.Trace)-1].Kind)

	res, err = s.Solve(context.Background(), chemistry.SolveRequest{
		Formula:    "Na,Cl",
		Operations: []chemistry.Operation{chemistry.OperationCompound, chemistry.OperationCompound},
	})
	require.NoError(t, err)
	assert.Empty(t, res.Shape)
	assert.Equal(t, "binary_ionic", res.Family)
}

func TestSolve_Italian(t *testing.T) {
	s := newTestSolver()

	res, err := s.Solve(context.Background(), chemistry.SolveRequest{
		Formula:    "N,H3",
		Operations: []chemistry.Operation{chemistry.OperationShape},
		Lang:       "it-IT",
	})
	require.NoError(t, err)
	assert.Equal(t, "it", res.Lang)
	assert.Equal(t, "Azoto", res.Central.Name)
	assert.Equal(t, "Piramide", res.ShapeName)
	assert.Equal(t, "Forma: Piramide", res.Trace[len(res.Trace)-1].Text)
}

func TestSolve_Errors(t *testing.T) {
	s := newTestSolver()

	cases := []struct {
		name string
		req  chemistry.SolveRequest
		code errors.ErrorCode
	}{
		{"illegal formula", chemistry.SolveRequest{Formula: "C O"}, errors.ErrCodeIllegalFormula},
		{"unknown element", chemistry.SolveRequest{Formula: "Xx"}, errors.ErrCodeUnknownElement},
		{"unusable atom", chemistry.SolveRequest{Formula: "He"}, errors.ErrCodeUnusableAtom},
		{"no central atom", chemistry.SolveRequest{Formula: "H3"}, errors.ErrCodeIllegalMolecule},
		{"no shape", chemistry.SolveRequest{Formula: "C"}, errors.ErrCodeIllegalMolecule},
		{"compound after shape", chemistry.SolveRequest{Formula: "C,Cl4"}, errors.ErrCodeIllegalMolecule},
		{"unknown operation", chemistry.SolveRequest{Formula: "C,O2", Operations: []chemistry.Operation{"mass"}}, errors.ErrCodeValidation},
		{"unsupported language", chemistry.SolveRequest{Formula: "C,O2", Lang: "fr"}, errors.ErrCodeBadRequest},
		{"atom limit", chemistry.SolveRequest{Formula: "C65"}, errors.ErrCodeIllegalFormula},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := s.Solve(context.Background(), tc.req)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Equal(t, tc.code, errors.GetCode(err))
		})
	}
}

func TestSolve_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestSolver().Solve(ctx, chemistry.SolveRequest{Formula: "C,O2"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeTimeout))
}

func TestSolve_MaxAtomsOption(t *testing.T) {
	s := newTestSolver(WithMaxAtoms(2))

	_, err := s.Solve(context.Background(), chemistry.SolveRequest{Formula: "C,O2"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeIllegalFormula))
}

func TestSolve_LogsFailureWithCode(t *testing.T) {
	log := testutil.NewMockLogger()
	s := newTestSolver(WithLogger(log))

	_, err := s.Solve(context.Background(), chemistry.SolveRequest{Formula: "C O"})
	require.Error(t, err)

	warns := log.ByLevel("warn")
	require.Len(t, warns, 1)
	assert.Equal(t, "solve failed", warns[0].Message)
	assert.Equal(t, "solver", warns[0].Logger)
	code, ok := warns[0].Field("error_code")
	require.True(t, ok)
	assert.Equal(t, "FRM_001", code)
	formula, _ := warns[0].Field("formula")
	assert.Equal(t, "C O", formula)

	_, err = s.Solve(context.Background(), chemistry.SolveRequest{Formula: "H2,O"})
	require.NoError(t, err)
	assert.True(t, log.HasMessage("debug", "formula solved"))
}

func TestSolve_RecordsMetrics(t *testing.T) {
	collector, err := metrics.NewMetricsCollector(metrics.CollectorConfig{Namespace: "test"}, nil)
	require.NoError(t, err)
	s := newTestSolver(WithMetrics(metrics.NewAppMetrics(collector)))

	_, err = s.Solve(context.Background(), chemistry.SolveRequest{Formula: "C,O2"})
	require.NoError(t, err)
	_, err = s.Solve(context.Background(), chemistry.SolveRequest{Formula: "Xx"})
	require.Error(t, err)

	w := httptest.NewRecorder()
	collector.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	assert.Contains(t, body, `test_solves_total{code="success",operation="compound+shape"} 1`)
	assert.Contains(t, body, `test_solves_total{code="FRM_002",operation="compound+shape"} 1`)
	assert.Contains(t, body, `test_shapes_total{shape="line"} 1`)
	assert.Contains(t, body, `test_families_total{family="anhydride"} 1`)
}

func TestSetLocale(t *testing.T) {
	s := newTestSolver(WithLocale(locale.Italian))
	assert.Equal(t, locale.Italian, s.Locale())

	res, err := s.Solve(context.Background(), chemistry.SolveRequest{Formula: "C,O2"})
	require.NoError(t, err)
	assert.Equal(t, "it", res.Lang)
	assert.Equal(t, "Anidride", res.FamilyName)

	s.SetLocale(locale.Tag("fr"))
	assert.Equal(t, locale.Italian, s.Locale())
	s.SetLocale(locale.English)
	assert.Equal(t, locale.English, s.Locale())
}

// ─────────────────────────────────────────────────────────────────────────────
// Cache
// ─────────────────────────────────────────────────────────────────────────────

func TestSolve_CacheHitUsesRequestText(t *testing.T) {
	cache := new(MockResultCache)
	cached := &chemistry.SolveResult{ID: "cached-id", Formula: "C,O2", Canonical: "C,O2", Shape: "line", Cached: true}
	cache.On("GetOrLoad", mock.Anything, "solve:en:compound+shape:C,O2", mock.Anything).Return(cached, nil).Once()

	s := newTestSolver(WithCache(cache))
	res, err := s.Solve(context.Background(), chemistry.SolveRequest{Formula: ",C1,O2"})
	require.NoError(t, err)
	assert.Equal(t, "cached-id", res.ID)
	assert.Equal(t, ",C1,O2", res.Formula)
	assert.True(t, res.Cached)
	cache.AssertExpectations(t)
}

func TestSolve_CacheKeyIncludesLanguageAndOperations(t *testing.T) {
	cache := new(MockResultCache)
	cache.On("GetOrLoad", mock.Anything, "solve:it:shape:H2,O", mock.Anything).
		Return(nil, errors.IllegalMolecule("x")).Once()

	s := newTestSolver(WithCache(cache))
	_, err := s.Solve(context.Background(), chemistry.SolveRequest{
		Formula:    "H2,O",
		Operations: []chemistry.Operation{chemistry.OperationShape},
		Lang:       "it",
	})
	assert.True(t, errors.IsCode(err, errors.ErrCodeIllegalMolecule))
	cache.AssertExpectations(t)
}

func TestSolve_ParseErrorSkipsCache(t *testing.T) {
	cache := new(MockResultCache)
	s := newTestSolver(WithCache(cache))

	_, err := s.Solve(context.Background(), chemistry.SolveRequest{Formula: "C O"})
	require.Error(t, err)
	cache.AssertNotCalled(t, "GetOrLoad", mock.Anything, mock.Anything, mock.Anything)
}

func TestSolve_WithRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	client := redis.NewClientFrom(rdb, nil)
	t.Cleanup(func() { _ = client.Close() })
	cache := redis.NewResultCache(client, nil, redis.WithPrefix("t:"), redis.WithTTL(time.Hour))

	s := newTestSolver(WithCache(cache))
	ctx := context.Background()

	first, err := s.Solve(ctx, chemistry.SolveRequest{Formula: "H2,S,O4"})
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, "oxoacid", first.Family)

	second, err := s.Solve(ctx, chemistry.SolveRequest{Formula: "H2,S,O4"})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Trace, second.Trace)

	_, err = s.Solve(ctx, chemistry.SolveRequest{Formula: "C,Cl4"})
	require.Error(t, err)
	assert.Len(t, mr.Keys(), 1)
}

// ─────────────────────────────────────────────────────────────────────────────
// Batch
// ─────────────────────────────────────────────────────────────────────────────

func TestSolveBatch_PreservesOrder(t *testing.T) {
	s := newTestSolver(WithBatchLimits(3, 0))

	formulas := []string{"C,O2", "C O", "H2,O", "He", "N,H3", "Na,Cl", "C", "S,F6"}
	reqs := make([]chemistry.SolveRequest, len(formulas))
	for i, f := range formulas {
		reqs[i] = chemistry.SolveRequest{Formula: f, Operations: []chemistry.Operation{chemistry.OperationShape}}
	}

	items, err := s.SolveBatch(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, items, len(formulas))

	for i, it := range items {
		assert.Equal(t, i, it.Index)
		assert.Equal(t, formulas[i], it.Formula)
		assert.True(t, (it.Result == nil) != (it.Error == nil), "item %d must carry exactly one of result and error", i)
	}
	assert.Equal(t, "line", items[0].Result.Shape)
	assert.Equal(t, "FRM_001", items[1].Error.Code)
	assert.Equal(t, "Illegal Formula: C O", items[1].Error.Message)
	assert.Equal(t, "pyramid", items[2].Result.Shape)
	assert.Equal(t, "ATM_001", items[3].Error.Code)
	assert.Equal(t, "MOL_001", items[6].Error.Code)
	assert.Equal(t, "six_pointed_star", items[7].Result.Shape)
}

func TestSolveBatch_Limits(t *testing.T) {
	s := newTestSolver(WithBatchLimits(0, 2))

	_, err := s.SolveBatch(context.Background(), nil)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))

	_, err = s.SolveBatch(context.Background(), make([]chemistry.SolveRequest, 3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 requests, limit 2")
	assert.Equal(t, DefaultBatchWorkers, s.batchWorkers)
}

func TestSolveBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestSolver().SolveBatch(ctx, []chemistry.SolveRequest{{Formula: "C,O2"}})
	assert.True(t, errors.IsCode(err, errors.ErrCodeTimeout))
}

func TestErrorView(t *testing.T) {
	assert.Nil(t, ErrorView(nil))
	assert.Equal(t, &chemistry.ErrorView{Code: "COMMON_001", Message: "boom"}, ErrorView(fmt.Errorf("boom")))
	assert.Equal(t,
		&chemistry.ErrorView{Code: "ATM_001", Message: "Unusable Atom: Atom Helium(He) is not usable and no operations can be done with it."},
		ErrorView(errors.UnusableAtom("Helium", "He")))
}

// ─────────────────────────────────────────────────────────────────────────────
// Catalog
// ─────────────────────────────────────────────────────────────────────────────

func TestBond(t *testing.T) {
	s := newTestSolver()

	rep, err := s.Bond(context.Background(), "Na", " Cl ", "")
	require.NoError(t, err)
	assert.Equal(t, "Na", rep.A.Symbol)
	assert.Equal(t, "Cl", rep.B.Symbol)
	assert.InDelta(t, 2.23, rep.Difference, 1e-9)
	assert.Equal(t, "ionic", rep.Type)
	assert.Equal(t, "Ionic", rep.TypeName)
	assert.Equal(t, "Cl", rep.MostElectronegative)

	rep, err = s.Bond(context.Background(), "C", "C", "it")
	require.NoError(t, err)
	assert.Equal(t, "pure_covalent", rep.Type)
	assert.Equal(t, "Covalente puro", rep.TypeName)
	assert.Equal(t, "Carbonio", rep.A.Name)
}

func TestBond_Errors(t *testing.T) {
	s := newTestSolver()

	_, err := s.Bond(context.Background(), "Na", "Xx", "")
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownElement))
	_, err = s.Bond(context.Background(), "He", "O", "")
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnusableAtom))
	_, err = s.Bond(context.Background(), "C", "O", "zz-ZZ")
	assert.Error(t, err)
}

func TestElement(t *testing.T) {
	s := newTestSolver()

	v, err := s.Element(context.Background(), "O", "")
	require.NoError(t, err)
	assert.Equal(t, chemistry.ElementView{
		Symbol:            "O",
		Name:              "Oxygen",
		AtomicNumber:      8,
		Mass:              15.999,
		Electronegativity: 3.44,
		BondingElectrons:  2,
		LonePairs:         2,
		IonizationEnergy:  1314,
		Class:             "nonmetal",
		ClassName:         atom.ClassName(atom.ClassNonmetal, locale.English),
		Metal:             false,
		Usable:            true,
	}, *v)

	v, err = s.Element(context.Background(), "He", "it")
	require.NoError(t, err)
	assert.False(t, v.Usable)

	_, err = s.Element(context.Background(), "o", "")
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownElement))
}

func TestElements(t *testing.T) {
	s := newTestSolver()

	all, err := s.Elements(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, all, len(atom.All()))
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].AtomicNumber, all[i].AtomicNumber)
	}

	halogens, err := s.Elements(context.Background(), "Halogen", "")
	require.NoError(t, err)
	require.NotEmpty(t, halogens)
	for _, h := range halogens {
		assert.Equal(t, "halogen", h.Class)
	}

	alkaline, err := s.Elements(context.Background(), "alkaline_metal", "")
	require.NoError(t, err)
	require.NotEmpty(t, alkaline)
	for _, a := range alkaline {
		assert.Equal(t, "alkaline_metal", a.Class)
	}

	_, err = s.Elements(context.Background(), "gas", "")
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))
}

func TestSummary(t *testing.T) {
	s := newTestSolver()

	sum, err := s.Summary(context.Background(), "it")
	require.NoError(t, err)
	assert.Equal(t, len(atom.All()), sum.Elements)

	total := 0
	for _, c := range sum.Classes {
		total += c.Count
		assert.NotEmpty(t, c.ClassName)
		assert.LessOrEqual(t, c.MinMass, c.MaxMass)
	}
	assert.Equal(t, sum.Elements, total)
}

//Personal.AI order the ending
