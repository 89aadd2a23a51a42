// Package solver is the application service behind every chemsolver surface.
// It runs the parse, build and classify pipeline, consults the result cache
// and records metrics; the CLI, the REST API and the async worker all call it.
package solver

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/turtacn/chemsolver/internal/domain/atom"
	"github.com/turtacn/chemsolver/internal/domain/bonding"
	"github.com/turtacn/chemsolver/internal/domain/formula"
	"github.com/turtacn/chemsolver/internal/domain/locale"
	"github.com/turtacn/chemsolver/internal/domain/molecule"
	"github.com/turtacn/chemsolver/internal/infrastructure/database/redis"
	"github.com/turtacn/chemsolver/internal/infrastructure/monitoring/logging"
	metrics "github.com/turtacn/chemsolver/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/chemsolver/pkg/errors"
	"github.com/turtacn/chemsolver/pkg/types/chemistry"
)

const (
	DefaultBatchWorkers = 8
	DefaultMaxBatchSize = 256
)

// Service defines the solver use cases.
type Service interface {
	Solve(ctx context.Context, req chemistry.SolveRequest) (*chemistry.SolveResult, error)
	SolveBatch(ctx context.Context, reqs []chemistry.SolveRequest) ([]chemistry.BatchItem, error)
	Bond(ctx context.Context, a, b, lang string) (*chemistry.BondReport, error)
	Element(ctx context.Context, symbol, lang string) (*chemistry.ElementView, error)
	Elements(ctx context.Context, class, lang string) ([]chemistry.ElementView, error)
	Summary(ctx context.Context, lang string) (*chemistry.CatalogSummary, error)
}

// ResultCache is the subset of the redis result cache the service uses.
type ResultCache interface {
	GetOrLoad(ctx context.Context, key string, load redis.Loader) (*chemistry.SolveResult, error)
}

// Option configures a Solver.
type Option func(*Solver)

// WithMaxAtoms caps the replicated atoms per formula.
func WithMaxAtoms(n int) Option {
	return func(s *Solver) { s.parser = formula.NewParser(formula.WithMaxAtoms(n)) }
}

// WithCache enables result caching.
func WithCache(c ResultCache) Option {
	return func(s *Solver) { s.cache = c }
}

func WithMetrics(m *metrics.AppMetrics) Option {
	return func(s *Solver) { s.metrics = m }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Solver) { s.logger = logging.OrNop(l) }
}

// WithLocale sets the language used when a request names none.
func WithLocale(tag locale.Tag) Option {
	return func(s *Solver) { s.SetLocale(tag) }
}

// WithBatchLimits bounds SolveBatch: workers goroutines and at most maxSize
// requests per call. Non-positive values keep the defaults.
func WithBatchLimits(workers, maxSize int) Option {
	return func(s *Solver) {
		if workers > 0 {
			s.batchWorkers = workers
		}
		if maxSize > 0 {
			s.maxBatchSize = maxSize
		}
	}
}

// Solver implements Service.
type Solver struct {
	parser       *formula.Parser
	cache        ResultCache
	metrics      *metrics.AppMetrics
	logger       logging.Logger
	locale       atomic.Value // locale.Tag
	batchWorkers int
	maxBatchSize int
	now          func() time.Time
	newID        func() string
}

var _ Service = (*Solver)(nil)

// New creates a Solver. Without options it parses with the default atom
// limit, caches nothing and logs nowhere.
func New(opts ...Option) *Solver {
	s := &Solver{
		parser:       formula.NewParser(),
		logger:       logging.NewNopLogger(),
		batchWorkers: DefaultBatchWorkers,
		maxBatchSize: DefaultMaxBatchSize,
		now:          func() time.Time { return time.Now().UTC() },
		newID:        uuid.NewString,
	}
	s.locale.Store(locale.Default)
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("solver")
	return s
}

// SetLocale swaps the default language. Unsupported tags are ignored.
func (s *Solver) SetLocale(tag locale.Tag) {
	if tag.Valid() {
		s.locale.Store(tag)
	}
}

// Locale returns the current default language.
func (s *Solver) Locale() locale.Tag {
	return s.locale.Load().(locale.Tag)
}

func (s *Solver) resolveLang(lang string) (locale.Tag, error) {
	if strings.TrimSpace(lang) == "" {
		return s.Locale(), nil
	}
	return locale.Parse(lang)
}

// ─────────────────────────────────────────────────────────────────────────────
// Solve
// ─────────────────────────────────────────────────────────────────────────────

// Solve classifies one formula. Requested operations run in the order shape,
// compound; the first failing operation fails the whole request.
func (s *Solver) Solve(ctx context.Context, req chemistry.SolveRequest) (*chemistry.SolveResult, error) {
	start := time.Now()
	ops := effectiveOperations(req)
	opLabel := operationLabel(ops)

	res, err := s.solve(ctx, req, ops)
	s.metrics.RecordSolve(opLabel, string(errors.GetCode(err)), time.Since(start))
	if err != nil {
		s.logger.Warn("solve failed",
			logging.Formula(req.Formula),
			logging.String("operations", opLabel),
			logging.Code(err),
			logging.Err(err))
		return nil, err
	}

	if res.Shape != "" {
		s.metrics.RecordShape(res.Shape)
	}
	if res.Family != "" {
		s.metrics.RecordFamily(res.Family)
	}
	s.logger.Debug("formula solved",
		logging.Formula(req.Formula),
		logging.String("operations", opLabel),
		logging.String("shape", res.Shape),
		logging.String("family", res.Family),
		logging.Bool("cached", res.Cached),
		logging.Duration("elapsed", time.Since(start)))
	return res, nil
}

func (s *Solver) solve(ctx context.Context, req chemistry.SolveRequest, ops []chemistry.Operation) (*chemistry.SolveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTimeout, "solve cancelled")
	}
	if err := req.Validate(); err != nil {
		return nil, errors.New(errors.ErrCodeValidation, "invalid solve request").WithDetail(err.Error())
	}
	tag, err := s.resolveLang(req.Lang)
	if err != nil {
		return nil, err
	}
	f, err := s.parser.Parse(req.Formula)
	if err != nil {
		return nil, err
	}

	load := func(context.Context) (*chemistry.SolveResult, error) {
		return s.classify(f, tag, ops)
	}
	if s.cache == nil {
		return load(ctx)
	}
	keyOps := make([]string, len(ops))
	for i, op := range ops {
		keyOps[i] = string(op)
	}
	res, err := s.cache.GetOrLoad(ctx, redis.ResultKey(f.Canonical(), tag.String(), keyOps), load)
	if err != nil {
		return nil, err
	}
	// entries are shared by every text with the same canonical form
	res.Formula = f.Text()
	return res, nil
}

func (s *Solver) classify(f *formula.Formula, tag locale.Tag, ops []chemistry.Operation) (*chemistry.SolveResult, error) {
	m, err := molecule.New(f)
	if err != nil {
		return nil, err
	}

	res := &chemistry.SolveResult{
		ID:        s.newID(),
		Formula:   f.Text(),
		Canonical: f.Canonical(),
		Lang:      tag.String(),
		Mass:      f.Mass(),
	}
	for _, op := range ops {
		switch op {
		case chemistry.OperationShape:
			shape, err := m.Shape()
			if err != nil {
				return nil, err
			}
			res.Shape = shape.String()
			res.ShapeName = shape.DisplayName(tag)
		case chemistry.OperationCompound:
			family, err := m.Family()
			if err != nil {
				return nil, err
			}
			res.Family = family.String()
			res.FamilyName = family.DisplayName(tag)
		}
	}

	res.Central = atomView(m.Central(), tag)
	res.LonePairs = m.LonePairs()
	res.Bonded = atomViews(m.Bonded(), tag)
	res.Hydrogens = atomViews(m.Hydrogens(), tag)
	res.ElementCount = m.ElementCount()

	trace := m.Trace()
	res.Trace = make([]chemistry.TraceEventView, len(trace))
	for i, e := range trace {
		res.Trace[i] = chemistry.TraceEventView{Kind: e.Kind.String(), Text: e.Line(tag)}
	}
	res.SolvedAt = s.now()
	return res, nil
}

// effectiveOperations dedups the requested operations into canonical order.
func effectiveOperations(req chemistry.SolveRequest) []chemistry.Operation {
	var ops []chemistry.Operation
	for _, op := range chemistry.AllOperations() {
		if req.Wants(op) {
			ops = append(ops, op)
		}
	}
	return ops
}

func operationLabel(ops []chemistry.Operation) string {
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = string(op)
	}
	sort.Strings(names)
	return strings.Join(names, "+")
}

func atomView(o formula.Occurrence, tag locale.Tag) chemistry.AtomView {
	return chemistry.AtomView{Symbol: o.Symbol, Name: o.DisplayName(tag), Token: o.Token}
}

func atomViews(in []formula.Occurrence, tag locale.Tag) []chemistry.AtomView {
	if len(in) == 0 {
		return nil
	}
	out := make([]chemistry.AtomView, len(in))
	for i, o := range in {
		out[i] = atomView(o, tag)
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Batch
// ─────────────────────────────────────────────────────────────────────────────

// SolveBatch solves reqs concurrently with a bounded worker pool. Items keep
// the input order and each carries either a result or an error. The returned
// error covers only the batch itself: an empty or oversized batch, or a
// cancelled context.
func (s *Solver) SolveBatch(ctx context.Context, reqs []chemistry.SolveRequest) ([]chemistry.BatchItem, error) {
	if len(reqs) == 0 {
		return nil, errors.InvalidParam("batch is empty")
	}
	if len(reqs) > s.maxBatchSize {
		return nil, errors.InvalidParam("batch too large").
			WithDetail(fmt.Sprintf("%d requests, limit %d", len(reqs), s.maxBatchSize))
	}
	s.metrics.RecordBatch(len(reqs))

	items := make([]chemistry.BatchItem, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchWorkers)
	for i := range reqs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s.metrics.WorkerStarted()
			defer s.metrics.WorkerDone()

			item := chemistry.BatchItem{Index: i, Formula: reqs[i].Formula}
			res, err := s.Solve(gctx, reqs[i])
			if err != nil {
				item.Error = ErrorView(err)
			} else {
				item.Result = res
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTimeout, "batch cancelled")
	}

	failed := 0
	for _, it := range items {
		if !it.OK() {
			failed++
		}
	}
	s.logger.Debug("batch solved", logging.Int("size", len(items)), logging.Int("failed", failed))
	return items, nil
}

// ErrorView converts err into its wire form. Errors without a code report
// COMMON_001.
func ErrorView(err error) *chemistry.ErrorView {
	if err == nil {
		return nil
	}
	var ae *errors.AppError
	if errors.As(err, &ae) {
		return &chemistry.ErrorView{Code: ae.Code.String(), Message: ae.UserMessage()}
	}
	return &chemistry.ErrorView{Code: errors.ErrCodeInternal.String(), Message: err.Error()}
}

// ─────────────────────────────────────────────────────────────────────────────
// Catalog
// ─────────────────────────────────────────────────────────────────────────────

// Bond describes the bond between the elements with symbols a and b.
func (s *Solver) Bond(ctx context.Context, a, b, lang string) (*chemistry.BondReport, error) {
	tag, err := s.resolveLang(lang)
	if err != nil {
		return nil, err
	}
	atomA, err := s.lookup("bond", a)
	if err != nil {
		return nil, err
	}
	atomB, err := s.lookup("bond", b)
	if err != nil {
		return nil, err
	}
	rep, err := bonding.Describe(atomA, atomB)
	if err != nil {
		s.logger.Warn("bond failed",
			logging.String("a", a), logging.String("b", b), logging.Code(err))
		return nil, err
	}
	return &chemistry.BondReport{
		A:                   elementView(rep.A, tag),
		B:                   elementView(rep.B, tag),
		Difference:          rep.Difference,
		Type:                rep.Type.String(),
		TypeName:            rep.Type.DisplayName(tag),
		MostElectronegative: rep.MostElectronegative.Symbol,
	}, nil
}

// Element returns the catalog record for symbol.
func (s *Solver) Element(ctx context.Context, symbol, lang string) (*chemistry.ElementView, error) {
	tag, err := s.resolveLang(lang)
	if err != nil {
		return nil, err
	}
	a, err := s.lookup("element", symbol)
	if err != nil {
		return nil, err
	}
	v := elementView(a, tag)
	return &v, nil
}

// Elements lists the catalog by atomic number, optionally restricted to one
// element class key ("alkaline_metal", "halogen", ...).
func (s *Solver) Elements(ctx context.Context, class, lang string) ([]chemistry.ElementView, error) {
	tag, err := s.resolveLang(lang)
	if err != nil {
		return nil, err
	}
	atoms := atom.All()
	if strings.TrimSpace(class) != "" {
		c, err := atom.ParseElementClass(class)
		if err != nil {
			return nil, err
		}
		atoms = atom.ByClass(c)
	}
	out := make([]chemistry.ElementView, len(atoms))
	for i, a := range atoms {
		out[i] = elementView(a, tag)
	}
	return out, nil
}

// Summary returns per-class catalog statistics.
func (s *Solver) Summary(ctx context.Context, lang string) (*chemistry.CatalogSummary, error) {
	tag, err := s.resolveLang(lang)
	if err != nil {
		return nil, err
	}
	all := atom.All()
	stats := atom.Summarize(all)
	sum := &chemistry.CatalogSummary{
		Elements: len(all),
		Classes:  make([]chemistry.ClassSummary, len(stats)),
	}
	for i, cs := range stats {
		sum.Classes[i] = chemistry.ClassSummary{
			Class:                   cs.Class.String(),
			ClassName:               atom.ClassName(cs.Class, tag),
			Count:                   cs.Count,
			MeanElectronegativity:   cs.MeanElectronegativity,
			StdDevElectronegativity: cs.StdDevElectronegativity,
			MinMass:                 cs.MinMass,
			MaxMass:                 cs.MaxMass,
		}
	}
	return sum, nil
}

func (s *Solver) lookup(kind, symbol string) (atom.Atom, error) {
	a, err := atom.Lookup(strings.TrimSpace(symbol))
	s.metrics.RecordCatalogLookup(kind, err == nil)
	return a, err
}

func elementView(a atom.Atom, tag locale.Tag) chemistry.ElementView {
	return chemistry.ElementView{
		Symbol:            a.Symbol,
		Name:              a.DisplayName(tag),
		AtomicNumber:      a.AtomicNumber,
		Mass:              a.Mass,
		Electronegativity: a.Electronegativity,
		BondingElectrons:  a.BondingElectrons,
		LonePairs:         a.Doublets,
		IonizationEnergy:  a.IonizationEnergy,
		Class:             a.Class.String(),
		ClassName:         atom.ClassName(a.Class, tag),
		Metal:             a.IsMetal(),
		Usable:            !a.Unusable,
	}
}

//Personal.AI order the ending
