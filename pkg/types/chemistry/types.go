// Package chemistry defines the request and result shapes exchanged by the
// solver service, the REST API, the CLI and the async worker.
package chemistry

import (
	"fmt"
	"strings"
	"time"
)

// Operation selects a classification to run on a formula.
type Operation string

const (
	OperationShape    Operation = "shape"
	OperationCompound Operation = "compound"
)

// AllOperations returns the operations run when a request names none.
func AllOperations() []Operation {
	return []Operation{OperationShape, OperationCompound}
}

// Valid reports whether o is a known operation.
func (o Operation) Valid() bool {
	return o == OperationShape || o == OperationCompound
}

// ParseOperation parses a case-insensitive operation name.
func ParseOperation(s string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(s)))
	if !op.Valid() {
		return "", fmt.Errorf("unknown operation %q", s)
	}
	return op, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Solve
// ─────────────────────────────────────────────────────────────────────────────

// SolveRequest asks for the classification of one formula.
type SolveRequest struct {
	Formula    string      `json:"formula"`
	Operations []Operation `json:"operations,omitempty"`
	Lang       string      `json:"lang,omitempty"`
}

// Wants reports whether op is requested. An empty operation list requests
// every operation.
func (r SolveRequest) Wants(op Operation) bool {
	if len(r.Operations) == 0 {
		return true
	}
	for _, o := range r.Operations {
		if o == op {
			return true
		}
	}
	return false
}

// Validate checks the operation list. The formula itself is validated by the
// parser.
func (r SolveRequest) Validate() error {
	for _, o := range r.Operations {
		if !o.Valid() {
			return fmt.Errorf("unknown operation %q", o)
		}
	}
	return nil
}

// AtomView is one atom of a molecule.
type AtomView struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	// Token is the index of the formula token the atom was replicated from.
	Token int `json:"token"`
}

// TraceEventView is one step of the classification trace.
type TraceEventView struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// SolveResult is the outcome of a successful solve.
type SolveResult struct {
	ID           string           `json:"id"`
	Formula      string           `json:"formula"`
	Canonical    string           `json:"canonical"`
	Lang         string           `json:"lang"`
	Central      AtomView         `json:"central"`
	LonePairs    int              `json:"lone_pairs"`
	Bonded       []AtomView       `json:"bonded"`
	Hydrogens    []AtomView       `json:"hydrogens,omitempty"`
	ElementCount int              `json:"element_count"`
	Mass         float64          `json:"mass"`
	Shape        string           `json:"shape,omitempty"`
	ShapeName    string           `json:"shape_name,omitempty"`
	Family       string           `json:"family,omitempty"`
	FamilyName   string           `json:"family_name,omitempty"`
	Trace        []TraceEventView `json:"trace"`
	SolvedAt     time.Time        `json:"solved_at"`
	Cached       bool             `json:"cached"`
}

// ErrorView is the serialized form of a failed solve.
type ErrorView struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BatchItem is one entry of a batch solve; exactly one of Result and Error is
// set.
type BatchItem struct {
	Index   int          `json:"index"`
	Formula string       `json:"formula"`
	Result  *SolveResult `json:"result,omitempty"`
	Error   *ErrorView   `json:"error,omitempty"`
}

// OK reports whether the item succeeded.
func (b BatchItem) OK() bool { return b.Error == nil }

// ─────────────────────────────────────────────────────────────────────────────
// Catalog
// ─────────────────────────────────────────────────────────────────────────────

// ElementView is one catalog record.
type ElementView struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	AtomicNumber      int     `json:"atomic_number"`
	Mass              float64 `json:"mass"`
	Electronegativity float64 `json:"electronegativity"`
	BondingElectrons  int     `json:"bonding_electrons"`
	LonePairs         int     `json:"lone_pairs"`
	IonizationEnergy  int     `json:"ionization_energy"`
	Class             string  `json:"class"`
	ClassName         string  `json:"class_name"`
	Metal             bool    `json:"metal"`
	Usable            bool    `json:"usable"`
}

// BondReport describes the bond between two elements.
type BondReport struct {
	A                   ElementView `json:"a"`
	B                   ElementView `json:"b"`
	Difference          float64     `json:"difference"`
	Type                string      `json:"type"`
	TypeName            string      `json:"type_name"`
	MostElectronegative string      `json:"most_electronegative"`
}

// ClassSummary holds per-class catalog statistics.
type ClassSummary struct {
	Class                   string  `json:"class"`
	ClassName               string  `json:"class_name"`
	Count                   int     `json:"count"`
	MeanElectronegativity   float64 `json:"mean_electronegativity"`
	StdDevElectronegativity float64 `json:"stddev_electronegativity"`
	MinMass                 float64 `json:"min_mass"`
	MaxMass                 float64 `json:"max_mass"`
}

// CatalogSummary aggregates the catalog.
type CatalogSummary struct {
	Elements int            `json:"elements"`
	Classes  []ClassSummary `json:"classes"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Async jobs
// ─────────────────────────────────────────────────────────────────────────────

// SolveJob is the payload of a formula request message.
type SolveJob struct {
	JobID       string       `json:"job_id"`
	Request     SolveRequest `json:"request"`
	RequestedAt time.Time    `json:"requested_at"`
}

// SolveOutcome is the payload of a solved-formula message.
type SolveOutcome struct {
	JobID    string       `json:"job_id"`
	Result   *SolveResult `json:"result,omitempty"`
	Error    *ErrorView   `json:"error,omitempty"`
	SolvedAt time.Time    `json:"solved_at"`
}

//Personal.AI order the ending
