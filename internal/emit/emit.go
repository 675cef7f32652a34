// Package emit accumulates synthesized test-case records and hands them to
// an external Report Writer in stable per-module order (spec §4.7,
// component C8).
package emit

import "github.com/google/uuid"

// Record is one emitted test case (spec §4.7, §6 "Emitted record").
type Record struct {
	RunID            uuid.UUID
	RecordID         uuid.UUID
	ModuleID         string
	ModuleName       string
	Precondition     string
	DecisionText     string
	AssignmentString string
	ExpectedResult   string
	ThenBlock        string
	ElseBlock        string
}

// Emitter accumulates records across a synthesis run, preserving the
// (module-insertion-order, decision-text-order, atom-source-order, v⁺
// before v⁻) ordering guarantee of spec §5.
type Emitter struct {
	RunID   uuid.UUID
	records []Record
}

// New starts a fresh run, stamped with a new run identity so a downstream
// consumer can correlate every record it emits back to this run even across
// repeated synthesis of the same module.
func New() *Emitter {
	return &Emitter{RunID: uuid.New()}
}

// Emit appends one record, stamping it with a fresh record identity.
func (e *Emitter) Emit(r Record) Record {
	r.RunID = e.RunID
	r.RecordID = uuid.New()
	e.records = append(e.records, r)
	return r
}

// Records returns every accumulated record in emission order.
func (e *Emitter) Records() []Record {
	return append([]Record(nil), e.records...)
}
