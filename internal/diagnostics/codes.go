package diagnostics

// Diagnostic codes, following the teacher's banded E0NNN convention
// (internal/errors/codes.go in the kanso compiler).
//
// Code ranges:
// E0001-E0099: resolution errors
// E0100-E0199: parse errors
// E0200-E0299: solver feasibility
// E0300-E0399: type errors
const (
	CodeUnknownIdentifier = "E0001"
	CodeUnresolvableAlias = "E0002"

	CodeMalformedDecision    = "E0100"
	CodeUnbalancedBrackets   = "E0101"

	CodeInfeasibleAtom   = "E0200"
	CodeSolverTimeout    = "E0201"

	CodeTypeMismatch = "E0300"
)
