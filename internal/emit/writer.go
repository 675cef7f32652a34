package emit

import (
	"encoding/csv"
	"io"
)

// ReportWriter is the external collaborator spec §4.7 hands accumulated
// records to; the core never writes a report format itself, only produces
// Records (spec §1 Non-goals: "no persistence format is prescribed").
type ReportWriter interface {
	WriteRecords([]Record) error
}

// CSVWriter is a minimal ReportWriter for local inspection and the CLI's
// `synthesize` command (peripheral to the core per spec §1, but needed to
// exercise the pipeline end to end — see DESIGN.md).
type CSVWriter struct {
	w *csv.Writer
}

func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

var csvHeader = []string{
	"run_id", "record_id", "module_id", "module_name", "precondition",
	"decision_text", "assignment_string", "expected_result", "then_block", "else_block",
}

func (c *CSVWriter) WriteRecords(records []Record) error {
	if err := c.w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.RunID.String(), r.RecordID.String(), r.ModuleID, r.ModuleName, r.Precondition,
			r.DecisionText, r.AssignmentString, r.ExpectedResult, r.ThenBlock, r.ElseBlock,
		}
		if err := c.w.Write(row); err != nil {
			return err
		}
	}
	c.w.Flush()
	return c.w.Error()
}
