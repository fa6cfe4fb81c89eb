package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ppiankov/azspectre/internal/audit"
)

// Data is the envelope handed to every reporter.
type Data struct {
	Schema    string        `json:"$schema"`
	Tool      string        `json:"tool"`
	Version   string        `json:"version"`
	Timestamp time.Time     `json:"timestamp"`
	Report    *audit.Report `json:"report"`
}

// Reporter renders an audit report to its writer.
type Reporter interface {
	Generate(data Data) error
}

// NewData wraps a report in the envelope all reporters consume.
func NewData(tool, version string, rep *audit.Report) Data {
	return Data{
		Schema:    "spectre/v1",
		Tool:      tool,
		Version:   version,
		Timestamp: time.Now().UTC(),
		Report:    rep,
	}
}

// JSONReporter writes the full report envelope as indented JSON.
type JSONReporter struct {
	Writer io.Writer
}

// Generate writes the JSON report.
func (r *JSONReporter) Generate(data Data) error {
	enc := json.NewEncoder(r.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode JSON report: %w", err)
	}
	return nil
}
