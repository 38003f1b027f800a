package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/feargalr/Daedalus/internal/pkg/constants"
	"github.com/feargalr/Daedalus/internal/pkg/epitope"
	"github.com/feargalr/Daedalus/internal/pkg/scan"
)

// Summary describes a completed match run.
type Summary struct {
	RunID     string        `json:"run_id" yaml:"run_id"`
	Version   string        `json:"version" yaml:"version"`
	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Epitopes  string        `json:"epitopes" yaml:"epitopes"`
	Proteins  string        `json:"proteins" yaml:"proteins"`
	Output    string        `json:"output" yaml:"output"`
	MinLen    int           `json:"min_len" yaml:"min_len"`
	MaxLen    int           `json:"max_len" yaml:"max_len"`
	Dense     bool          `json:"dense" yaml:"dense"`
	Load      epitope.Stats `json:"epitope_stats" yaml:"epitope_stats"`
	Scan      scan.Stats    `json:"scan_stats" yaml:"scan_stats"`
	Elapsed   time.Duration `json:"elapsed" yaml:"elapsed"`
}

// WriteSummary writes s to path as YAML for .yaml/.yml paths and JSON otherwise.
// The path "-" writes JSON to stdout, indented only when stdout is a terminal.
func WriteSummary(path string, s Summary) error {
	var (
		data []byte
		err  error
	)
	if path == constants.StdoutPath {
		if data, err = MarshalJSON(s); err != nil {
			return fmt.Errorf("marshal summary: %w", err)
		}
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = MarshalYAML(s)
	default:
		data, err = MarshalJSONPretty(s, true)
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306
		return fmt.Errorf("write summary %s: %w", path, err)
	}
	return nil
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
)

// RenderSummary writes the human-readable run summary. The plain form keeps the
// two stats lines scripts already grep for; styled adds colour for terminals.
func RenderSummary(w io.Writer, s Summary, styled bool) error {
	epitopeLine := fmt.Sprintf("epitopes: total=%d kept=%d unique_peptides=%d",
		s.Load.Total, s.Load.Kept, s.Load.Unique)
	proteinLine := fmt.Sprintf("proteins=%d hits=%d wrote=%s",
		s.Scan.Proteins, s.Scan.Hits, s.Output)

	if !styled {
		_, err := fmt.Fprintf(w, "%s %s\n%s %s\n", constants.LogPrefix, epitopeLine, constants.LogPrefix, proteinLine)
		return err
	}

	rows := [][2]string{
		{"epitopes", fmt.Sprintf("%d read, %d kept, %d unique", s.Load.Total, s.Load.Kept, s.Load.Unique)},
		{"automaton", fmt.Sprintf("%d states", s.Load.States)},
		{"proteins", fmt.Sprintf("%d scanned (%d residues, %d workers)", s.Scan.Proteins, s.Scan.Residues, s.Scan.Workers)},
		{"hits", fmt.Sprintf("%d", s.Scan.Hits)},
		{"output", s.Output},
		{"elapsed", s.Elapsed.Round(time.Millisecond).String()},
	}
	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", row[0])))
		sb.WriteString(valueStyle.Render(row[1]))
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
