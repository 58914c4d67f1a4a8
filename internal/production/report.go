package production

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comalice/vendingfsm"
)

var ErrUnsupportedFormat = errors.New("unsupported report format")

// Report summarises one session of a machine. It is an output artifact; it
// is never read back into a machine.
type Report struct {
	Machine       vendingfsm.Snapshot `json:"machine" yaml:"machine"`
	ConfigVersion string              `json:"configVersion,omitempty" yaml:"configVersion,omitempty"`
	Log           []string            `json:"log,omitempty" yaml:"log,omitempty"`
	GeneratedAt   time.Time           `json:"generatedAt" yaml:"generatedAt"`
}

// NewReport builds a Report stamped with the current time.
func NewReport(snap vendingfsm.Snapshot, configVersion string, log []string) Report {
	return Report{
		Machine:       snap,
		ConfigVersion: configVersion,
		Log:           log,
		GeneratedAt:   time.Now().UTC(),
	}
}

// ReportWriter encodes a Report.
type ReportWriter interface {
	Write(w io.Writer, r Report) error
}

// JSONReportWriter writes indented JSON.
type JSONReportWriter struct{}

func (JSONReportWriter) Write(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// YAMLReportWriter writes YAML.
type YAMLReportWriter struct{}

func (YAMLReportWriter) Write(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

// WriterFor picks a ReportWriter from the file extension.
func WriterFor(path string) (ReportWriter, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSONReportWriter{}, nil
	case ".yaml", ".yml":
		return YAMLReportWriter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// WriteReportFile writes r to path, creating the parent directory if needed.
func WriteReportFile(path string, r Report) error {
	w, err := WriterFor(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := w.Write(f, r); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Journal is a vendingfsm.Observer that keeps the most recent log lines.
type Journal struct {
	mu    sync.Mutex
	max   int
	lines []string
}

// NewJournal keeps at most max lines; max <= 0 keeps everything.
func NewJournal(max int) *Journal {
	return &Journal{max: max}
}

func (j *Journal) UpdateStatus(string) {}
func (j *Journal) UpdateStock(int)     {}
func (j *Journal) UpdateMoney(int)     {}

func (j *Journal) LogMessage(text string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.lines = append(j.lines, text)
	if j.max > 0 && len(j.lines) > j.max {
		j.lines = j.lines[len(j.lines)-j.max:]
	}
}

// Lines returns a copy of the retained lines, oldest first.
func (j *Journal) Lines() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, len(j.lines))
	copy(out, j.lines)
	return out
}
