package production

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/comalice/vendingfsm"
)

func sampleReport(t *testing.T) Report {
	t.Helper()
	journal := NewJournal(0)
	m, err := vendingfsm.NewMachine(journal, vendingfsm.WithID("vm-7"), vendingfsm.WithStock(2))
	if err != nil {
		t.Fatal(err)
	}
	_ = m.InsertCoin(10000)
	_ = m.SelectProduct("Pepsi")
	return NewReport(m.Snapshot(), "abcd1234", journal.Lines())
}

func TestWriterFor(t *testing.T) {
	tests := []struct {
		path    string
		want    ReportWriter
		wantErr bool
	}{
		{"out/report.json", JSONReportWriter{}, false},
		{"report.YAML", YAMLReportWriter{}, false},
		{"report.yml", YAMLReportWriter{}, false},
		{"report.txt", nil, true},
		{"report", nil, true},
	}
	for _, tt := range tests {
		w, err := WriterFor(tt.path)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("WriterFor(%q) err = %v, want ErrUnsupportedFormat", tt.path, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("WriterFor(%q): %v", tt.path, err)
			continue
		}
		if w != tt.want {
			t.Errorf("WriterFor(%q) = %T, want %T", tt.path, w, tt.want)
		}
	}
}

func TestJSONReportWriter(t *testing.T) {
	r := sampleReport(t)

	var buf bytes.Buffer
	if err := (JSONReportWriter{}).Write(&buf, r); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var got Report
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Machine.MachineID != "vm-7" || got.Machine.Stock != 1 || got.Machine.Sales != 1 {
		t.Errorf("unexpected machine section %+v", got.Machine)
	}
	if got.ConfigVersion != "abcd1234" {
		t.Errorf("configVersion = %q", got.ConfigVersion)
	}
	if len(got.Log) == 0 || got.Log[len(got.Log)-1] != "Product dispensed. Thank you!" {
		t.Errorf("unexpected log %v", got.Log)
	}
}

func TestWriteReportFile_YAML(t *testing.T) {
	r := sampleReport(t)
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")

	if err := WriteReportFile(path, r); err != nil {
		t.Fatalf("WriteReportFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "machineID: vm-7") {
		t.Errorf("YAML missing machine id:\n%s", data)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	machine, ok := doc["machine"].(map[string]any)
	if !ok {
		t.Fatalf("machine section missing: %v", doc)
	}
	if machine["state"] != "NoCoinState" {
		t.Errorf("state = %v", machine["state"])
	}
}

func TestWriteReportFile_UnsupportedCreatesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "report.csv")

	if err := WriteReportFile(path, Report{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "sub")); !os.IsNotExist(err) {
		t.Error("directory should not be created for unsupported format")
	}
}

func TestJournal_Bounded(t *testing.T) {
	j := NewJournal(2)
	j.LogMessage("a")
	j.LogMessage("b")
	j.LogMessage("c")

	got := j.Lines()
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("Lines() = %v, want [b c]", got)
	}
	got[0] = "x"
	if j.Lines()[0] != "b" {
		t.Error("Lines() should return a copy")
	}
}
