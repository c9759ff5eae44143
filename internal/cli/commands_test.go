package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/workcell/pkg/pipeline"
	"github.com/matzehuels/workcell/pkg/workcell"
)

const testRecord = `robot_selection:
  model: ur5
  reach_m: 0.85
workcell_components:
  - name: infeed
    component_type: conveyor
    dimensions: [2.0, 0.64, 0.82]
  - name: euro_pallet
    component_type: pallet
    dimensions: [1.2, 0.8, 0.15]
`

func writeRecord(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(testRecord), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeLayout solves the test record and writes the layout JSON into dir.
func writeLayout(t *testing.T, dir string) string {
	t.Helper()
	req, err := pipeline.ParseRequirement([]byte(testRecord))
	if err != nil {
		t.Fatal(err)
	}
	res, err := pipeline.NewRunner(nil, nil, newLogger(&bytes.Buffer{}, LogInfo)).Solve(context.Background(), req, pipeline.Options{})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "cell.layout.json")
	if err := workcell.WriteResultFile(res, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	var out bytes.Buffer
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSolveCommand(t *testing.T) {
	dir := t.TempDir()
	record := writeRecord(t, dir, "cell.yaml")
	svg := filepath.Join(dir, "plan.svg")

	if _, err := execute(t, "solve", record, "--svg", svg); err != nil {
		t.Fatalf("solve: %v", err)
	}

	res, err := workcell.ReadResultFile(filepath.Join(dir, "cell.layout.json"))
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	if !res.OK() {
		t.Errorf("Status = %q, want success", res.Status)
	}
	if got := res.Coordinates.ConveyorPos; got.X() != 1.5 {
		t.Errorf("conveyor_pos = %v, want x 1.5", got)
	}
	if data, err := os.ReadFile(svg); err != nil || !bytes.Contains(data, []byte("<svg")) {
		t.Errorf("floor plan not written as SVG (err %v)", err)
	}
}

func TestSolveCommandYAML(t *testing.T) {
	dir := t.TempDir()
	record := writeRecord(t, dir, "cell.yaml")
	out := filepath.Join(dir, "out.yaml")

	if _, err := execute(t, "solve", record, "-f", "yaml", "-o", out, "--no-cache"); err != nil {
		t.Fatalf("solve: %v", err)
	}
	res, err := workcell.ReadResultFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Components) != 4 {
		t.Errorf("got %d components, want 4", len(res.Components))
	}
}

func TestSolveCommandErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := execute(t, "solve", filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing record")
	}
	record := writeRecord(t, dir, "cell.yaml")
	if _, err := execute(t, "solve", record, "-f", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := execute(t, "solve", record, "-o", dir+"/"); err == nil {
		t.Error("expected error for directory output path")
	}
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	layout := writeLayout(t, dir)

	out, err := execute(t, "validate", layout, "--json")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	var rep struct {
		Separation float64 `json:"separation_m"`
	}
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if rep.Separation != 0.919 {
		t.Errorf("separation = %v, want 0.919", rep.Separation)
	}

	res, _ := workcell.ReadResultFile(layout)
	res.MotionTargets.PickTarget = workcell.V3(0.65, 0, 0.1)
	bad := filepath.Join(dir, "bad.json")
	if err := workcell.WriteResultFile(res, bad); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "validate", bad); err == nil {
		t.Error("validate should fail for a low pick target")
	}
}

func TestCompareCommand(t *testing.T) {
	dir := t.TempDir()
	layout := writeLayout(t, dir)

	out, err := execute(t, "compare", layout, layout, "--json")
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if !strings.Contains(out, `"pass": true`) {
		t.Errorf("compare output = %s", out)
	}

	res, _ := workcell.ReadResultFile(layout)
	res.MotionTargets.PlaceTarget = workcell.V3(3, 3, 0.46)
	far := filepath.Join(dir, "far.json")
	if err := workcell.WriteResultFile(res, far); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "compare", far, layout, "--motion-tol", "0.1"); err == nil {
		t.Error("compare should fail when the place target is far off")
	}
}

func TestBatchCommand(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	a := writeRecord(t, in, "a.yaml")
	b := writeRecord(t, in, "b.yaml")
	broken := filepath.Join(in, "broken.json")
	if err := os.WriteFile(broken, []byte(`{"robot_selection": {"reach_m": -1}}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "batch", a, broken, b, "-o", out, "-j", "2")
	if err == nil || !strings.Contains(err.Error(), "1 of 3") {
		t.Fatalf("batch error = %v, want 1 of 3 failed", err)
	}

	for _, name := range []string{"a.layout.json", "b.layout.json"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	manifests, _ := filepath.Glob(filepath.Join(out, "batch-*.json"))
	if len(manifests) != 1 {
		t.Fatalf("got %d manifests, want 1", len(manifests))
	}
	data, _ := os.ReadFile(manifests[0])
	var m batchManifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if len(m.Entries) != 3 || m.Entries[0].Record != a || m.Entries[2].Record != b {
		t.Errorf("manifest entries out of order: %+v", m.Entries)
	}
	if m.Entries[1].Error == "" {
		t.Error("broken record should carry an error")
	}
	if m.Entries[0].RecordHash != m.Entries[2].RecordHash {
		t.Error("identical records should share a hash")
	}
}

func TestLayoutPaths(t *testing.T) {
	tests := []struct {
		name    string
		records []string
		want    []string
	}{
		{
			name:    "same base name",
			records: []string{"x/cell.yaml", "y/cell.json", "z/other.yaml"},
			want:    []string{"cell", "cell-1", "other"},
		},
		{
			name:    "suffix already used by a record",
			records: []string{"a.json", "x/a.json", "a-1.json"},
			want:    []string{"a", "a-1", "a-1-1"},
		},
		{
			name:    "suffixed record first",
			records: []string{"a-1.json", "a.json", "x/a.json"},
			want:    []string{"a-1", "a", "a-2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := layoutPaths(tt.records, "out")
			seen := make(map[string]bool)
			for i, name := range tt.want {
				want := filepath.Join("out", name+".layout.json")
				if got[i] != want {
					t.Errorf("layoutPaths()[%d] = %q, want %q", i, got[i], want)
				}
				if seen[got[i]] {
					t.Errorf("layoutPaths() repeats %q", got[i])
				}
				seen[got[i]] = true
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	if got := outputPath(filepath.Join("dir", "cell.yaml"), ".layout.json"); got != filepath.Join("dir", "cell.layout.json") {
		t.Errorf("outputPath() = %q", got)
	}
}

func TestInspectStatic(t *testing.T) {
	layout := writeLayout(t, t.TempDir())

	out, err := execute(t, "inspect", layout, "--static")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"infeed", "euro_pallet", "Targets", "0.650"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect view missing %q", want)
		}
	}
}
