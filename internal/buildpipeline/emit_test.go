package buildpipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flint/internal/fir"
)

func TestEmitWritesNextToInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.fir")
	if err := writeModule(path); err != nil {
		t.Fatalf("write module: %v", err)
	}

	res, err := Emit(context.Background(), &EmitRequest{
		Inputs:   []string{path},
		Producer: "flintc test",
	})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if res.Failed() != 0 {
		t.Fatalf("failed items: %+v", res.Items)
	}
	want := filepath.Join(dir, "app.ll")
	if res.Items[0].OutputPath != want {
		t.Errorf("OutputPath = %q, want %q", res.Items[0].OutputPath, want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "define i32 @main()") {
		t.Errorf("output missing main:\n%s", data)
	}
	if len(res.Items[0].Report.Phases) == 0 {
		t.Error("item carries no timing report")
	}
}

func TestEmitOutDir(t *testing.T) {
	srcDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "ll")
	inputs := []string{
		filepath.Join(srcDir, "one.fir"),
		filepath.Join(srcDir, "two.fir"),
	}
	for _, input := range inputs {
		if err := writeModule(input); err != nil {
			t.Fatalf("write module: %v", err)
		}
	}

	sink := &collectSink{}
	res, err := Emit(context.Background(), &EmitRequest{
		Inputs:   inputs,
		OutDir:   outDir,
		Jobs:     2,
		Progress: sink,
	})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	for i, name := range []string{"one.ll", "two.ll"} {
		want := filepath.Join(outDir, name)
		if res.Items[i].OutputPath != want {
			t.Errorf("item %d OutputPath = %q, want %q", i, res.Items[i].OutputPath, want)
		}
		if _, err := os.Stat(want); err != nil {
			t.Errorf("missing output %s: %v", want, err)
		}
	}

	done := 0
	for _, ev := range sink.events {
		if ev.Status == StatusDone && ev.Stage == StageEmit {
			done++
		}
	}
	if done != 2 {
		t.Errorf("done events = %d, want 2", done)
	}
}

func TestEmitRecordsPerItemErrors(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.fir")
	if err := writeModule(good); err != nil {
		t.Fatalf("write module: %v", err)
	}
	missing := filepath.Join(dir, "missing.fir")

	sink := &collectSink{}
	res, err := Emit(context.Background(), &EmitRequest{
		Inputs:   []string{missing, good},
		Progress: sink,
	})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if res.Failed() != 1 {
		t.Fatalf("failed = %d, want 1", res.Failed())
	}
	if res.Items[0].Err == nil || res.Items[1].Err != nil {
		t.Errorf("items = %+v", res.Items)
	}

	var errStage Stage
	for _, ev := range sink.events {
		if ev.File == missing && ev.Status == StatusError {
			errStage = ev.Stage
		}
	}
	if errStage != StageDecode {
		t.Errorf("error stage = %q, want decode", errStage)
	}
}

func TestEmitNoInputs(t *testing.T) {
	if _, err := Emit(context.Background(), &EmitRequest{}); err == nil {
		t.Fatal("expected error for empty inputs")
	}
	if _, err := Emit(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil request")
	}
}

func TestOutputPathFor(t *testing.T) {
	cases := []struct {
		input  string
		outDir string
		want   string
	}{
		{"mods/app.fir", "", filepath.Join("mods", "app.ll")},
		{"app.fir", "", "app.ll"},
		{"mods/app.fir", "out", filepath.Join("out", "app.ll")},
		{"mods/.fir", "", filepath.Join("mods", "out.ll")},
	}
	for _, tc := range cases {
		if got := outputPathFor(tc.input, tc.outDir); got != tc.want {
			t.Errorf("outputPathFor(%q, %q) = %q, want %q", tc.input, tc.outDir, got, tc.want)
		}
	}
}

func TestFailedStage(t *testing.T) {
	var none Timings
	if got := failedStage(none); got != StageDecode {
		t.Errorf("empty timings → %q, want decode", got)
	}
	var decoded Timings
	decoded.Set(StageDecode, 1)
	if got := failedStage(decoded); got != StageValidate {
		t.Errorf("decoded timings → %q, want validate", got)
	}
	decoded.Set(StageValidate, 1)
	if got := failedStage(decoded); got != StageEmit {
		t.Errorf("validated timings → %q, want emit", got)
	}
}

func writeModule(path string) error {
	return fir.WriteFile(path, mainModule())
}
