package fir_test

import (
	"bytes"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"flint/internal/fir"
	"flint/internal/source"
)

// sampleModule builds a small module exercising every instruction,
// operand, and terminator kind the codec must carry.
func sampleModule() *fir.Module {
	return &fir.Module{
		Name:    "demo",
		Files:   []string{"src/main.fl"},
		Globals: []fir.Global{{Name: "counter", Type: fir.I64}},
		Funcs: []fir.Func{
			{
				ID:      0,
				Name:    "main",
				Loc:     source.Loc{File: 0, Line: 1, Col: 1},
				Result:  fir.I32,
				Entry:   0,
				Defined: true,
				Locals: []fir.Local{
					{Name: "x", Type: fir.I64},
					{Name: "cond", Type: fir.I1},
				},
				Blocks: []fir.Block{
					{
						ID: 0,
						Instrs: []fir.Instr{
							{
								Kind: fir.InstrAssign,
								Loc:  source.Loc{File: 0, Line: 2, Col: 5},
								Assign: fir.AssignInstr{
									Dst: 0,
									Src: fir.RValue{
										Kind: fir.RValueBinaryOp,
										Binary: fir.BinaryOp{
											Op:   fir.BinAdd,
											Left: fir.Operand{Kind: fir.OperandLoad, Global: 0},
											Right: fir.Operand{Kind: fir.OperandConst, Const: fir.Const{
												Kind: fir.ConstInt, Type: fir.I64, IntValue: 1,
											}},
										},
									},
								},
							},
							{
								Kind: fir.InstrStore,
								Loc:  source.Loc{File: 0, Line: 2, Col: 5},
								Store: fir.StoreInstr{
									Global: 0,
									Value:  fir.Operand{Kind: fir.OperandCopy, Local: 0},
								},
							},
							{
								Kind: fir.InstrAssign,
								Loc:  source.Loc{File: 0, Line: 3, Col: 9},
								Assign: fir.AssignInstr{
									Dst: 1,
									Src: fir.RValue{
										Kind: fir.RValueBinaryOp,
										Binary: fir.BinaryOp{
											Op:   fir.BinLt,
											Left: fir.Operand{Kind: fir.OperandCopy, Local: 0},
											Right: fir.Operand{Kind: fir.OperandConst, Const: fir.Const{
												Kind: fir.ConstInt, Type: fir.I64, IntValue: 10,
											}},
										},
									},
								},
							},
							{
								Kind: fir.InstrCall,
								Loc:  source.Loc{File: 0, Line: 4, Col: 5},
								Call: fir.CallInstr{
									Callee: 1,
									Args:   []fir.Operand{{Kind: fir.OperandCopy, Local: 0}},
								},
							},
						},
						Term: fir.Terminator{
							Kind: fir.TermIf,
							Loc:  source.Loc{File: 0, Line: 5, Col: 5},
							If: fir.IfTerm{
								Cond: fir.Operand{Kind: fir.OperandCopy, Local: 1},
								Then: 1,
								Else: 1,
							},
						},
					},
					{
						ID: 1,
						Term: fir.Terminator{
							Kind: fir.TermReturn,
							Loc:  source.Loc{File: 0, Line: 6, Col: 5},
							Return: fir.ReturnTerm{
								HasValue: true,
								Value: fir.Operand{Kind: fir.OperandConst, Const: fir.Const{
									Kind: fir.ConstInt, Type: fir.I32,
								}},
							},
						},
					},
				},
			},
			{
				ID:        1,
				Name:      "put",
				Result:    fir.Void,
				NumParams: 1,
				Locals:    []fir.Local{{Name: "v", Type: fir.I64}},
				Entry:     fir.NoBlockID,
			},
		},
	}
}

// TestCodecRoundTrip tests that encode followed by decode reproduces
// the module exactly.
func TestCodecRoundTrip(t *testing.T) {
	original := sampleModule()

	var buf bytes.Buffer
	if err := fir.Encode(&buf, original); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	decoded, err := fir.Decode(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !reflect.DeepEqual(original, decoded) {
		t.Errorf("round trip changed the module\noriginal: %+v\ndecoded:  %+v", original, decoded)
	}
}

// TestCodecSchemaMismatch tests that payloads from another schema
// version are rejected.
func TestCodecSchemaMismatch(t *testing.T) {
	type stalePayload struct {
		Schema uint16
		Module fir.Module
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.Encode(&stalePayload{Schema: fir.SchemaVersion + 1}); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	_, err := fir.Decode(&buf)
	if err == nil {
		t.Fatal("expected schema version error")
	}
}

// TestCodecGarbage tests that non-msgpack bytes fail cleanly.
func TestCodecGarbage(t *testing.T) {
	if _, err := fir.Decode(bytes.NewReader([]byte("not a module"))); err == nil {
		t.Fatal("expected decode error for garbage input")
	}
}

// TestCodecFiles tests WriteFile and ReadFile through a real directory.
func TestCodecFiles(t *testing.T) {
	original := sampleModule()
	path := filepath.Join(t.TempDir(), "out", "demo"+fir.Ext)

	if err := fir.WriteFile(path, original); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	decoded, err := fir.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !reflect.DeepEqual(original, decoded) {
		t.Error("file round trip changed the module")
	}
}

// TestReadFileMissing tests the error path for absent files.
func TestReadFileMissing(t *testing.T) {
	if _, err := fir.ReadFile(filepath.Join(t.TempDir(), "nope.fir")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
