package fir

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when the serialized Module format changes
const SchemaVersion uint16 = 1

// Ext is the file extension for serialized FIR modules.
const Ext = ".fir"

// payload wraps a module with the schema version so stale files are
// rejected instead of misdecoded.
type payload struct {
	Schema uint16
	Module Module
}

// Encode writes a module to w in msgpack form.
func Encode(w io.Writer, m *Module) error {
	if m == nil {
		return fmt.Errorf("fir: encode nil module")
	}
	enc := msgpack.NewEncoder(w)
	return enc.Encode(&payload{Schema: SchemaVersion, Module: *m})
}

// Decode reads a module from r, rejecting payloads written by a
// different schema version.
func Decode(r io.Reader) (*Module, error) {
	dec := msgpack.NewDecoder(r)
	var p payload
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("fir: decode: %w", err)
	}
	if p.Schema != SchemaVersion {
		return nil, fmt.Errorf("fir: schema version %d, want %d", p.Schema, SchemaVersion)
	}
	return &p.Module, nil
}

// WriteFile serializes a module to path atomically: the bytes land in
// a temp file that is renamed over the target.
func WriteFile(path string, m *Module) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*"+Ext)
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := Encode(f, m); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), path)
}

// ReadFile loads a serialized module from path.
func ReadFile(path string) (*Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
