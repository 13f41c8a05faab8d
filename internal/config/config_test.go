package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MaxPayloadBytes != 4*1024*1024 {
		t.Errorf("MaxPayloadBytes = %d", cfg.MaxPayloadBytes)
	}
	if cfg.DefaultDimension != "room" {
		t.Errorf("DefaultDimension = %q", cfg.DefaultDimension)
	}
	if cfg.AllowUnsafePaths {
		t.Errorf("AllowUnsafePaths = true, want false")
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `{
		"max_payload_bytes": 1024,
		"default_dimension": "teacher",
		"allowed_paths": ["/tmp/exports"],
		"db_max_open_conns": 1,
		"disabled_tools": ["solution_delete"]
	}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MaxPayloadBytes != 1024 {
		t.Errorf("MaxPayloadBytes = %d, want 1024", cfg.MaxPayloadBytes)
	}
	if cfg.DefaultDimension != "teacher" {
		t.Errorf("DefaultDimension = %q, want teacher", cfg.DefaultDimension)
	}
	if !reflect.DeepEqual(cfg.AllowedPaths, []string{"/tmp/exports"}) {
		t.Errorf("AllowedPaths = %v", cfg.AllowedPaths)
	}
	if cfg.DBMaxOpenConns != 1 {
		t.Errorf("DBMaxOpenConns = %d, want 1", cfg.DBMaxOpenConns)
	}
	if !reflect.DeepEqual(cfg.DisabledTools, []string{"solution_delete"}) {
		t.Errorf("DisabledTools = %v", cfg.DisabledTools)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Errorf("Load succeeded on invalid JSON")
	}
}

func TestMerge(t *testing.T) {
	base := &Config{
		MaxPayloadBytes:  4096,
		DefaultDimension: "room",
		AllowedPaths:     []string{"/a", "/b"},
	}
	overlay := &Config{
		DefaultDimension: "student",
		AllowedPaths:     []string{"/b", " /c "},
		AllowUnsafePaths: true,
		DBMaxIdleConns:   2,
	}

	got := Merge(base, overlay)
	if got.MaxPayloadBytes != 4096 {
		t.Errorf("MaxPayloadBytes = %d, want base value", got.MaxPayloadBytes)
	}
	if got.DefaultDimension != "student" {
		t.Errorf("DefaultDimension = %q, want overlay value", got.DefaultDimension)
	}
	if !got.AllowUnsafePaths {
		t.Errorf("AllowUnsafePaths = false, want true")
	}
	if got.DBMaxIdleConns != 2 {
		t.Errorf("DBMaxIdleConns = %d", got.DBMaxIdleConns)
	}
	if want := []string{"/a", "/b", "/c"}; !reflect.DeepEqual(got.AllowedPaths, want) {
		t.Errorf("AllowedPaths = %v, want %v", got.AllowedPaths, want)
	}
}

func TestMergeStringSlice_EmptyIsNil(t *testing.T) {
	if got := mergeStringSlice(nil, []string{"  ", ""}); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}
