package ops

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jmonzo/atril/internal/config"
	"github.com/jmonzo/atril/internal/errors"
)

func TestValidatePath_Traversal(t *testing.T) {
	dir := t.TempDir()
	cfg := exportCfg(dir)

	err := ValidatePath(filepath.Join(dir, "..", "escape.jsonl"), PathCheckWrite, cfg)
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("error = %v, want INVALID_REQUEST", err)
	}
}

func TestValidatePath_Extension(t *testing.T) {
	dir := t.TempDir()
	cfg := exportCfg(dir)

	for _, name := range []string{"backup.json", "backup.csv", "backup"} {
		err := ValidatePath(filepath.Join(dir, name), PathCheckWrite, cfg)
		if !errors.Is(err, errors.ErrInvalidRequest) {
			t.Errorf("ValidatePath(%q) = %v, want INVALID_REQUEST", name, err)
		}
	}
}

func TestValidatePath_AllowedDir(t *testing.T) {
	dir := t.TempDir()
	cfg := exportCfg(dir)

	if err := ValidatePath(filepath.Join(dir, "ok.jsonl"), PathCheckWrite, cfg); err != nil {
		t.Errorf("allowed dir rejected: %v", err)
	}

	// Subdirectories of an allowed dir are not allowed
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0700); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	err := ValidatePath(filepath.Join(sub, "nested.jsonl"), PathCheckWrite, cfg)
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("subdirectory accepted: %v", err)
	}

	// A directory outside the allowlist is rejected
	err = ValidatePath(filepath.Join(t.TempDir(), "other.jsonl"), PathCheckWrite, cfg)
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("outside dir accepted: %v", err)
	}
}

func TestValidatePath_ReadRequiresFile(t *testing.T) {
	dir := t.TempDir()
	cfg := exportCfg(dir)

	err := ValidatePath(filepath.Join(dir, "missing.jsonl"), PathCheckRead, cfg)
	if !errors.Is(err, errors.ErrFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestValidatePath_SymlinkRejected(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}
	dir := t.TempDir()
	cfg := exportCfg(dir)

	target := filepath.Join(dir, "real.jsonl")
	if err := os.WriteFile(target, []byte("{}\n"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	link := filepath.Join(dir, "link.jsonl")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("Symlink failed: %v", err)
	}

	err := ValidatePath(link, PathCheckRead, cfg)
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("symlink accepted: %v", err)
	}
}

func TestValidatePath_UnsafeMode(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.AllowUnsafePaths = true

	// Any directory goes, but the extension rule still holds
	if err := ValidatePath(filepath.Join(dir, "anywhere.jsonl"), PathCheckWrite, cfg); err != nil {
		t.Errorf("unsafe mode rejected write: %v", err)
	}
	err := ValidatePath(filepath.Join(dir, "anywhere.txt"), PathCheckWrite, cfg)
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("extension check skipped in unsafe mode: %v", err)
	}

	// Read mode still demands an existing file
	err = ValidatePath(filepath.Join(dir, "missing.jsonl"), PathCheckRead, cfg)
	if !errors.Is(err, errors.ErrFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestSanitizeForFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"spring term", "spring term"},
		{"a/b\\c", "a-b-c"},
		{"../../etc/passwd", "etc-passwd"},
		{"---", "unnamed"},
		{"", "unnamed"},
	}
	for _, tt := range tests {
		if got := SanitizeForFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeForFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
