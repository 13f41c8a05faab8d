package ops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jmonzo/atril/internal/config"
	"github.com/jmonzo/atril/internal/errors"
	"github.com/jmonzo/atril/internal/solution"
)

// writeExportDir materializes the fixture payloads as a solver export
// directory.
func writeExportDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, text := range fixturePayloads() {
		path := filepath.Join(dir, payloadFiles[name])
		if err := os.WriteFile(path, []byte(text), 0600); err != nil {
			t.Fatalf("WriteFile %s failed: %v", path, err)
		}
	}
	return dir
}

func TestLoad_FromDirectory(t *testing.T) {
	database := opsDB(t)
	dir := writeExportDir(t)

	out, err := Load(database, config.DefaultConfig(), LoadInput{
		Dir:   dir,
		Label: stringPtr("Spring Term"),
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if out.ID == "" {
		t.Error("ID is empty")
	}
	if out.RowCount != 3 {
		t.Errorf("RowCount = %d, want 3", out.RowCount)
	}
	if out.Replaced {
		t.Error("Replaced = true on first load")
	}

	fetched, err := Fetch(database, FetchInput{ID: out.ID})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if fetched.ScheduleCSV != scheduleCSV {
		t.Error("stored schedule payload differs from file contents")
	}
	if *fetched.LabelNorm != "spring term" {
		t.Errorf("LabelNorm = %q", *fetched.LabelNorm)
	}
}

func TestLoad_MissingDir(t *testing.T) {
	database := opsDB(t)
	_, err := Load(database, config.DefaultConfig(), LoadInput{Dir: "/nonexistent/solver/run"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("error = %v, want INVALID_REQUEST", err)
	}
}

func TestLoad_IncompleteExport(t *testing.T) {
	database := opsDB(t)
	dir := writeExportDir(t)
	if err := os.Remove(filepath.Join(dir, "insights.csv")); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	_, err := Load(database, config.DefaultConfig(), LoadInput{Dir: dir})
	if !errors.Is(err, errors.ErrIncompleteSolution) {
		t.Fatalf("error = %v, want INCOMPLETE_SOLUTION", err)
	}
	missing := err.(*errors.AtrilError).Details["missing_payloads"].([]string)
	if len(missing) != 1 || missing[0] != solution.PayloadInsights {
		t.Errorf("missing = %v", missing)
	}
}

func TestLoad_PayloadTooLarge(t *testing.T) {
	database := opsDB(t)
	cfg := config.DefaultConfig()
	cfg.MaxPayloadBytes = 64

	_, err := Load(database, cfg, LoadInput{Payloads: fixturePayloads()})
	if !errors.Is(err, errors.ErrPayloadTooLarge) {
		t.Errorf("error = %v, want PAYLOAD_TOO_LARGE", err)
	}
}

func TestLoad_LabelCollision(t *testing.T) {
	database := opsDB(t)
	loadFixture(t, database, "term one")

	_, err := Load(database, config.DefaultConfig(), LoadInput{
		Payloads: fixturePayloads(),
		Label:    stringPtr("Term  One"),
	})
	if !errors.Is(err, errors.ErrLabelAlreadyExists) {
		t.Errorf("error = %v, want LABEL_ALREADY_EXISTS", err)
	}
}

func TestLoad_ReplaceKeepsID(t *testing.T) {
	database := opsDB(t)
	id := loadFixture(t, database, "term one")

	payloads := fixturePayloads()
	payloads[solution.PayloadSchedule] = "header\nCourse 10,10,14,3,30,25,7,20,40,101,0,0,0,0"

	out, err := Load(database, config.DefaultConfig(), LoadInput{
		Payloads: payloads,
		Label:    stringPtr("term one"),
		Mode:     LoadModeReplace,
	})
	if err != nil {
		t.Fatalf("Load replace failed: %v", err)
	}
	if !out.Replaced {
		t.Error("Replaced = false, want true")
	}
	if out.ID != id {
		t.Errorf("ID = %q, want original %q", out.ID, id)
	}
	if out.RowCount != 1 {
		t.Errorf("RowCount = %d, want 1", out.RowCount)
	}
}

func TestLoad_ReplaceWithoutExistingInserts(t *testing.T) {
	database := opsDB(t)

	out, err := Load(database, config.DefaultConfig(), LoadInput{
		Payloads: fixturePayloads(),
		Label:    stringPtr("fresh"),
		Mode:     LoadModeReplace,
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if out.Replaced {
		t.Error("Replaced = true, want false for a new label")
	}
}

func TestLoad_InvalidMode(t *testing.T) {
	database := opsDB(t)
	_, err := Load(database, config.DefaultConfig(), LoadInput{
		Payloads: fixturePayloads(),
		Mode:     "merge",
	})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("error = %v, want INVALID_REQUEST", err)
	}
}

func TestLoad_BlankLabelRejected(t *testing.T) {
	database := opsDB(t)
	_, err := Load(database, config.DefaultConfig(), LoadInput{
		Payloads: fixturePayloads(),
		Label:    stringPtr("   "),
	})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("error = %v, want INVALID_REQUEST", err)
	}
}

func TestLoad_UnlabeledSolutionsCoexist(t *testing.T) {
	database := opsDB(t)
	first := loadFixture(t, database, "")
	second := loadFixture(t, database, "")
	if first == second {
		t.Error("two unlabeled loads produced the same id")
	}
}
