package ops

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/jmonzo/atril/internal/config"
	"github.com/jmonzo/atril/internal/insights"
	"github.com/jmonzo/atril/internal/solution"
)

func TestInsights(t *testing.T) {
	database := opsDB(t)
	id := loadFixture(t, database, "spring term")

	out, err := Insights(database, InsightsInput{Label: "spring term"})
	if err != nil {
		t.Fatalf("Insights failed: %v", err)
	}

	if out.ID != id {
		t.Errorf("ID = %q, want %q", out.ID, id)
	}
	if out.Snapshot.WorkloadBalanceIndex != 0.42 {
		t.Errorf("WorkloadBalanceIndex = %v", out.Snapshot.WorkloadBalanceIndex)
	}

	// Balance gauge: 0.42 scales to 42 on the light-green band
	if math.Abs(out.WorkloadBalance.Scaled-42) > 1e-9 || out.WorkloadBalance.Color != insights.ColorLightGreen {
		t.Errorf("WorkloadBalance = %+v", out.WorkloadBalance)
	}
	// Utilization reads inverted: 0.95 is the good end
	if out.RoomUtilization.Color != insights.ColorGreen {
		t.Errorf("RoomUtilization = %+v", out.RoomUtilization)
	}

	// Students 101 and 103 are missing out of a roster of 3
	wantPct := float64(2) / 3 * 100
	if out.MissingStudentPct != wantPct {
		t.Errorf("MissingStudentPct = %v, want %v", out.MissingStudentPct, wantPct)
	}
	if out.MissingNeedleAngle != 347 {
		t.Errorf("MissingNeedleAngle = %d, want 347", out.MissingNeedleAngle)
	}

	// Teacher 8 (0.8) scores worse than teacher 7 (0.2)
	if len(out.UnderutilizedTeachers) != 2 {
		t.Fatalf("UnderutilizedTeachers = %v", out.UnderutilizedTeachers)
	}
	if out.UnderutilizedTeachers[0].Name != "Marta Sol" || out.UnderutilizedTeachers[0].Score != 0.8 {
		t.Errorf("worst teacher = %+v", out.UnderutilizedTeachers[0])
	}

	if len(out.MissingCourseStudents) != 1 || out.MissingCourseStudents[0].Name != "Ana Ruiz" {
		t.Errorf("MissingCourseStudents = %v", out.MissingCourseStudents)
	}
	if len(out.MissingInstrumentStudents) != 1 || out.MissingInstrumentStudents[0].Name != "Clara Vega" {
		t.Errorf("MissingInstrumentStudents = %v", out.MissingInstrumentStudents)
	}

	// Antiquity penalties 2 and 0 land in two buckets
	if len(out.AntiquityBuckets) != 2 {
		t.Errorf("AntiquityBuckets = %v", out.AntiquityBuckets)
	}
	// Room underuse 0.5 and 3.2: best and worst buckets
	if len(out.RoomUnderuseBuckets) != 2 {
		t.Fatalf("RoomUnderuseBuckets = %v", out.RoomUnderuseBuckets)
	}
	if out.RoomUnderuseBuckets[1].Color != insights.ColorRed {
		t.Errorf("worst bucket = %+v", out.RoomUnderuseBuckets[1])
	}
}

func TestInsights_MalformedScalarDegrades(t *testing.T) {
	database := opsDB(t)

	payloads := fixturePayloads()
	payloads[solution.PayloadInsights] = strings.Replace(insightsCSV, "0.42", "garbage", 1)
	loaded, err := Load(database, config.DefaultConfig(), LoadInput{Payloads: payloads})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	out, err := Insights(database, InsightsInput{ID: loaded.ID})
	if err != nil {
		t.Fatalf("Insights failed: %v", err)
	}
	if !math.IsNaN(out.Snapshot.WorkloadBalanceIndex) {
		t.Errorf("WorkloadBalanceIndex = %v, want NaN", out.Snapshot.WorkloadBalanceIndex)
	}
	if out.WorkloadBalance.Color != insights.ColorRed {
		t.Errorf("WorkloadBalance = %+v", out.WorkloadBalance)
	}
	// The intact metrics still classify
	if out.RoomUtilization.Color != insights.ColorGreen {
		t.Errorf("RoomUtilization = %+v", out.RoomUtilization)
	}

	// The whole view must survive serialization, as the CLI and MCP
	// surfaces both emit it as JSON
	encoded, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(encoded), `"workload_balance_index":null`) {
		t.Errorf("encoded = %s, want null workload_balance_index", encoded)
	}
}

func TestCongestion(t *testing.T) {
	database := opsDB(t)
	id := loadFixture(t, database, "")

	out, err := Congestion(database, CongestionInput{ID: id})
	if err != nil {
		t.Fatalf("Congestion failed: %v", err)
	}
	if out.ID != id {
		t.Errorf("ID = %q", out.ID)
	}
	m := out.Matrix
	if m.MaxCount != 14 {
		t.Errorf("MaxCount = %d, want 14", m.MaxCount)
	}
	// Slot 10 on Monday holds the peak
	if c := m.Cells[0][10]; c.Count != 14 || c.Color != insights.ColorRed {
		t.Errorf("peak cell = %+v", c)
	}
	// Slot 21 on Tuesday is light relative to the peak
	if c := m.Cells[1][1]; c.Count != 3 {
		t.Errorf("cell = %+v", c)
	}
}

func TestResolveNames(t *testing.T) {
	database := opsDB(t)
	id := loadFixture(t, database, "")

	out, err := ResolveNames(database, ResolveNamesInput{ID: id, Kind: "teacher", IDs: []string{"7", "99"}})
	if err != nil {
		t.Fatalf("ResolveNames failed: %v", err)
	}
	if out.Entries[0].Name != "Luis Prada" || out.Entries[0].Missing {
		t.Errorf("Entries[0] = %+v", out.Entries[0])
	}
	if out.Entries[1].Name != "Teacher 99" || !out.Entries[1].Missing {
		t.Errorf("Entries[1] = %+v", out.Entries[1])
	}
}

func TestResolveNames_WholeTable(t *testing.T) {
	database := opsDB(t)
	id := loadFixture(t, database, "")

	out, err := ResolveNames(database, ResolveNamesInput{ID: id, Kind: "student"})
	if err != nil {
		t.Fatalf("ResolveNames failed: %v", err)
	}
	if len(out.Entries) != 3 {
		t.Fatalf("Entries = %v", out.Entries)
	}
	if out.Entries[0].Name != "Ana Ruiz" || out.Entries[2].Name != "Clara Vega" {
		t.Errorf("Entries = %v", out.Entries)
	}
}

func TestResolveNames_BadKind(t *testing.T) {
	database := opsDB(t)
	id := loadFixture(t, database, "")

	if _, err := ResolveNames(database, ResolveNamesInput{ID: id, Kind: "building"}); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestConvertSlot(t *testing.T) {
	info, err := ConvertSlot(10)
	if err != nil {
		t.Fatalf("ConvertSlot failed: %v", err)
	}
	if info.Weekday != "MON" || info.Start != "18:30" || info.End != "18:45" {
		t.Errorf("info = %+v", info)
	}
	if info.Label != "Mon 18:30" {
		t.Errorf("Label = %q", info.Label)
	}

	if _, err := ConvertSlot(100); err == nil {
		t.Error("expected error for out-of-range slot")
	}
}
