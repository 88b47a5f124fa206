package availability

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew_RejectsInvalidRanges(t *testing.T) {
	_, err := New(map[string]WeekCalendar{
		"A": {time.Monday: {{Start: 12, End: 10}}},
	})
	if err == nil {
		t.Fatal("expected error for start >= end")
	}

	_, err = New(map[string]WeekCalendar{
		"A": {time.Monday: {{Start: 20, End: 25}}},
	})
	if err == nil {
		t.Fatal("expected error for end past midnight")
	}

	_, err = New(map[string]WeekCalendar{
		"A": {time.Monday: {{Start: 10, End: 14}, {Start: 13, End: 16}}},
	})
	if err == nil {
		t.Fatal("expected error for overlapping ranges")
	}
}

func TestNew_SortsRanges(t *testing.T) {
	cal, err := New(map[string]WeekCalendar{
		"A": {time.Monday: {{Start: 16, End: 20}, {Start: 9, End: 12}}},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ranges := cal.RangesFor("A", time.Monday)
	if len(ranges) != 2 || ranges[0].Start != 9 || ranges[1].Start != 16 {
		t.Fatalf("expected ranges sorted by start, got %v", ranges)
	}
}

func TestRangesFor_UnknownNameAndDayOff(t *testing.T) {
	cal := Default()
	if got := cal.RangesFor("никто", time.Monday); got != nil {
		t.Fatalf("expected nil for unknown name, got %v", got)
	}
	// Клепов works Tuesday/Thursday/Saturday only.
	if got := cal.RangesFor("Клепов Дмитрий Олегович", time.Monday); got != nil {
		t.Fatalf("expected nil for a day off, got %v", got)
	}
	if got := cal.RangesFor("Клепов Дмитрий Олегович", time.Tuesday); len(got) != 1 || got[0] != (HourRange{Start: 16, End: 20}) {
		t.Fatalf("unexpected Tuesday ranges: %v", got)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.json")
	data := `{"Иванова Анна": {"Monday": [{"start": 9, "end": 12}], "Friday": [{"start": 14, "end": 18}]}}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cal, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := cal.RangesFor("Иванова Анна", time.Friday); len(got) != 1 || got[0].Start != 14 {
		t.Fatalf("unexpected Friday ranges: %v", got)
	}
}

func TestLoad_UnknownWeekday(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.json")
	if err := os.WriteFile(path, []byte(`{"A": {"Someday": []}}`), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown weekday name")
	}
}
