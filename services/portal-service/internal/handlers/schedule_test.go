package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const weekBlob = `{
	"2024-03-04": [{"subject": "Математический анализ", "start": "10:00"}],
	"2024-03-05": [{"subject": "Физика", "start": "12:00"}, {"subject": "Программирование", "start": "14:00"}]
}`

func TestDaySlice(t *testing.T) {
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	got := daySlice(json.RawMessage(weekBlob), monday)
	var lessons []map[string]string
	if err := json.Unmarshal(got, &lessons); err != nil {
		t.Fatalf("unmarshalling day: %v", err)
	}
	if len(lessons) != 1 || lessons[0]["subject"] != "Математический анализ" {
		t.Fatalf("monday = %v", lessons)
	}

	if got := daySlice(json.RawMessage(weekBlob), monday.AddDate(0, 0, 2)); got != nil {
		t.Fatalf("expected nil for a date missing from the blob, got %s", got)
	}
}

func TestDaySlice_BadBlob(t *testing.T) {
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	for _, blob := range []string{"null", `[]`, `"text"`, ``} {
		if got := daySlice(json.RawMessage(blob), date); got != nil {
			t.Fatalf("blob %q: expected nil, got %s", blob, got)
		}
	}
}

func TestRequireUID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/schedule?uid=%2042%20", nil)
	rec := httptest.NewRecorder()
	uid, ok := requireUID(rec, req)
	if !ok || uid != "42" {
		t.Fatalf("uid = %q, ok = %v", uid, ok)
	}
}

func TestRequireUID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/schedule", nil)
	rec := httptest.NewRecorder()
	if _, ok := requireUID(rec, req); ok {
		t.Fatal("expected rejection")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRequireUID_WrongMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/schedule?uid=42", nil)
	rec := httptest.NewRecorder()
	if _, ok := requireUID(rec, req); ok {
		t.Fatal("expected rejection")
	}
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestUpdate_BadRequests(t *testing.T) {
	h := &ScheduleHandler{} // repo untouched on the error paths

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{"uid": `},
		{"missing uid", `{"schedule": {"2024-03-04": []}, "year": 2024, "week": 10}`},
		{"missing schedule", `{"uid": "42", "year": 2024, "week": 10}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/schedule/update", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.Update(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
			}
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/schedule/update", nil)
	rec := httptest.NewRecorder()
	h.Update(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}
