package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"DEBUG":   LevelDebug,
		"info":    LevelInfo,
		"Warning": LevelWarning,
		"eRrOr":   LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("ParseLevel(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseLevelInvalid(t *testing.T) {
	for _, in := range []string{"TRACE", "WARN", "FATAL", "", "IN FO"} {
		if _, err := ParseLevel(in); err == nil {
			t.Errorf("ParseLevel(%q) expected error, got nil", in)
		}
	}
}

func TestLevelValidIsCaseSensitive(t *testing.T) {
	if !Level("WARNING").Valid() {
		t.Error("expected WARNING to be valid")
	}
	if Level("warning").Valid() {
		t.Error("expected lowercase level to be invalid on the wire")
	}
	if Level("WARN").Valid() {
		t.Error("expected WARN to be invalid (only the four canonical names)")
	}
}

func TestFilterByLevel(t *testing.T) {
	ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	records := []Record{
		{Timestamp: ts, Level: LevelInfo, Message: "first"},
		{Timestamp: ts, Level: LevelError, Message: "boom"},
		{Timestamp: ts, Level: LevelInfo, Message: "second"},
		{Timestamp: ts, Level: LevelWarning, Message: "careful"},
		{Timestamp: ts, Level: LevelInfo, Message: "third"},
	}

	got := FilterByLevel(records, LevelInfo)
	if len(got) != 3 {
		t.Fatalf("expected 3 INFO records, got %d", len(got))
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Message != want {
			t.Errorf("record %d: expected message %q, got %q", i, want, got[i].Message)
		}
		if got[i].Level != LevelInfo {
			t.Errorf("record %d: expected level INFO, got %s", i, got[i].Level)
		}
	}
}

func TestFilterByLevelNoMatches(t *testing.T) {
	records := []Record{
		{Level: LevelInfo, Message: "only info"},
	}
	if got := FilterByLevel(records, LevelDebug); len(got) != 0 {
		t.Errorf("expected no DEBUG records, got %d", len(got))
	}
}

func TestRecordMarshalJSON(t *testing.T) {
	rec := Record{
		Timestamp: time.Date(2024, 1, 1, 10, 0, 1, 0, time.UTC),
		Level:     LevelError,
		Message:   "Something failed",
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}

	var got struct {
		Timestamp string `json:"timestamp"`
		Level     string `json:"level"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("invalid JSON output: %v\nraw: %s", err, raw)
	}

	if got.Timestamp != "2024-01-01 10:00:01" {
		t.Errorf("expected wire-layout timestamp, got %q", got.Timestamp)
	}
	if got.Level != "ERROR" {
		t.Errorf("expected level ERROR, got %q", got.Level)
	}
	if got.Message != "Something failed" {
		t.Errorf("expected message 'Something failed', got %q", got.Message)
	}
}
