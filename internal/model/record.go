package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the wire-format timestamp layout: date and time columns
// combined into one value.
const TimeLayout = "2006-01-02 15:04:05"

// Level is the severity classification of a log record.
type Level string

const (
	LevelDebug   Level = "DEBUG"
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
)

// Levels returns the four valid severity levels in their canonical order.
func Levels() []Level {
	return []Level{LevelDebug, LevelInfo, LevelWarning, LevelError}
}

// Valid reports whether l is one of the four canonical levels.
// Matching is case-sensitive: the wire format requires exact level names.
func (l Level) Valid() bool {
	switch l {
	case LevelDebug, LevelInfo, LevelWarning, LevelError:
		return true
	}
	return false
}

// ParseLevel normalizes case-insensitive user input ("error", "Error") to a
// canonical Level. Used for command-line arguments, not for wire-format
// parsing, which matches exactly.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToUpper(s))
	if !l.Valid() {
		return "", fmt.Errorf("invalid log level %q (valid levels: DEBUG, INFO, WARNING, ERROR)", s)
	}
	return l, nil
}

// Record represents a single validated log line.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"` // line remainder, may contain spaces
}

// MarshalJSON renders the timestamp in the wire layout instead of RFC 3339,
// so naive timestamps never gain an invented time zone.
func (r Record) MarshalJSON() ([]byte, error) {
	type alias struct {
		Timestamp string `json:"timestamp"`
		Level     Level  `json:"level"`
		Message   string `json:"message"`
	}
	return json.Marshal(alias{
		Timestamp: r.Timestamp.Format(TimeLayout),
		Level:     r.Level,
		Message:   r.Message,
	})
}

// FilterByLevel returns the records whose level equals the requested level,
// preserving their original relative order. The level must be one of the four
// canonical values; callers validate with ParseLevel first.
func FilterByLevel(records []Record, level Level) []Record {
	var out []Record
	for _, r := range records {
		if r.Level == level {
			out = append(out, r)
		}
	}
	return out
}
