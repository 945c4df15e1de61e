package parser

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/xa0c/tally/internal/model"
)

// columnCount is the fixed number of wire-format columns:
// date, time, level, and the free-text message.
const columnCount = 4

// Parse failure reasons. Each is localized to a single line; the loader
// recovers by warning and skipping, never by aborting the run.
var (
	ErrIncompleteColumns = errors.New("incomplete set of columns")
	ErrInvalidTimestamp  = errors.New("date/time columns have invalid format or value")
	ErrInvalidLevel      = errors.New("log level column has invalid value")
)

// ParseLine converts one raw log line (trailing newline characters already
// stripped) into a validated Record.
//
// The line is split into at most four tokens: the first three on whitespace,
// the fourth being everything remaining, so the message may itself contain
// spaces. Tokens one and two combine into the timestamp, token three must be
// one of the four exact level names, token four is the message.
// Deterministic and side-effect free; failures are the sentinel errors above.
func ParseLine(line string) (model.Record, error) {
	cols := splitColumns(line, columnCount)
	if len(cols) < columnCount {
		return model.Record{}, ErrIncompleteColumns
	}

	ts, err := time.Parse(model.TimeLayout, cols[0]+" "+cols[1])
	if err != nil {
		return model.Record{}, ErrInvalidTimestamp
	}

	level := model.Level(cols[2])
	if !level.Valid() {
		return model.Record{}, ErrInvalidLevel
	}

	return model.Record{Timestamp: ts, Level: level, Message: cols[3]}, nil
}

// splitColumns splits line into at most max tokens on runs of Unicode
// whitespace. The last token is the remainder of the line after the final
// separator run, kept verbatim (including trailing whitespace); a remainder
// made only of whitespace yields no token.
func splitColumns(line string, max int) []string {
	tokens := make([]string, 0, max)
	rest := line

	for len(tokens) < max-1 {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		if rest == "" {
			return tokens
		}
		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			return append(tokens, rest)
		}
		tokens = append(tokens, rest[:end])
		rest = rest[end:]
	}

	rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
	if rest == "" {
		return tokens
	}
	return append(tokens, rest)
}
