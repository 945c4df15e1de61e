package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/phuslu/log"

	"github.com/xa0c/tally/internal/model"
	"github.com/xa0c/tally/internal/parser"
)

// MaxLineLen caps how many characters a single read may return. A physical
// line longer than the cap is consumed as several bounded chunks, each
// treated as a line of its own, so a runaway line can never exhaust memory.
const MaxLineLen = 10000

// Kind discriminates fatal load failures.
type Kind int

const (
	// KindUnreadable covers open and read failures: missing file, denied
	// permission, path pointing at a directory, I/O errors mid-read.
	KindUnreadable Kind = iota + 1
	// KindBadEncoding means the file contains bytes that are not valid UTF-8.
	KindBadEncoding
)

// Error is the fatal failure report for a load. Malformed lines are not
// errors (they are skipped with a warning), so any Error aborts the run.
type Error struct {
	Path string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Kind == KindBadEncoding {
		return fmt.Sprintf("File `%s` has wrong UTF-8 encoding.", e.Path)
	}
	return fmt.Sprintf("File `%s` can't be read.", e.Path)
}

func (e *Error) Unwrap() error { return e.Err }

// errBadEncoding marks a byte sequence that is not valid UTF-8.
var errBadEncoding = errors.New("invalid UTF-8 byte sequence")

// Loader reads a log file into parsed records. Lines that fail to parse are
// reported through the logger and skipped; the rest of the file still loads.
type Loader struct {
	maxLineLen int
	logger     *log.Logger
}

// New returns a Loader that reports skipped lines through logger.
func New(logger *log.Logger) *Loader {
	if logger == nil {
		logger = &log.DefaultLogger
	}
	return &Loader{maxLineLen: MaxLineLen, logger: logger}
}

// Load reads the file at path and returns its parsed records in file order.
// The returned error, when non-nil, is always a *Error.
func (l *Loader) Load(path string) ([]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Path: path, Kind: KindUnreadable, Err: err}
	}
	defer f.Close()

	var records []model.Record
	reader := bufio.NewReader(f)
	for lineNumber := 1; ; lineNumber++ {
		line, err := l.readLine(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return records, nil
			}
			if errors.Is(err, errBadEncoding) {
				return nil, &Error{Path: path, Kind: KindBadEncoding, Err: err}
			}
			return nil, &Error{Path: path, Kind: KindUnreadable, Err: err}
		}

		record, err := parser.ParseLine(strings.TrimRight(line, "\r\n"))
		if err != nil {
			l.logger.Warn().Int("line", lineNumber).Err(err).Msg("skipping malformed line")
			continue
		}
		records = append(records, record)
	}
}

// readLine returns the next line including its terminating newline, capped
// at maxLineLen characters. When the cap is hit before a newline the partial
// chunk is returned as-is and the next call continues where this one
// stopped. io.EOF signals exhaustion; a final unterminated line is returned
// first, with the EOF delivered on the following call.
func (l *Loader) readLine(r *bufio.Reader) (string, error) {
	var b strings.Builder
	for n := 0; n < l.maxLineLen; n++ {
		ch, size, err := r.ReadRune()
		if err != nil {
			if err == io.EOF && b.Len() > 0 {
				return b.String(), nil
			}
			return "", err
		}
		// ReadRune reports an invalid byte as RuneError with size 1; a
		// genuine U+FFFD in the input decodes with size 3.
		if ch == utf8.RuneError && size == 1 {
			return "", errBadEncoding
		}
		b.WriteRune(ch)
		if ch == '\n' {
			break
		}
	}
	return b.String(), nil
}
