// Package quotes picks the quote of the day from a newline-delimited text file.
package quotes

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
)

// ErrNoQuotes means the file was readable but held no non-blank lines.
var ErrNoQuotes = errors.New("no quotes in file")

// maxLineSize bounds a single quote line.
const maxLineSize = 1 << 20

// Result is either a quote or the reason none could be picked.
type Result struct {
	Quote string
	Err   error
}

// OK reports whether Result holds a real quote.
func (r Result) OK() bool {
	return r.Err == nil
}

// Picker selects one line uniformly at random on every call.
type Picker struct {
	path string
	intN func(n int) int
	log  *slog.Logger
}

// NewPicker returns a Picker reading path on each Pick.
func NewPicker(path string, logger *slog.Logger) *Picker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Picker{
		path: path,
		intN: rand.IntN,
		log:  logger.With("component", "quote_picker", "path", path),
	}
}

// Pick loads the file and chooses one quote. It never fails the caller; a
// missing, unreadable or empty file is reported through Result.Err.
func (p *Picker) Pick() Result {
	lines, err := Load(p.path)
	if err == nil && len(lines) == 0 {
		err = ErrNoQuotes
	}
	if err != nil {
		p.log.Warn("No quote available", "error", err)
		return Result{Err: err}
	}

	quote := lines[p.intN(len(lines))]
	p.log.Debug("Picked quote", "pool_size", len(lines))
	return Result{Quote: quote}
}

// Load reads path and returns its lines with surrounding whitespace removed,
// skipping blank ones.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open quotes: %w", err)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for first := true; scanner.Scan(); first = false {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read quotes: %w", err)
	}

	return lines, nil
}
