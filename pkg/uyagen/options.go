package uyagen

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	DefaultFunctionCount = 1000
	DefaultStructCount   = 100
	DefaultOutputPath    = "large_performance_test.uya"

	// StdoutPath routes the fixture to standard output instead of a file.
	StdoutPath = "-"
)

// ErrNegativeCount is returned when a function or struct count is below zero.
var ErrNegativeCount = errors.New("count must not be negative")

// Options is the API-level configuration contract for fixture generation.
type Options struct {
	// Size controls
	FunctionCount int
	StructCount   int

	// Output
	OutputPath string
}

func Defaults() Options {
	return Options{
		FunctionCount: DefaultFunctionCount,
		StructCount:   DefaultStructCount,
		OutputPath:    DefaultOutputPath,
	}
}

// Validate rejects counts the generator cannot honour. Large values are legal
// and only produce correspondingly large files.
func (o Options) Validate() error {
	if err := o.validateCounts(); err != nil {
		return err
	}
	if o.OutputPath == "" {
		return errors.New("output path must not be empty")
	}
	return nil
}

func (o Options) validateCounts() error {
	if o.FunctionCount < 0 {
		return errors.WithMessagef(ErrNegativeCount, "function count %d", o.FunctionCount)
	}
	if o.StructCount < 0 {
		return errors.WithMessagef(ErrNegativeCount, "struct count %d", o.StructCount)
	}
	return nil
}

// ToStdout reports whether the fixture should be streamed to standard output.
func (o Options) ToStdout() bool {
	return o.OutputPath == StdoutPath
}

var countRE = regexp.MustCompile(`^[+-]?[0-9]+(_[0-9]+)*$`)

// ParseCount parses a positional count argument. Surrounding whitespace and
// single underscores between digits are accepted ("1_000"). The name is only
// used to label the error.
func ParseCount(name, raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if !countRE.MatchString(s) {
		return 0, errors.Errorf("invalid %s %q", name, raw)
	}
	n, err := strconv.Atoi(strings.ReplaceAll(s, "_", ""))
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s %q", name, raw)
	}
	if n < 0 {
		return 0, errors.WithMessagef(ErrNegativeCount, "invalid %s %q", name, raw)
	}
	return n, nil
}
