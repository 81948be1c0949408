package uyagen

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type report struct {
	stage       Stage
	done, total int
}

func TestProgressEveryThousand(t *testing.T) {
	var got []report
	p := ProgressFunc(func(stage Stage, done, total int) {
		got = append(got, report{stage, done, total})
	})

	_, err := Generate(io.Discard, Options{FunctionCount: 2001, StructCount: 1000}, p)
	require.NoError(t, err)

	// Struct 1000 is never generated when StructCount is 1000, so only functions report.
	assert.Equal(t, []report{
		{StageFunctions, 1000, 2001},
		{StageFunctions, 2000, 2001},
	}, got)
}

func TestProgressStructs(t *testing.T) {
	var got []report
	p := ProgressFunc(func(stage Stage, done, total int) {
		got = append(got, report{stage, done, total})
	})

	_, err := Generate(io.Discard, Options{FunctionCount: 0, StructCount: 1001}, p)
	require.NoError(t, err)
	assert.Equal(t, []report{{StageStructs, 1000, 1001}}, got)
}

var errDiskFull = errors.New("disk full")

type failingWriter struct {
	budget int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.budget {
		n := w.budget
		w.budget = 0
		return n, errDiskFull
	}
	w.budget -= len(p)
	return len(p), nil
}

func TestGeneratePropagatesWriteErrors(t *testing.T) {
	// Small fixtures fit the buffer and fail on flush.
	_, err := Generate(&failingWriter{}, Options{FunctionCount: 1, StructCount: 1}, nil)
	require.ErrorIs(t, err, errDiskFull)
	assert.Contains(t, err.Error(), "flush output")

	// Large ones fail while a section is still being written.
	st, err := Generate(&failingWriter{budget: 100}, Options{FunctionCount: 5000, StructCount: 10}, nil)
	require.ErrorIs(t, err, errDiskFull)
	assert.Contains(t, err.Error(), "write functions")
	assert.EqualValues(t, 100, st.Bytes)
}

func TestCountingWriter(t *testing.T) {
	cw := &countingWriter{w: io.Discard}
	_, _ = cw.Write([]byte("abc"))
	_, _ = cw.Write([]byte("de"))
	assert.EqualValues(t, 5, cw.n)
}
