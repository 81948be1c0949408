package uyagen

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// defaultFixtureGenerator runs the fixed section order:
// initialize -> outputHeader -> generateStructs -> generateHelpers ->
// generateFunctions -> output.
// Every section is written as soon as it is rendered, so memory stays flat
// regardless of the requested counts.
type defaultFixtureGenerator struct {
	opts     Options
	progress Progress
	cw       *countingWriter
	w        *bufio.Writer
}

func newDefaultFixtureGenerator(opts Options, p Progress) *defaultFixtureGenerator {
	return &defaultFixtureGenerator{opts: opts, progress: p}
}

func (g *defaultFixtureGenerator) initialize(w io.Writer) {
	g.cw = &countingWriter{w: w}
	g.w = bufio.NewWriterSize(g.cw, 64*1024)
}

func (g *defaultFixtureGenerator) emit(s string) error {
	_, err := g.w.WriteString(s)
	return err
}

func (g *defaultFixtureGenerator) outputHeader() error {
	return g.emit(Header(g.opts.FunctionCount, g.opts.StructCount))
}

func (g *defaultFixtureGenerator) generateStructs() error {
	if err := g.emit(section(sectionStructs)); err != nil {
		return err
	}
	for i := 0; i < g.opts.StructCount; i++ {
		if i%progressEvery == 0 && i > 0 {
			g.progress.Report(StageStructs, i, g.opts.StructCount)
		}
		if err := g.emit(StructDecl(i)); err != nil {
			return err
		}
	}
	return nil
}

func (g *defaultFixtureGenerator) generateHelpers() error {
	if err := g.emit(section(sectionHelpers)); err != nil {
		return err
	}
	return g.emit(HelperFuncs())
}

func (g *defaultFixtureGenerator) generateFunctions() error {
	if err := g.emit(section(sectionFunctions)); err != nil {
		return err
	}
	for i := 0; i < g.opts.FunctionCount; i++ {
		if i%progressEvery == 0 && i > 0 {
			g.progress.Report(StageFunctions, i, g.opts.FunctionCount)
		}
		if err := g.emit(GroupComment(i)); err != nil {
			return err
		}
		if err := g.emit(FunctionDecl(i, g.opts.StructCount)); err != nil {
			return err
		}
	}
	return nil
}

func (g *defaultFixtureGenerator) output() error {
	if err := g.emit(section(sectionMain)); err != nil {
		return err
	}
	return g.emit(MainFunc(g.opts.FunctionCount))
}

func (g *defaultFixtureGenerator) goGenerator() (Stats, error) {
	steps := []struct {
		name string
		run  func() error
	}{
		{"header", g.outputHeader},
		{"structs", g.generateStructs},
		{"helpers", g.generateHelpers},
		{"functions", g.generateFunctions},
		{"main", g.output},
	}
	for _, s := range steps {
		if err := s.run(); err != nil {
			return g.stats(), errors.WithMessagef(err, "write %s", s.name)
		}
	}
	if err := g.w.Flush(); err != nil {
		return g.stats(), errors.WithMessage(err, "flush output")
	}
	return g.stats(), nil
}

func (g *defaultFixtureGenerator) stats() Stats {
	return Stats{
		Functions: g.opts.FunctionCount,
		Structs:   g.opts.StructCount,
		Bytes:     g.cw.n,
	}
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
