package uyagen

import "io"

// absFixtureGenerator is the minimal abstraction Generate drives.
type absFixtureGenerator interface {
	initialize(w io.Writer)
	goGenerator() (Stats, error)
}

func createFixtureGenerator(opts Options, p Progress) absFixtureGenerator {
	return newDefaultFixtureGenerator(opts, p)
}
