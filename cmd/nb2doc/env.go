package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-nbdoc"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout       io.Writer
	Stderr       io.Writer
	NewConverter converterFactory
}

// converterFactory builds the converter for one notebook's configuration.
type converterFactory func(cfg *nbdoc.Config, format string, logger *log.Logger) (CLIConverter, error)

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		NewConverter: newConverter,
	}
}

func newConverter(cfg *nbdoc.Config, format string, logger *log.Logger) (CLIConverter, error) {
	return nbdoc.NewConverter(
		nbdoc.WithConfig(cfg),
		nbdoc.WithFormat(format),
		nbdoc.WithLogger(logger),
	)
}
