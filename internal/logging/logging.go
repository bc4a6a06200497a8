// Package logging configures the logrus logger used by the CLI.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Alp4ka/relaypager/internal/config"
)

// New builds a logger from the configuration.
func New(c *config.Logger) (*logrus.Logger, error) {
	l := logrus.New()
	if err := Init(l, c); err != nil {
		return nil, err
	}

	return l, nil
}

// Init applies the configuration to l.
func Init(l *logrus.Logger, c *config.Logger) error {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return fmt.Errorf("logger.level: %w", err)
	}
	l.SetLevel(level)

	switch c.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("logger.format: unsupported format '%s'", c.Format)
	}

	out, err := output(c.Output)
	if err != nil {
		return err
	}
	l.SetOutput(out)

	return nil
}

func output(name string) (io.Writer, error) {
	switch name {
	case "stderr", "":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	case "discard":
		return io.Discard, nil
	default:
		return nil, fmt.Errorf("logger.output: unsupported output '%s'", name)
	}
}
