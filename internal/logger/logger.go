// Package logger builds the server logger.
package logger

import (
	"io"
	"os"

	"github.com/mdouchement/bucketlist/internal/config"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger configured with the given parameters.
// When a file is set, logs are written to stdout and to the rotated file.
func New(cfg config.Log) (*logrus.Logger, error) {
	l := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse log level")
	}
	l.SetLevel(level)

	switch cfg.Format {
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, errors.Errorf("unsupported log format: %s", cfg.Format)
	}

	if cfg.File != "" {
		l.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}))
	}

	return l, nil
}

// Discard returns a logger that writes nothing.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
