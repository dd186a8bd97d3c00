package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/milk9111/pong/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup configures the standard logrus logger from cfg. With a log file
// set, output goes to a rotating lumberjack file; otherwise to stderr. The
// returned closer releases the file and is safe to call when no file was
// opened.
func Setup(cfg config.Log) (io.Closer, error) {
	return configure(logrus.StandardLogger(), cfg, os.Stderr)
}

func configure(l *logrus.Logger, cfg config.Log, fallback io.Writer) (io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	l.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if cfg.File == "" {
		l.SetOutput(fallback)
		return nopCloser{}, nil
	}

	rotating := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
	l.SetOutput(rotating)
	return rotating, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
