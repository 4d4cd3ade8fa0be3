package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// SetLoggerToStructured switches the process-wide logger to JSON output,
// mirrored to stderr and, when filePath is set, to a session log file.
func SetLoggerToStructured(level logrus.Level, filePath string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(level)

	if filePath == "" {
		logrus.SetOutput(os.Stderr)
		return
	}

	_ = os.MkdirAll(filepath.Dir(filePath), 0o755)
	if file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666); err == nil {
		logrus.SetOutput(io.MultiWriter(os.Stderr, file))
	} else {
		logrus.SetOutput(os.Stderr)
		logrus.WithError(err).Error("Could not create file for logging")
	}
}
