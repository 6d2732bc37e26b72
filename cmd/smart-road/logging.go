package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	logDir      = "logs"
	logFileName = "smart-road.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging routes the standard logrus logger to logs/smart-road.log
// The terminal belongs to tcell, so without debug all output is discarded
// and nil is returned
func setupLogging(debug bool) *os.File {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})

	if !debug {
		logrus.SetOutput(io.Discard)
		logrus.SetLevel(logrus.InfoLevel)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		logrus.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("smart-road-%s.log", time.Now().Format("20060102-150405")))
		// A failed rename keeps appending to the oversized file
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logrus.SetOutput(io.Discard)
		return nil
	}

	logrus.SetOutput(f)
	logrus.SetLevel(logrus.DebugLevel)
	logrus.WithField("pid", os.Getpid()).Info("logging started")
	return f
}
