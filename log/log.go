// Package log is the logging facade used by every other package.
//
// Logging is off unless logs.write is set: the TUI owns the terminal, so nothing may be
// written to stdout or stderr while it runs. Until Setup enables it, every call goes to
// a logger that drops everything.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/scrub-cli/scrub/filesystem"
	"github.com/scrub-cli/scrub/key"
	"github.com/scrub-cli/scrub/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// keepDays is how many daily log files survive Setup.
const keepDays = 7

const dayLayout = "2006-01-02"

var logger = silent()

func silent() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// Setup opens today's log file when logging is enabled and prunes old ones.
func Setup() error {
	if !viper.GetBool(key.LogsWrite) {
		logger = silent()
		return nil
	}

	dir := where.Logs()
	f, err := filesystem.API().OpenFile(
		filepath.Join(dir, time.Now().Format(dayLayout)+".log"),
		os.O_WRONLY|os.O_CREATE|os.O_APPEND,
		0o644,
	)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	l := logrus.New()
	l.SetOutput(f)

	if viper.GetBool(key.LogsJson) {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	logger = l
	prune(dir)

	return nil
}

// Level reports the active level. Disabled logging reports PanicLevel.
func Level() logrus.Level {
	return logger.GetLevel()
}

// prune removes all but the newest keepDays log files.
func prune(dir string) {
	entries, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return
	}

	var days []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".log") {
			days = append(days, e.Name())
		}
	}

	// names are dates, so lexical order is chronological
	slices.Sort(days)
	for _, name := range days[:max(len(days)-keepDays, 0)] {
		if err := filesystem.API().Remove(filepath.Join(dir, name)); err != nil {
			logger.Warnf("prune %s: %v", name, err)
		}
	}
}

// WithFields returns an entry carrying structured fields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

func Error(args ...any)                 { logger.Error(args...) }
func Errorf(format string, args ...any) { logger.Errorf(format, args...) }
func Warn(args ...any)                  { logger.Warn(args...) }
func Warnf(format string, args ...any)  { logger.Warnf(format, args...) }
func Info(args ...any)                  { logger.Info(args...) }
func Infof(format string, args ...any)  { logger.Infof(format, args...) }
func Debug(args ...any)                 { logger.Debug(args...) }
func Debugf(format string, args ...any) { logger.Debugf(format, args...) }
func Tracef(format string, args ...any) { logger.Tracef(format, args...) }
