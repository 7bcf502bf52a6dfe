// Package applog is the leveled logger shared by the loader, the viewer and the CLIs.
// Lines look like "accidentviewer 2026/01/02 15:04:05.000000 INFO  [loader] kept 812 rows".
package applog

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// Level represents severity.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelLabels = [...]string{"debug", "info", "warn", "error"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return fmt.Sprintf("Level(%d)", int32(l))
	}
	return levelLabels[l]
}

var currentLevel atomic.Int32

func init() { currentLevel.Store(int32(LevelInfo)) }

var baseLogger = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)

// Configure tags every line with program and applies the level from the
// config file or a flag. An unknown level is an error and changes nothing.
func Configure(program, level string) error {
	l, ok := ParseLevel(level)
	if !ok {
		return fmt.Errorf("unknown log level %q (want debug|info|warn|error)", level)
	}
	currentLevel.Store(int32(l))
	if program = strings.TrimSpace(program); program != "" {
		program += " "
	}
	baseLogger.SetPrefix(program)
	return nil
}

// SetLogLevel sets the global log level. Unknown names are ignored.
func SetLogLevel(s string) {
	if l, ok := ParseLevel(s); ok {
		currentLevel.Store(int32(l))
	}
}

// ParseLevel maps a level name (debug|info|warn|warning|error) to a Level.
func ParseLevel(s string) (Level, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return LevelWarn, true
	}
	for i, name := range levelLabels {
		if s == name {
			return Level(i), true
		}
	}
	return LevelInfo, false
}

// SetOutput redirects log output.
func SetOutput(w io.Writer) { baseLogger.SetOutput(w) }

// GetLogLevel returns the current global log level.
func GetLogLevel() Level { return Level(currentLevel.Load()) }

func logf(l Level, format string, args ...interface{}) {
	if GetLogLevel() > l {
		return
	}
	msg := format
	// literal % signs survive when there are no args
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	baseLogger.Printf("%-5s %s", strings.ToUpper(l.String()), msg)
}

func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// TimeTrack logs at debug level how long a phase took. Use with defer.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start).Round(time.Microsecond))
}
