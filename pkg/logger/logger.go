// Package logger is a small component-scoped, leveled logger. Every entry
// names the component that produced it and may carry structured fields.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

type LogLevel int32

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[LogLevel]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int32(l))
}

// ParseLevel accepts the level names case-insensitively.
func ParseLevel(s string) (LogLevel, error) {
	for level, name := range levelNames {
		if strings.EqualFold(s, name) {
			return level, nil
		}
	}
	return INFO, fmt.Errorf("unknown log level %q", s)
}

var (
	currentLevel atomic.Int32
	mu           sync.Mutex
	std          = log.New(os.Stderr, "", log.LstdFlags)
)

func init() {
	currentLevel.Store(int32(INFO))
}

func SetLevel(level LogLevel) {
	currentLevel.Store(int32(level))
}

func GetLevel() LogLevel {
	return LogLevel(currentLevel.Load())
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	std.SetOutput(w)
}

func logMessage(level LogLevel, component, message string, fields map[string]any) {
	if level < GetLevel() {
		return
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(level.String())
	b.WriteString("]")
	if component != "" {
		b.WriteString(" ")
		b.WriteString(component)
		b.WriteString(":")
	}
	b.WriteString(" ")
	b.WriteString(message)

	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, fields[k])
		}
	}

	mu.Lock()
	defer mu.Unlock()
	std.Println(b.String())
}

func DebugC(component, message string) {
	logMessage(DEBUG, component, message, nil)
}

func DebugCF(component, message string, fields map[string]any) {
	logMessage(DEBUG, component, message, fields)
}

func InfoC(component, message string) {
	logMessage(INFO, component, message, nil)
}

func InfoCF(component, message string, fields map[string]any) {
	logMessage(INFO, component, message, fields)
}

func WarnC(component, message string) {
	logMessage(WARN, component, message, nil)
}

func WarnCF(component, message string, fields map[string]any) {
	logMessage(WARN, component, message, fields)
}

func ErrorC(component, message string) {
	logMessage(ERROR, component, message, nil)
}

func ErrorCF(component, message string, fields map[string]any) {
	logMessage(ERROR, component, message, fields)
}
