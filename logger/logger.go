/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package logger provides levelled logging for the clause parser.
// The parser only writes DEBUG traces (clause windows, nested descents) and
// WARN notices, so the default logger stays quiet unless asked otherwise.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Level defines log levels
type Level int

const (
	// DEBUG traces every extracted clause window and nested parse
	DEBUG Level = iota
	// INFO general information
	INFO
	// WARN recoverable oddities such as a JOIN without ON
	WARN
	// ERROR parse failures
	ERROR
	// OFF disables logging
	OFF
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	OFF:   "OFF",
}

// String returns string representation of log level
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseLevel maps a case-insensitive level name to a Level.
func ParseLevel(name string) (Level, error) {
	for level, levelName := range levelNames {
		if strings.EqualFold(levelName, strings.TrimSpace(name)) {
			return level, nil
		}
	}
	return OFF, fmt.Errorf("unknown log level %q", name)
}

// Logger interface defines basic methods for logging
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	// SetLevel sets the minimum level that is written
	SetLevel(level Level)
}

// writerLogger writes timestamped lines to an io.Writer
type writerLogger struct {
	mu     sync.RWMutex
	level  Level
	name   string
	logger *log.Logger
}

// NewLogger creates a logger writing to output.
//
// Example:
//
//	log := NewLogger(DEBUG, os.Stderr)
//	log.Debug("from window: %q", "author")
func NewLogger(level Level, output io.Writer) Logger {
	return NewNamedLogger("", level, output)
}

// NewNamedLogger creates a logger whose lines carry a component name, e.g. [rsql].
func NewNamedLogger(name string, level Level, output io.Writer) Logger {
	return &writerLogger{
		level:  level,
		name:   name,
		logger: log.New(output, "", 0), // 使用自定义格式，不使用标准库的前缀
	}
}

func (l *writerLogger) Debug(format string, args ...interface{}) {
	l.write(DEBUG, format, args...)
}

func (l *writerLogger) Info(format string, args ...interface{}) {
	l.write(INFO, format, args...)
}

func (l *writerLogger) Warn(format string, args ...interface{}) {
	l.write(WARN, format, args...)
}

func (l *writerLogger) Error(format string, args ...interface{}) {
	l.write(ERROR, format, args...)
}

func (l *writerLogger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

func (l *writerLogger) enabled(level Level) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level != OFF && level >= l.level
}

func (l *writerLogger) write(level Level, format string, args ...interface{}) {
	if !l.enabled(level) {
		return
	}
	var line strings.Builder
	line.WriteString(fmt.Sprintf("[%s] [%s]", time.Now().Format("2006-01-02 15:04:05.000"), level))
	if l.name != "" {
		line.WriteString(" [" + l.name + "]")
	}
	line.WriteString(" ")
	line.WriteString(fmt.Sprintf(format, args...))
	l.logger.Println(line.String())
}

// discardLogger drops everything
type discardLogger struct{}

// NewDiscardLogger creates a logger that discards all logs
func NewDiscardLogger() Logger {
	return discardLogger{}
}

func (discardLogger) Debug(format string, args ...interface{}) {}
func (discardLogger) Info(format string, args ...interface{})  {}
func (discardLogger) Warn(format string, args ...interface{})  {}
func (discardLogger) Error(format string, args ...interface{}) {}
func (discardLogger) SetLevel(level Level)                     {}

var (
	defaultMu       sync.RWMutex
	defaultInstance = NewNamedLogger("sqlclause", WARN, os.Stderr)
)

// SetDefault sets the global default logger
func SetDefault(logger Logger) {
	defaultMu.Lock()
	defaultInstance = logger
	defaultMu.Unlock()
}

// GetDefault gets the global default logger
func GetDefault() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultInstance
}

// 便捷的全局日志方法

func Debug(format string, args ...interface{}) {
	GetDefault().Debug(format, args...)
}

func Info(format string, args ...interface{}) {
	GetDefault().Info(format, args...)
}

func Warn(format string, args ...interface{}) {
	GetDefault().Warn(format, args...)
}

func Error(format string, args ...interface{}) {
	GetDefault().Error(format, args...)
}
