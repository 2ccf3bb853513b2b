// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🎯 FileOperation is the outcome of processing one file, for display
type FileOperation struct {
	Path           string   // File path
	Status         string   // inserted, unchanged, anchor not found, failed
	Added          int      // Number of inserted lines
	MissingAnchors []string // Anchors that matched no line
	Diff           string   // Unified diff, dry runs only
	DryRun         bool     // Whether the file was left untouched on purpose
	Err            error    // Failure cause
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	operations []FileOperation
}

// 🏭 New creates a new logger. Structured logs go to zlog, user facing lines to console.
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context. Without one, console output is
// discarded and structured logs go to the context's zerolog logger.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(contextKey{}).(*Logger); ok {
		return logger
	}
	return New(io.Discard, *zerolog.Ctx(ctx))
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

func plural(n int) string {
	if n == 1 {
		return "line"
	}
	return "lines"
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) []string {
	var out []string

	switch op.Status {
	case "failed":
		return []string{fmt.Sprintf("%s %s: %v", color.RedString("❌"), op.Path, op.Err)}
	case "inserted":
		verb := "added"
		if op.DryRun {
			verb = "would add"
		}
		out = append(out, fmt.Sprintf("%s %s %d %s to %s",
			color.GreenString("✅"), verb, op.Added, plural(op.Added), color.New(color.Bold).Sprint(op.Path)))
	case "unchanged":
		out = append(out, fmt.Sprintf("%s %s already up to date",
			color.CyanString("•"), op.Path))
	}

	for _, anchor := range op.MissingAnchors {
		out = append(out, fmt.Sprintf("%s anchor %s not found in %s",
			color.YellowString("⚠️ "), strconv.Quote(anchor), op.Path))
	}

	return out
}

// 📝 LogFileOperation prints a file operation and records it for the summary
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	for _, line := range l.formatFileOperation(op) {
		fmt.Fprintln(l.console, line)
	}
	if op.Diff != "" {
		fmt.Fprint(l.console, op.Diff)
		if !strings.HasSuffix(op.Diff, "\n") {
			fmt.Fprintln(l.console)
		}
	}

	evt := l.zlog.Debug()
	if op.Err != nil {
		evt = l.zlog.Error().Err(op.Err)
	}
	evt.
		Str("file", op.Path).
		Str("status", op.Status).
		Int("added", op.Added).
		Strs("missing_anchors", op.MissingAnchors).
		Bool("dry_run", op.DryRun).
		Msg("file operation")
}

// Operations returns the file operations logged so far
func (l *Logger) Operations() []FileOperation {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]FileOperation(nil), l.operations...)
}

// 📊 Summary prints a table of every logged file operation
func (l *Logger) Summary() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data := pterm.TableData{{"File", "Status", "Added"}}
	for _, op := range l.operations {
		data = append(data, []string{op.Path, op.Status, strconv.Itoa(op.Added)})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}

	fmt.Fprintf(l.console, "\n%s\n", table)
	return nil
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("ensurelines")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
