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
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent document entries
	nameWidth    = 35 // Base width for document path
	sourceWidth  = 10 // Width for document source
	statusWidth  = 15 // Width for status text
	countWidth   = 4  // Width for replacement count
	summaryTitle = "segrep"
)

// 🎯 DocumentOperation represents one haystack document run through a pipeline
type DocumentOperation struct {
	Path         string // Document path
	Source       string // Where the document came from (local/remote)
	Status       string // Operation status
	Replacements int    // Number of replacements made
	Rules        int    // Number of rules that applied to the document
	IsModified   bool   // Whether the rendered text differs from the original
	IsWritten    bool   // Whether the document was written back
	IsSkipped    bool   // Whether no rule applied to the document
	Err          error  // Error that stopped the document
}

// 📦 RunOperation represents one apply run for logging
type RunOperation struct {
	Config string // Rules file path
	Engine string // Pattern engine name
	Rules  int    // Number of rules loaded
	Remote string // Remote repository, empty for local runs
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentRun *RunOperation
	documents  []DocumentOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return NewWithZerolog(console, zlog)
}

// 🏭 NewWithZerolog creates a new logger around an existing zerolog logger
func NewWithZerolog(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatDocumentOperation formats a document operation for display
func (l *Logger) formatDocumentOperation(op DocumentOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.Err != nil:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.IsWritten:
		symbol = '✓'
		symbolColor = color.FgGreen
	case op.IsModified:
		symbol = '⟳'
		symbolColor = color.FgBlue
	case op.IsSkipped:
		symbol = '-'
		symbolColor = color.FgYellow
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	var sourceColor color.Attribute
	switch op.Source {
	case "remote":
		sourceColor = color.FgMagenta
	default:
		sourceColor = color.FgYellow
	}

	return fmt.Sprintf("%s%s %s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(sourceColor).Sprint(fmt.Sprintf("%-*s", sourceWidth, op.Source)),
		fmt.Sprintf("%-*s", statusWidth, op.Status),
		color.New(color.Faint).Sprint(fmt.Sprintf("%*d", countWidth, op.Replacements)))
}

// 📝 LogDocumentOperation logs a document operation
func (l *Logger) LogDocumentOperation(ctx context.Context, op DocumentOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.documents = append(l.documents, op)

	fmt.Fprintln(l.console, l.formatDocumentOperation(op))

	ev := l.zlog.Info()
	if op.Err != nil {
		ev = l.zlog.Error().Err(op.Err)
	}
	ev.Str("document", op.Path).
		Str("source", op.Source).
		Str("status", op.Status).
		Int("replacements", op.Replacements).
		Int("rules", op.Rules).
		Bool("is_modified", op.IsModified).
		Bool("is_written", op.IsWritten).
		Bool("is_skipped", op.IsSkipped).
		Msg("document operation")
}

// 📝 StartRunOperation starts a new apply run
func (l *Logger) StartRunOperation(ctx context.Context, op RunOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentRun = &op
	l.documents = nil

	fmt.Fprintf(l.console, "[applying %s]\n",
		color.New(color.FgCyan).Sprint(op.Config))

	target := "local files"
	if op.Remote != "" {
		target = op.Remote
	}
	fmt.Fprintf(l.console, "%s %s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(target),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(op.Engine),
		color.New(color.Faint).Sprintf("(%d rules)", op.Rules))

	l.zlog.Info().
		Str("config", op.Config).
		Str("engine", op.Engine).
		Int("rules", op.Rules).
		Str("remote", op.Remote).
		Msg("starting apply run")
}

// 📝 EndRunOperation ends the current run and returns the documents it logged
func (l *Logger) EndRunOperation(ctx context.Context) []DocumentOperation {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentRun == nil {
		return nil
	}

	docs := l.documents
	total := 0
	for _, d := range docs {
		total += d.Replacements
	}

	l.zlog.Info().
		Str("config", l.currentRun.Config).
		Int("documents", len(docs)).
		Int("replacements", total).
		Msg("apply run complete")

	l.currentRun = nil
	l.documents = nil
	return docs
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	title := color.New(color.Bold, color.FgCyan).Sprint(summaryTitle)
	fmt.Fprintf(l.console, "\n%s %s\n\n", title, color.New(color.Faint).Sprint("• "+msg))
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

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
