// Package logging provides categorized structured logging for the logos
// reasoning service. Each subsystem logs through its own named child
// logger so a single build's output can be filtered by category the same
// way the service's category-tagged log lines are meant to be grepped.
package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category identifies the subsystem emitting a log line.
type Category string

const (
	CategoryLexer       Category = "lexer"
	CategoryParser      Category = "parser"
	CategoryClausify    Category = "clausify"
	CategorySLD         Category = "sld"
	CategorySAT         Category = "sat"
	CategoryManager     Category = "manager"
	CategoryModelFinder Category = "modelfinder"
	CategorySession     Category = "session"
	CategoryOntology    Category = "ontology"
	CategoryConfig      Category = "config"
	CategoryServer      Category = "server"
)

// Logger is the root structured logger; Named children are cached per
// category so repeated calls don't re-allocate a *zap.Logger.
type Logger struct {
	root *zap.Logger
	mu   sync.Mutex
	kids map[Category]*zap.Logger
}

// New builds a Logger. debug enables debug-level output and console
// (human-readable) encoding; otherwise JSON production encoding is used.
func New(debug bool) (*Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	cfg.OutputPaths = []string{"stderr"}

	root, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{root: root, kids: map[Category]*zap.Logger{}}, nil
}

// NewNop returns a Logger that discards everything, for tests.
func NewNop() *Logger {
	return &Logger{root: zap.NewNop(), kids: map[Category]*zap.Logger{}}
}

// For returns the child logger for category, creating and caching it on
// first use.
func (l *Logger) For(cat Category) *zap.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	if z, ok := l.kids[cat]; ok {
		return z
	}
	z := l.root.Named(string(cat))
	l.kids[cat] = z
	return z
}

// Sync flushes the root and every cached child logger; errors writing to a
// closed stderr (common under test harnesses) are swallowed.
func (l *Logger) Sync() {
	_ = l.root.Sync()
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, z := range l.kids {
		_ = z.Sync()
	}
}

// fallback is used by package-level helpers before a Logger has been
// constructed (e.g. very early config loading).
var fallback = zap.New(zapcore.NewCore(
	zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
	zapcore.Lock(os.Stderr),
	zapcore.InfoLevel,
))

// Boot logs a boot-time message before a full Logger is available (config
// loading, flag parsing).
func Boot(msg string, fields ...zap.Field) {
	fallback.Named(string(CategoryConfig)).Info(msg, fields...)
}
