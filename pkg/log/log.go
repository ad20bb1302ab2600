// Package log provides the zerolog-based structured logger used by the
// neuroflow engine. Fit routines log convergence diagnostics at debug
// level; warnings raised through pkg/errors are routed here once
// InstallWarningSink has been called.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/PraneethV-cmd/neuroflow-ide/pkg/errors"
)

// Standard attribute keys. Using the same keys everywhere keeps the
// training logs filterable.
const (
	ModelKey      = "model"
	OperationKey  = "operation"
	SamplesKey    = "samples"
	FeaturesKey   = "features"
	IterationsKey = "iterations"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()
)

// New creates a logger writing to w at the given level. Unknown level
// strings fall back to info.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Default returns the package-wide logger.
func Default() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetDefault replaces the package-wide logger.
func SetDefault(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// Model returns a logger scoped to one model instance. The pointer
// return keeps level methods chainable at the call site.
func Model(name string) *zerolog.Logger {
	l := Default().With().Str(ModelKey, name).Logger()
	return &l
}

// InstallWarningSink routes engine warnings (ConvergenceWarning and
// friends) through the default logger as structured warn events.
func InstallWarningSink() {
	errors.SetZerologWarnFunc(func(warning error) {
		l := Default()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			l.Warn().Object("warning", obj).Msg(warning.Error())
			return
		}
		l.Warn().Err(warning).Msg("engine warning")
	})
}
