package pds

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// SetLogger sets the logger used for validation reports and dispatch misses.
// A nil logger disables logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}

	logger.Store(l.Named("pds"))
}

// Logger returns the package logger.
func Logger() *zap.Logger {
	return logger.Load()
}
