package grid

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

// SetLogger routes the package's debug output to l. The package is silent
// until it is called.
func SetLogger(l *zap.Logger) {
	logger.Store(l.Named("grid"))
}

func log() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}
