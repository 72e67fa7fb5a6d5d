package log

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	global = zap.NewNop()
)

// Init builds the process logger and installs it as the package default.
func Init(prod bool) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if prod {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	Set(l)
	return l, nil
}

func Set(l *zap.Logger) {
	mu.Lock()
	global = l
	mu.Unlock()
}

// L returns the logger installed by Init, or a no-op logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func Infof(format string, args ...any)  { L().Sugar().Infof(format, args...) }
func Errorf(format string, args ...any) { L().Sugar().Errorf(format, args...) }
