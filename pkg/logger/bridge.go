package logger

import (
	"go.uber.org/zap"

	"github.com/freightforge/supplychain-simdata-go/simdata"
)

// Interface implementation check.
var _ simdata.Logger = (*Bridge)(nil)

// Bridge adapts a zap logger to the key-value Logger interface the
// library packages expect. The alternating key-value args map directly
// onto zap's sugared logging methods.
type Bridge struct {
	sugar *zap.SugaredLogger
}

// NewBridge wraps a zap logger. A nil logger yields a no-op bridge.
func NewBridge(base *zap.Logger) *Bridge {
	if base == nil {
		base = zap.NewNop()
	}

	return &Bridge{sugar: base.Sugar()}
}

// Debug logs at debug level.
func (b *Bridge) Debug(msg string, args ...any) {
	b.sugar.Debugw(msg, args...)
}

// Info logs at info level.
func (b *Bridge) Info(msg string, args ...any) {
	b.sugar.Infow(msg, args...)
}

// Warn logs at warn level.
func (b *Bridge) Warn(msg string, args ...any) {
	b.sugar.Warnw(msg, args...)
}

// Error logs at error level.
func (b *Bridge) Error(msg string, args ...any) {
	b.sugar.Errorw(msg, args...)
}
