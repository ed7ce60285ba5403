package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/freightforge/supplychain-simdata-go/pkg/logger"
)

func Test_Bridge_ForwardsKeyValueArgsToZap(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	bridge := logger.NewBridge(zap.New(core))

	bridge.Info("document written", "dataset", "shipments", "record_count", 42)

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "document written", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, "shipments", fields["dataset"])
	assert.EqualValues(t, 42, fields["record_count"])
}

func Test_Bridge_MapsAllLevels(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	bridge := logger.NewBridge(zap.New(core))

	bridge.Debug("debug message")
	bridge.Info("info message")
	bridge.Warn("warn message")
	bridge.Error("error message")

	entries := observed.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func Test_NewBridge_NilLoggerIsSafe(t *testing.T) {
	bridge := logger.NewBridge(nil)

	assert.NotPanics(t, func() {
		bridge.Info("into the void")
	})
}

func Test_NewAtLevel_RejectsUnknownLevel(t *testing.T) {
	_, err := logger.NewAtLevel("chatty")
	assert.Error(t, err)

	log, err := logger.NewAtLevel("debug")
	require.NoError(t, err)
	assert.NotNil(t, log)
}
