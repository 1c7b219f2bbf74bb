package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_RecordsEntries(t *testing.T) {
	mock := NewMockLogger()

	mock.Info("loaded", Field{Key: FieldCount, Value: 3})
	mock.Warn("slow load")

	require.Len(t, mock.Entries, 2)
	assert.True(t, mock.HasEntry("INFO", "loaded"))
	assert.True(t, mock.HasEntry("WARN", "slow load"))
	assert.False(t, mock.HasEntry("ERROR", "loaded"))
	assert.Equal(t, FieldCount, mock.Entries[0].Fields[0].Key)
}

func TestLogrusAdapter_Interface(t *testing.T) {
	var logger Logger = NewLogrusAdapter("debug", "json")

	// Chained loggers must still satisfy the interface and not panic.
	logger.WithField(FieldCategory, "Coffee").
		WithFields(Field{Key: FieldConfidence, Value: "high"}).
		Debug("classified")
	logger.WithError(assert.AnError).Warn("oracle failed")
}

func TestNewLogrusAdapterFromLogger(t *testing.T) {
	underlying := logrus.New()
	underlying.SetLevel(logrus.DebugLevel)

	var logger Logger = NewLogrusAdapterFromLogger(underlying)
	logger.WithField(FieldCount, 2).Debug("loaded")

	// nil falls back to a fresh logrus instance rather than panicking.
	logger = NewLogrusAdapterFromLogger(nil)
	logger.Info("ready")
}

func TestSetLogger(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	mock := NewMockLogger()
	SetLogger(mock)
	assert.Same(t, Logger(mock), GetLogger())

	// nil is ignored
	SetLogger(nil)
	assert.Same(t, Logger(mock), GetLogger())
}
