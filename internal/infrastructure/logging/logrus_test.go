package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput("debug", &buf)
	require.Equal(t, logrus.DebugLevel, l.GetLevel())

	l.WithField("loan_id", "abc").Info("repayment allocated")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "repayment allocated", line["msg"])
	assert.Equal(t, "abc", line["loan_id"])
	assert.Equal(t, "info", line["level"])
}

func TestNewWithOutput_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput("chatty", &buf)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())

	l.Debug("hidden")
	assert.Zero(t, buf.Len())
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("dropped")
	assert.NotNil(t, l.Out)
}
