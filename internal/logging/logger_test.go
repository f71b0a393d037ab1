package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	for in, want := range map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"DEBUG":   logrus.DebugLevel,
		" info ":  logrus.InfoLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"trace":   logrus.TraceLevel,
		"":        logrus.WarnLevel,
		"loud":    logrus.WarnLevel,
	} {
		assert.Equal(t, want, GetLevel(in), in)
	}
}

func TestSetup_File(t *testing.T) {
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
	})

	base := filepath.Join(t.TempDir(), "formcoach")
	Setup(SetupParams{
		LogFileName:   base,
		LogLevel:      "info",
		LogFormatJSON: true,
	})
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())

	logrus.WithField("reps", 3).Info("session saved")
	logrus.Debug("not written")

	data, err := os.ReadFile(base + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"session saved"`)
	assert.Contains(t, string(data), `"reps":3`)
	assert.NotContains(t, string(data), "not written")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestCombinedWriter(t *testing.T) {
	var a, b bytes.Buffer
	n, err := combinedWriter{&a, failingWriter{}, &b}.Write([]byte("hello"))
	assert.EqualError(t, err, "disk full")
	assert.Zero(t, n)
	assert.Equal(t, "hello", a.String())
	assert.Equal(t, "hello", b.String())

	n, err = combinedWriter{&a}.Write([]byte("!"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
