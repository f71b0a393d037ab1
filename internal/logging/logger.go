package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"gopkg.in/natefinch/lumberjack.v2"
)

type SetupParams struct {
	// LogFileName enables rotated file logging. Empty means stderr only.
	LogFileName   string
	LogToStderr   bool
	LogLevel      string
	LogFormatJSON bool
}

// Setup configures the global logrus logger. Command output goes to stdout,
// so logs default to stderr to keep the two apart.
func Setup(params SetupParams) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	logrus.SetLevel(GetLevel(params.LogLevel))

	if params.LogFileName == "" {
		logrus.SetOutput(os.Stderr)
		return
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}

	rotating := &lumberjack.Logger{
		Filename:   params.LogFileName,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		Compress:   true,
	}

	if params.LogToStderr {
		logrus.SetOutput(combinedWriter{os.Stderr, rotating})
	} else {
		logrus.SetOutput(rotating)
	}
}

// GetLevel maps a level name to a logrus level. Unknown names fall back to warn.
func GetLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.WarnLevel
	}
}

// combinedWriter writes to every writer even if an earlier one fails.
type combinedWriter []io.Writer

func (cw combinedWriter) Write(p []byte) (int, error) {
	var err error
	for _, w := range cw {
		if _, werr := w.Write(p); werr != nil {
			err = multierr.Combine(err, werr)
		}
	}
	if err != nil {
		return 0, err
	}
	return len(p), nil
}
