package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/livebud/layoutc/internal/logger"
	"github.com/matryer/is"
	"go.uber.org/zap/zapcore"
)

func TestConsole(t *testing.T) {
	is := is.New(t)
	buf := new(bytes.Buffer)
	log := logger.Console(buf, zapcore.WarnLevel)
	log.Infow("hidden")
	log.Warnw("missing attribute", "kind", "MissingAttribute")
	out := buf.String()
	is.True(!strings.Contains(out, "hidden"))
	is.True(strings.Contains(out, "missing attribute"))
	is.True(strings.Contains(out, "MissingAttribute"))
}

func TestInvalidLevel(t *testing.T) {
	is := is.New(t)
	_, err := logger.New(false, "loud")
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), `invalid level "loud"`))
}
