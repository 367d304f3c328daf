package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newBufferLogger(level zerolog.Level) (*bytes.Buffer, *zerolog.Logger) {
	buf := &bytes.Buffer{}
	zl := zerolog.New(buf).Level(level)
	return buf, &zl
}

func TestInfoWritesKeyValues(t *testing.T) {
	buf, zl := newBufferLogger(zerolog.InfoLevel)
	log := NewWithOptions(Options{Name: "codec", Logger: zl})

	log.Info("built video codec", "codec", "VP8", "streams", 2)

	out := buf.String()
	assert.Contains(t, out, `"message":"built video codec"`)
	assert.Contains(t, out, `"name":"codec"`)
	assert.Contains(t, out, `"codec":"VP8"`)
	assert.Contains(t, out, `"streams":2`)
}

func TestVerbosityIsFiltered(t *testing.T) {
	buf, zl := newBufferLogger(zerolog.InfoLevel)
	log := NewWithOptions(Options{Logger: zl})

	log.V(debugVerbosity).Info("debug detail")
	assert.Empty(t, buf.String())

	log.Info("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestWithNameAndValues(t *testing.T) {
	buf, zl := newBufferLogger(zerolog.InfoLevel)
	log := NewWithOptions(Options{Name: "codec", Logger: zl})

	log.WithName("svc").WithValues("layers", 3).Info("derived")

	out := buf.String()
	assert.Contains(t, out, `"name":"codec/svc"`)
	assert.Contains(t, out, `"layers":3`)
}

func TestErrorAlwaysWrites(t *testing.T) {
	buf, zl := newBufferLogger(zerolog.InfoLevel)
	log := NewWithOptions(Options{Logger: zl})

	log.Error(nil, "setup failed", "codec", "Multiplex")
	assert.Contains(t, buf.String(), `"setup failed"`)
}
