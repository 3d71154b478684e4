package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTracerProvider(t *testing.T) {
	t.Parallel()

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()
		tp, stop, err := newTracerProvider("", nil)
		require.NoError(t, err)
		require.NotNil(t, tp)
		require.NoError(t, stop(context.Background()))
	})

	t.Run("stdout", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		tp, stop, err := newTracerProvider("STDOUT", &buf)
		require.NoError(t, err)

		_, span := tp.Tracer("test").Start(context.Background(), "GET /entries")
		span.End()

		require.NoError(t, stop(context.Background()))
		assert.Contains(t, buf.String(), `"Name": "GET /entries"`)
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()
		_, _, err := newTracerProvider("jaeger", nil)
		require.ErrorIs(t, err, errUnknownTracing)
	})
}
