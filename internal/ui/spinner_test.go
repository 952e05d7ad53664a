package ui

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSpinner_DisabledForNonTerminalWriters(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		name   string
		writer io.Writer
	}{
		{"buffer", &buf},
		{"discard", io.Discard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := NewSpinner("working...", tt.writer)

			assert.False(t, sp.enabled)
			assert.NotPanics(t, func() {
				sp.Start()
				sp.UpdateMessage("still working...")
				sp.Stop()
			})
		})
	}

	assert.Empty(t, buf.String(), "a disabled spinner must not write to the target")
}

func TestNewSpinner_NilWriterDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		sp := NewSpinner("working...", nil)
		sp.Start()
		sp.Stop()
	})
}
