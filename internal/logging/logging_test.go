package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestPrintfWritesFormattedMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	logger.Printf("loaded %d triangles from %s", 42, "mesh.obj")

	out := buf.String()
	if !strings.Contains(out, "loaded 42 triangles from mesh.obj") {
		t.Errorf("output %q does not contain the formatted message", out)
	}
}

func TestErrorWritesErrorMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	logger.Error(errors.New("missing file"), "failed to load scene")

	out := buf.String()
	if !strings.Contains(out, "missing file") || !strings.Contains(out, "failed to load scene") {
		t.Errorf("output %q does not contain both the error and the message", out)
	}
}
