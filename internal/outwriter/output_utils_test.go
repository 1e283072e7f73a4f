package outwriter

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/gitbloat/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		expected string
	}{
		{
			name:     "object",
			data:     map[string]any{"hash": "h1", "size_bytes": 42},
			expected: "{\n  \"hash\": \"h1\",\n  \"size_bytes\": 42\n}\n",
		},
		{
			name:     "array",
			data:     []string{"a", "b"},
			expected: "[\n  \"a\",\n  \"b\"\n]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeJSON(&buf, tt.data))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriteJSONError(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSON(&buf, make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode JSON")
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"hash", "path"}, func(w *csv.Writer) error {
		return w.Write([]string{"h1", "docs/a, b.txt"})
	})
	require.NoError(t, err)
	assert.Equal(t, "hash,path\nh1,\"docs/a, b.txt\"\n", buf.String())
}

func TestWriteCSVWithHeaderError(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"col"}, func(*csv.Writer) error {
		return assert.AnError
	})
	assert.Equal(t, assert.AnError, err)
}

func TestWriteWithFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "out.txt")

	err := writeWithFile(tmpFile, func(w io.Writer) error {
		_, err := w.Write([]byte("content"))
		return err
	}, "Wrote text")
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "content", string(content))
}

func TestWriteWithFileErrors(t *testing.T) {
	err := writeWithFile(filepath.Join(t.TempDir(), "out.txt"), func(io.Writer) error {
		return assert.AnError
	}, "Wrote text")
	assert.Equal(t, assert.AnError, err)

	err = writeWithFile("/nonexistent/path/file.txt", func(io.Writer) error { return nil }, "Wrote text")
	assert.Error(t, err)
}

func TestGetMaxTablePathWidth(t *testing.T) {
	tests := []struct {
		width    int
		expected int
	}{
		{40, minPathWidth},
		{80, 20},
		{100, 40},
		{200, maxPathWidth},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, getMaxTablePathWidth(&contract.Config{Width: tt.width}), "width %d", tt.width)
	}
}
