package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	data := BuildTestPDF("Transformer encoder layout", "Batch size 256 on 8 GPUs")

	text, err := ExtractText(data)
	require.NoError(t, err)

	assert.Contains(t, text, "Transformer encoder layout")
	assert.Contains(t, text, "Batch size 256 on 8 GPUs")
	first := strings.Index(text, "Transformer")
	second := strings.Index(text, "Batch")
	assert.Less(t, first, second, "pages keep their order")
}

func TestExtractText_NotPDF(t *testing.T) {
	_, err := ExtractText([]byte("<html>not a pdf</html>"))
	assert.ErrorIs(t, err, ErrNotPDF)
}

func TestExtractText_Corrupt(t *testing.T) {
	_, err := ExtractText([]byte("%PDF-1.4\nthis is not really a pdf"))
	assert.ErrorIs(t, err, ErrInvalidPDF)
}

func TestExtractText_NoText(t *testing.T) {
	_, err := ExtractText(BuildTestPDF("   "))
	assert.ErrorIs(t, err, ErrNoText)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("text file", func(t *testing.T) {
		path := filepath.Join(dir, "notes.md")
		require.NoError(t, os.WriteFile(path, []byte("# Notes\nsome technical text"), 0644))

		text, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# Notes\nsome technical text", text)
	})

	t.Run("pdf file", func(t *testing.T) {
		path := filepath.Join(dir, "paper.PDF")
		require.NoError(t, os.WriteFile(path, BuildTestPDF("Kernel fusion results"), 0644))

		text, err := LoadFile(path)
		require.NoError(t, err)
		assert.Contains(t, text, "Kernel fusion results")
	})

	t.Run("empty text file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.txt")
		require.NoError(t, os.WriteFile(path, []byte("\n  \n"), 0644))

		_, err := LoadFile(path)
		assert.ErrorIs(t, err, ErrNoText)
	})

	t.Run("binary file", func(t *testing.T) {
		path := filepath.Join(dir, "blob.bin")
		require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x81}, 0644))

		_, err := LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "nope.txt"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
