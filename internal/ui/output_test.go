package ui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fuse-open/android-build-tools/internal/ui"
)

func TestWriter_Success(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := ui.NewWriterWithOutputs(&buf, &bytes.Buffer{}, true)

	w.Success("done")

	assert.Equal(t, "✓ done\n", buf.String())
}

func TestWriter_Warning(t *testing.T) {
	t.Parallel()

	var out, errBuf bytes.Buffer
	w := ui.NewWriterWithOutputs(&out, &errBuf, true)

	w.Warning("careful")

	assert.Empty(t, out.String())
	assert.Equal(t, "WARNING: careful\n", errBuf.String())
}

func TestWriter_Error(t *testing.T) {
	t.Parallel()

	var errBuf bytes.Buffer
	w := ui.NewWriterWithOutputs(&bytes.Buffer{}, &errBuf, true)

	w.Error("something broke")

	assert.Equal(t, "\nERROR: something broke\n", errBuf.String())
}

func TestWriter_Hint(t *testing.T) {
	t.Parallel()

	var errBuf bytes.Buffer
	w := ui.NewWriterWithOutputs(&bytes.Buffer{}, &errBuf, true)

	w.Hint("first\nsecond")

	assert.Equal(t, "\nfirst\nsecond\n", errBuf.String())
}

func TestWriter_Info(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := ui.NewWriterWithOutputs(&buf, &bytes.Buffer{}, true)

	w.Infof("installing %s", "ndk;21.4.7075529")

	assert.Equal(t, "installing ndk;21.4.7075529\n", buf.String())
}

func TestWriter_Section(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := ui.NewWriterWithOutputs(&buf, &bytes.Buffer{}, true)

	w.Section("~/.unoconfig", "A: 1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "--- ~/.unoconfig ---"))
	assert.Len(t, lines[0], 79)
	assert.Equal(t, "A: 1", lines[1])
	assert.Equal(t, strings.Repeat("-", 79), lines[2])
}

func TestWriter_Progress(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := ui.NewWriterWithOutputs(&buf, &bytes.Buffer{}, true)

	w.Progress(42, 2_000_000)
	w.Progress(100, 0)
	w.EndProgress()

	got := buf.String()
	assert.Contains(t, got, "\r42 % - 2.0 MB remaining")
	assert.Contains(t, got, "\r100 % - 0 B remaining")
	assert.True(t, strings.HasSuffix(got, "\n"))
}

func TestWriter_Bold(t *testing.T) {
	t.Parallel()

	plain := ui.NewWriterWithOutputs(&bytes.Buffer{}, &bytes.Buffer{}, true)
	assert.Equal(t, "text", plain.Bold("text"))

	colored := ui.NewWriterWithOutputs(&bytes.Buffer{}, &bytes.Buffer{}, false)
	assert.Contains(t, colored.Bold("text"), "\033[1m")
}

func TestWriter_ColorPrefix(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := ui.NewWriterWithOutputs(&buf, &bytes.Buffer{}, false)

	w.Success("ok")

	assert.Contains(t, buf.String(), "\033[32m")
}
