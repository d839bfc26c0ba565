// Package unoconfig reads and updates .unoconfig, the per-user key/value
// file the Uno build tool reads its SDK locations from.
//
// The file is line oriented. Lines of the form "key: value" are entries;
// everything else (comments, require directives, unrelated settings) is kept
// as-is. Key names and the three value quoting styles are read by Uno, so
// they must not change.
package unoconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// FileName is the name of the config file in the user's home directory.
const FileName = ".unoconfig"

// Keys written by the installer.
const (
	KeySDKDir = "Android.SDK.Directory"
	KeyNDKDir = "Android.NDK.Directory"
	KeyJDKDir = "Java.JDK.Directory"
)

var lineBreakRe = regexp.MustCompile(`\r?\n`)

// Entry is one key/value pair to store. An empty Value deletes the key.
type Entry struct {
	Key   string
	Value string
}

// ParseEntry parses a "key: value" argument. The key ends at the first
// colon and surrounding whitespace is trimmed from the value.
func ParseEntry(arg string) (Entry, error) {
	key, value, ok := strings.Cut(arg, ":")
	if !ok {
		return Entry{}, fmt.Errorf("invalid entry %q, expected KEY:VALUE", arg)
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return Entry{}, fmt.Errorf("invalid entry %q, key is empty", arg)
	}

	return Entry{Key: key, Value: strings.TrimSpace(value)}, nil
}

// DefaultPath returns the location of .unoconfig below home.
func DefaultPath(home string) string {
	return filepath.Join(home, FileName)
}

// Document is the ordered line content of a config file.
type Document struct {
	lines []string
}

// Parse splits data into lines, accepting both \n and \r\n line endings.
// Leading and trailing blank space of the whole file is dropped so that
// repeated rewrites do not accumulate empty lines.
func Parse(data []byte) *Document {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return &Document{}
	}

	return &Document{lines: lineBreakRe.Split(text, -1)}
}

// Lines returns a copy of the document lines.
func (d *Document) Lines() []string {
	return append([]string(nil), d.lines...)
}

// Set removes every line for e.Key and, when e.Value is not empty, appends a
// fresh "key: value" line at the end.
func (d *Document) Set(e Entry) {
	prefix := e.Key + ":"
	kept := d.lines[:0]

	for _, line := range d.lines {
		if !strings.HasPrefix(line, prefix) {
			kept = append(kept, line)
		}
	}

	d.lines = kept

	if e.Value != "" {
		d.lines = append(d.lines, e.Key+": "+FormatValue(e.Value))
	}
}

// Lookup returns the decoded value of the last line for key.
func (d *Document) Lookup(key string) (string, bool) {
	prefix := key + ":"

	for i := len(d.lines) - 1; i >= 0; i-- {
		if strings.HasPrefix(d.lines[i], prefix) {
			return UnquoteValue(strings.TrimPrefix(d.lines[i], prefix)), true
		}
	}

	return "", false
}

// Bytes joins the lines with eol, trims surrounding whitespace and ends the
// result with exactly one eol.
func (d *Document) Bytes(eol string) []byte {
	return []byte(strings.TrimSpace(strings.Join(d.lines, eol)) + eol)
}

// FormatValue quotes a value the way Uno expects: back-ticks when it holds a
// backslash, double quotes when it holds a space or colon, bare otherwise.
func FormatValue(value string) string {
	switch {
	case strings.Contains(value, `\`):
		return "`" + value + "`"
	case strings.ContainsAny(value, " :"):
		return `"` + value + `"`
	default:
		return value
	}
}

// UnquoteValue reverses FormatValue. Quotes are only stripped when the text
// inside them holds a character FormatValue would have quoted for, so bare
// values that happen to start and end with a quote survive.
func UnquoteValue(raw string) string {
	v := strings.TrimSpace(raw)
	if len(v) < 2 {
		return v
	}

	inner := v[1 : len(v)-1]

	switch {
	case v[0] == '`' && v[len(v)-1] == '`' && strings.Contains(inner, `\`):
		return inner
	case v[0] == '"' && v[len(v)-1] == '"' && strings.ContainsAny(inner, " :"):
		return inner
	default:
		return v
	}
}

// Load reads the document at path. A missing file yields an empty document.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Document{}, nil
		}

		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return Parse(data), nil
}

// Sync applies entries to the file at path, in order, and rewrites it using
// eol as line separator. Running Sync twice with the same entries leaves the
// file unchanged the second time.
func Sync(path string, entries []Entry, eol string) error {
	doc, err := Load(path)
	if err != nil {
		return err
	}

	for _, e := range entries {
		doc.Set(e)
	}

	if err := os.WriteFile(path, doc.Bytes(eol), 0o644); err != nil { //nolint:gosec // user config, not secret
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

// Read returns the file content with surrounding whitespace trimmed.
func Read(path string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	return strings.TrimSpace(string(data)), nil
}
