package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func ids(m *Manifest) []string {
	out := make([]string, 0, len(m.Entries))
	for _, e := range m.Entries {
		out = append(out, e.ID)
	}
	return out
}

func TestParseKeepsOrder(t *testing.T) {
	m, err := Parse(strings.NewReader(`{"9": null, "10": "abc", "*": true, "2": "def", "10": "xyz"}`))
	require.NoError(t, err)
	require.True(t, m.Wildcard)
	require.Equal(t, []string{"9", "10", "2"}, ids(m))
	require.Nil(t, m.Entries[0].Hash)
	require.Equal(t, "xyz", *m.Entries[1].Hash)
	require.Equal(t, "def", *m.Entries[2].Hash)
}

func TestParseRejectsBadInput(t *testing.T) {
	for _, in := range []string{`[]`, `{"1": 5}`, `{"1": "a"`, ``} {
		_, err := Parse(strings.NewReader(in))
		require.Error(t, err, "input %q", in)
	}
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"lesson-77.json", "lesson-42.json", "lesson-100.json", "notes.txt", "lesson-x.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
	}

	m, err := Parse(strings.NewReader(`{"42": "deadbeef", "*": true}`))
	require.NoError(t, err)

	added, err := m.Expand(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"77", "100"}, added)
	require.Equal(t, []string{"42", "77", "100"}, ids(m))
	require.Equal(t, "deadbeef", *m.Entries[0].Hash)
	require.Nil(t, m.Entries[1].Hash)

	plain, err := Parse(strings.NewReader(`{"42": null}`))
	require.NoError(t, err)
	added, err = plain.Expand(dir)
	require.NoError(t, err)
	require.Empty(t, added)
	require.Equal(t, []string{"42"}, ids(plain))
}

func TestExpandMissingDir(t *testing.T) {
	m := &Manifest{Wildcard: true}
	_, err := m.Expand(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestEncodeRoundTrip(t *testing.T) {
	hash := "abc"
	m := &Manifest{Wildcard: true}
	m.Set("5", &hash)
	m.Set("3", nil)

	var buf bytes.Buffer
	require.NoError(t, m.Encode(&buf))
	require.Equal(t, "{\n  \"5\": \"abc\",\n  \"3\": null,\n  \"*\": true\n}\n", buf.String())

	back, err := Parse(&buf)
	require.NoError(t, err)
	require.Equal(t, m.Entries, back.Entries)
	require.True(t, back.Wildcard)

	path := filepath.Join(t.TempDir(), "hashes.json")
	require.NoError(t, (&Manifest{}).Save(path))
	empty, err := Load(path)
	require.NoError(t, err)
	require.Empty(t, empty.Entries)
}
