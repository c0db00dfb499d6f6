package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "splits")
	w, err := New(dir)
	require.NoError(t, err)

	split, err := w.CreateSplit("train")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "train.jsonl"), split.Path)

	require.NoError(t, split.WriteLine([]byte(`{"a": 1}`)))
	require.NoError(t, split.WriteLine([]byte(`{"ä": 2}`)))
	require.Equal(t, 2, split.Lines)
	require.NoError(t, split.Close())
	require.NoError(t, split.Close())

	data, err := os.ReadFile(split.Path)
	require.NoError(t, err)
	require.Equal(t, "{\"a\": 1}\n{\"ä\": 2}\n", string(data))
}

func TestCreateSplitRejectsPathNames(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	for _, name := range []string{"", ".", "..", "a/b", `a\b`} {
		_, err := w.CreateSplit(name)
		require.Error(t, err, "split %q", name)
	}
	_, err = os.Stat(filepath.Join(dir, "a_b.jsonl"))
	require.True(t, os.IsNotExist(err))
}

func TestWriteLesson(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	path, err := w.WriteLesson("42", []byte("# Titel\n"), ".md")
	require.NoError(t, err)
	require.Equal(t, "lesson-42.md", filepath.Base(path))

	require.Equal(t, "_..", sanitize(".."))
	require.Equal(t, "a_b", sanitize("a/b"))
}
