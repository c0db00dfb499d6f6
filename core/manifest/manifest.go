// Package manifest reads and writes hash files: JSON objects mapping lesson
// IDs to the expected content hash, or null when the hash is not known yet.
// The key "*" additionally selects every lesson file found on disk.
//
// Entry order is significant. Splits are written in manifest order, so the
// decoder walks the object token by token instead of decoding into a map.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
)

// Wildcard is the key that selects all lessons on disk.
const Wildcard = "*"

var lessonFile = regexp.MustCompile(`^lesson-(\d+)\.json$`)

// Entry is one lesson of a manifest. Hash is nil when unknown.
type Entry struct {
	ID   string
	Hash *string
}

type Manifest struct {
	Entries  []Entry
	Wildcard bool

	index map[string]int
}

// Load reads the manifest at path.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a manifest from r, keeping key order. A repeated key keeps
// its first position and its last value.
func Parse(r io.Reader) (*Manifest, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("manifest must be a JSON object")
	}

	m := &Manifest{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("value of %q: %w", key, err)
		}

		if key == Wildcard {
			m.Wildcard = true
			continue
		}

		var hash *string
		if err := json.Unmarshal(value, &hash); err != nil {
			return nil, fmt.Errorf("hash of lesson %q must be a string or null", key)
		}
		m.Set(key, hash)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return m, nil
}

// Set records hash for id, appending id if it is new.
func (m *Manifest) Set(id string, hash *string) {
	m.ensureIndex()
	if i, ok := m.index[id]; ok {
		m.Entries[i].Hash = hash
		return
	}
	m.index[id] = len(m.Entries)
	m.Entries = append(m.Entries, Entry{ID: id, Hash: hash})
}

// Has reports whether id is listed.
func (m *Manifest) Has(id string) bool {
	m.ensureIndex()
	_, ok := m.index[id]
	return ok
}

func (m *Manifest) ensureIndex() {
	if m.index != nil {
		return
	}
	m.index = make(map[string]int, len(m.Entries))
	for i, e := range m.Entries {
		m.index[e.ID] = i
	}
}

// Expand resolves the wildcard: lessons found in rawDir that are not listed
// yet are appended in ascending ID order with an unknown hash. It returns
// the IDs it added. Without a wildcard it does nothing.
func (m *Manifest) Expand(rawDir string) ([]string, error) {
	if !m.Wildcard {
		return nil, nil
	}

	ids, err := Discover(rawDir)
	if err != nil {
		return nil, err
	}

	var added []string
	for _, id := range ids {
		if m.Has(id) {
			continue
		}
		m.Set(id, nil)
		added = append(added, id)
	}
	return added, nil
}

// Discover lists the lesson IDs of the lesson-<id>.json files in dir, in
// ascending numeric order.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning raw directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if match := lessonFile.FindStringSubmatch(entry.Name()); match != nil {
			ids = append(ids, match[1])
		}
	}

	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.ParseUint(ids[i], 10, 64)
		b, errB := strconv.ParseUint(ids[j], 10, 64)
		if errA != nil || errB != nil || a == b {
			return ids[i] < ids[j]
		}
		return a < b
	})
	return ids, nil
}

// Encode writes m as an indented JSON object in entry order. The wildcard
// key comes last when set.
func (m *Manifest) Encode(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString("{")
	n := 0
	writeKey := func(key string) {
		if n > 0 {
			buf.WriteString(",")
		}
		n++
		k, _ := json.Marshal(key)
		buf.WriteString("\n  ")
		buf.Write(k)
		buf.WriteString(": ")
	}

	for _, e := range m.Entries {
		writeKey(e.ID)
		v, err := json.Marshal(e.Hash)
		if err != nil {
			return err
		}
		buf.Write(v)
	}
	if m.Wildcard {
		writeKey(Wildcard)
		buf.WriteString("true")
	}
	if n > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// Save writes m to path.
func (m *Manifest) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating manifest: %w", err)
	}
	if err := m.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("writing manifest: %w", err)
	}
	return f.Close()
}
