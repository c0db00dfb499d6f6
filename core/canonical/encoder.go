package canonical

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
	"unicode/utf8"
)

// Field is one key/value pair of an Object.
type Field struct {
	Key   string
	Value any
}

// Object is a JSON object that keeps its key order.
type Object []Field

// Without returns a copy of o without key.
func (o Object) Without(key string) Object {
	out := make(Object, 0, len(o))
	for _, f := range o {
		if f.Key != key {
			out = append(out, f)
		}
	}
	return out
}

// Encoder writes JSON in the layout of Python's json.dumps with
// ensure_ascii disabled: ", " and ": " separators and non-ASCII text kept
// literally. Published hashes were computed over exactly these bytes.
type Encoder struct {
	// SortKeys orders object keys by code point.
	SortKeys bool
}

// Marshal encodes v. Supported values are nil, bool, string, the integer
// types, float64, time.Time, time.Duration, Object, map[string]any and []any.
func (e Encoder) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e Encoder) encode(buf *bytes.Buffer, v any) error {
	switch v := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if v {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case string:
		writeString(buf, v)
	case *string:
		if v == nil {
			buf.WriteString("null")
		} else {
			writeString(buf, *v)
		}
	case int:
		buf.WriteString(strconv.Itoa(v))
	case int64:
		buf.WriteString(strconv.FormatInt(v, 10))
	case float64:
		return writeFloat(buf, v)
	case time.Time:
		writeString(buf, isoformat(v))
	case time.Duration:
		writeString(buf, timedelta(v))
	case Object:
		return e.encodeObject(buf, v)
	case map[string]any:
		obj := make(Object, 0, len(v))
		for k, val := range v {
			obj = append(obj, Field{Key: k, Value: val})
		}
		sort.Slice(obj, func(i, j int) bool { return obj[i].Key < obj[j].Key })
		return e.encodeObject(buf, obj)
	case []any:
		buf.WriteByte('[')
		for i, elem := range v {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := e.encode(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return fmt.Errorf("canonical: unsupported type %T", v)
	}
	return nil
}

func (e Encoder) encodeObject(buf *bytes.Buffer, obj Object) error {
	if e.SortKeys {
		sorted := make(Object, len(obj))
		copy(sorted, obj)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
		obj = sorted
	}

	buf.WriteByte('{')
	for i, f := range obj {
		if i > 0 {
			buf.WriteString(", ")
		}
		writeString(buf, f.Key)
		buf.WriteString(": ")
		if err := e.encode(buf, f.Value); err != nil {
			return fmt.Errorf("key %q: %w", f.Key, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

const hexDigits = "0123456789abcdef"

// writeString escapes only quotes, backslashes and control characters.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			buf.WriteRune(r)
			i += size
			continue
		}
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			if c < 0x20 {
				buf.WriteString(`\u00`)
				buf.WriteByte(hexDigits[c>>4])
				buf.WriteByte(hexDigits[c&0xf])
			} else {
				buf.WriteByte(c)
			}
		}
		i++
	}
	buf.WriteByte('"')
}

// writeFloat follows Python's repr: integral values keep a ".0" suffix.
func writeFloat(buf *bytes.Buffer, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("canonical: unsupported float %v", f)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if f == math.Trunc(f) && math.Abs(f) < 1e16 {
		s = strconv.FormatFloat(f, 'f', 1, 64)
	}
	buf.WriteString(s)
	return nil
}

// isoformat renders t like Python's datetime.isoformat: microseconds only
// when non-zero, and no offset for UTC values decoded from naive timestamps.
func isoformat(t time.Time) string {
	layout := "2006-01-02T15:04:05"
	if t.Nanosecond()/1000 != 0 {
		layout += ".000000"
	}
	if t.Location() != time.UTC {
		layout += "-07:00"
	}
	return t.Format(layout)
}

// timedelta renders a non-negative d like Python's str(timedelta), e.g.
// "0:03:25" or "1 day, 2:00:00".
func timedelta(d time.Duration) string {
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	micros := (d - seconds*time.Second) / time.Microsecond

	s := fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	if micros != 0 {
		s += fmt.Sprintf(".%06d", micros)
	}
	switch {
	case days == 1:
		s = "1 day, " + s
	case days > 1:
		s = fmt.Sprintf("%d days, %s", days, s)
	}
	return s
}
