package zdbql

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/programWhiz/zdbql/internal/types"
)

// Doc is an insertion-ordered JSON object for count and raw JSON query
// documents. Key order survives into the encoded output, which matters
// when fragments are compared or cached as strings.
type Doc struct {
	keys   []string
	values map[string]any
}

// NewDoc creates an empty document.
func NewDoc() *Doc {
	return &Doc{values: make(map[string]any)}
}

// Set adds or replaces a key and returns the document for chaining. A
// replaced key keeps its original position.
func (d *Doc) Set(key string, value any) *Doc {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
	return d
}

// Len returns the number of keys in the document.
func (d *Doc) Len() int {
	return len(d.keys)
}

// encodeDocument renders a document value as JSON with a stable key
// order: Doc keys in insertion order, plain map keys sorted.
func encodeDocument(v any) (string, error) {
	var b strings.Builder
	if err := encodeJSONValue(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

func encodeJSONValue(b *strings.Builder, v any) error {
	switch val := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		if val {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case string:
		encodeJSONString(b, val)
	case int:
		b.WriteString(strconv.Itoa(val))
	case int32:
		b.WriteString(strconv.FormatInt(int64(val), 10))
	case int64:
		b.WriteString(strconv.FormatInt(val, 10))
	case uint:
		b.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint32:
		b.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint64:
		b.WriteString(strconv.FormatUint(val, 10))
	case float32:
		b.WriteString(strconv.FormatFloat(float64(val), 'g', -1, 32))
	case float64:
		b.WriteString(strconv.FormatFloat(val, 'g', -1, 64))
	case *Doc:
		return encodeJSONDoc(b, val)
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			encodeJSONString(b, k)
			b.WriteString(": ")
			if err := encodeJSONValue(b, val[k]); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	case []any:
		b.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := encodeJSONValue(b, elem); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	default:
		return types.InvalidShapeError{Reason: fmt.Sprintf("unsupported document value type %T", v)}
	}
	return nil
}

func encodeJSONDoc(b *strings.Builder, d *Doc) error {
	b.WriteByte('{')
	for i, key := range d.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		encodeJSONString(b, key)
		b.WriteString(": ")
		if err := encodeJSONValue(b, d.values[key]); err != nil {
			return err
		}
	}
	b.WriteByte('}')
	return nil
}

// encodeJSONString writes s as a JSON string with every non-ASCII rune
// escaped, so encoded documents stay byte-stable regardless of source
// encoding.
func encodeJSONString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			switch {
			case r >= 0x20 && r < 0x7f:
				b.WriteRune(r)
			case r > 0xffff:
				// Astral code points escape as a UTF-16 surrogate pair.
				hi, lo := utf16.EncodeRune(r)
				fmt.Fprintf(b, `\u%04x\u%04x`, hi, lo)
			default:
				fmt.Fprintf(b, `\u%04x`, r)
			}
		}
	}
	b.WriteByte('"')
}
