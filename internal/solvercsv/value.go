package solvercsv

import (
	"encoding/json"
	"log"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind discriminates the decoded form of an embedded field value.
type Kind int

const (
	KindScalar Kind = iota
	KindMapping
	KindSequence
	KindInvalid
)

// Value is the discriminated result of decoding one embedded field.
// Exactly one of Scalar, Mapping, or Sequence is meaningful for the
// corresponding Kind; KindInvalid records a lenient fallback that has
// already been logged.
type Value struct {
	Kind     Kind
	Scalar   float64
	Mapping  map[string]float64
	Sequence []string
}

// DecodeScalar parses a raw field as a floating-point number.
// Failure yields NaN, which is propagated rather than treated as fatal.
func DecodeScalar(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// DecodeMapping parses a raw field as a mapping from entity id to score.
// The field arrives quote-wrapped with doubled inner quotes, e.g.
// `"{""5"":0.2,""9"":0.8}"`. Any decode failure degrades to an empty
// mapping with a logged warning: one malformed metric must not blank the
// whole insights view.
func DecodeMapping(raw string) map[string]float64 {
	inner, ok := unquoteStructural(raw, '{', '}')
	if !ok {
		if strings.TrimSpace(raw) != "" {
			log.Printf("warning: field is not a mapping literal: %q", raw)
		}
		return map[string]float64{}
	}

	var m map[string]float64
	if err := json.Unmarshal([]byte(inner), &m); err != nil {
		log.Printf("warning: failed to decode mapping %q: %v", raw, err)
		return map[string]float64{}
	}
	return m
}

// DecodeSequence parses a raw field as a sequence of entity ids.
// Numeric elements are normalized to their decimal string form so callers
// can resolve them against name indexes uniformly. Failures degrade to an
// empty sequence with a logged warning.
func DecodeSequence(raw string) []string {
	inner, ok := unquoteStructural(raw, '[', ']')
	if !ok {
		if strings.TrimSpace(raw) != "" {
			log.Printf("warning: field is not a sequence literal: %q", raw)
		}
		return []string{}
	}

	var elems []any
	if err := json.Unmarshal([]byte(inner), &elems); err != nil {
		log.Printf("warning: failed to decode sequence %q: %v", raw, err)
		return []string{}
	}

	out := make([]string, 0, len(elems))
	for _, e := range elems {
		switch v := e.(type) {
		case string:
			out = append(out, v)
		case float64:
			out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
		default:
			log.Printf("warning: unexpected sequence element %v in %q", e, raw)
		}
	}
	return out
}

// DecodeValue decodes a raw field into the given expected kind.
// It is the single entry point behind the per-kind helpers, so mapping and
// sequence fields share one unquoting contract.
func DecodeValue(raw string, kind Kind) Value {
	switch kind {
	case KindScalar:
		return Value{Kind: KindScalar, Scalar: DecodeScalar(raw)}
	case KindMapping:
		return Value{Kind: KindMapping, Mapping: DecodeMapping(raw)}
	case KindSequence:
		return Value{Kind: KindSequence, Sequence: DecodeSequence(raw)}
	default:
		return Value{Kind: KindInvalid}
	}
}

// unquoteStructural strips one layer of outer quoting and unescapes doubled
// inner quotes, returning the bare JSON literal. It accepts both the quoted
// form the exporter writes and an already-bare literal. The same rules
// apply to mappings and sequences; only the expected delimiters differ.
func unquoteStructural(raw string, opener, closer byte) (string, bool) {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
		s = strings.ReplaceAll(s, `""`, `"`)
	}
	if len(s) < 2 || s[0] != opener || s[len(s)-1] != closer {
		return "", false
	}
	return s, true
}

// EncodeMapping renders a mapping back into the exporter's quoted field
// form with doubled inner quotes. Keys are emitted in sorted order so the
// output is deterministic; round-tripping preserves key/value equality,
// not byte order.
func EncodeMapping(m map[string]float64) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, _ := json.Marshal(k)
		b.Write(kb)
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(m[k], 'f', -1, 64))
	}
	b.WriteByte('}')

	return quoteStructural(b.String())
}

// EncodeSequence renders a sequence back into the exporter's quoted field form.
func EncodeSequence(elems []string) string {
	data, _ := json.Marshal(elems)
	if elems == nil {
		data = []byte("[]")
	}
	return quoteStructural(string(data))
}

// quoteStructural wraps a bare JSON literal in the exporter's field quoting.
func quoteStructural(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
