package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Tour is a loosely typed tour record. Apart from "id" no field is interpreted,
// so records round-trip with whatever shape the dataset gives them.
type Tour map[string]any

// ID returns the numeric id of the tour. It reports false when the record has
// no id or the id is not a JSON number; string ids never match a lookup.
func (t Tour) ID() (float64, bool) {
	switch v := t["id"].(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseID converts a path parameter to a number the way a JavaScript
// Number(str) coercion does. Unparseable input yields NaN, which compares
// unequal to every id and is never greater than a length.
func ParseID(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}

	if !decimalPattern.MatchString(s) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Out of range values still carry a sign.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f
		}
		return math.NaN()
	}
	return f
}

// DecodeTours reads a JSON array of tour records. Numbers are kept as
// json.Number so ids and prices survive a rewrite unchanged.
func DecodeTours(r io.Reader) ([]Tour, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var tours []Tour
	if err := dec.Decode(&tours); err != nil {
		return nil, fmt.Errorf("decode tours: %w", err)
	}
	if tours == nil {
		tours = []Tour{}
	}
	return tours, nil
}

// EncodeTours serializes the collection as one compact JSON array.
func EncodeTours(tours []Tour) ([]byte, error) {
	if tours == nil {
		tours = []Tour{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tours); err != nil {
		return nil, fmt.Errorf("encode tours: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
