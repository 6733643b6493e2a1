package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

type scalarKind uint8

const (
	kindAbsent scalarKind = iota
	kindNumber
	kindText
	kindBool
	kindOther
)

// Scalar is a loosely typed document value. Scanner and sorter integrations do not
// agree on types, so a field may arrive as a number, a string, a boolean or something
// else entirely. Scalar keeps the stored form and parses lazily; a value that does not
// parse is simply absent for the caller asking.
type Scalar struct {
	kind scalarKind
	raw  string
}

func Number(v float64) Scalar { return Scalar{kind: kindNumber, raw: FormatFloat(v)} }

func Integer(v int64) Scalar { return Scalar{kind: kindNumber, raw: strconv.FormatInt(v, 10)} }

func Text(v string) Scalar { return Scalar{kind: kindText, raw: v} }

func Bool(v bool) Scalar { return Scalar{kind: kindBool, raw: strconv.FormatBool(v)} }

// IsZero reports whether the value is missing or null.
func (s Scalar) IsZero() bool { return s.kind == kindAbsent }

// IsNumber reports whether the value was stored as a number (not a numeric string).
func (s Scalar) IsNumber() bool { return s.kind == kindNumber }

// String returns the stored value in display form. Booleans render as True/False to
// stay compatible with histogram keys produced by the previous reporting service.
func (s Scalar) String() string {
	if s.kind == kindBool {
		if s.raw == "true" {
			return "True"
		}
		return "False"
	}
	return s.raw
}

// Text returns the value when it was stored as a string.
func (s Scalar) Text() (string, bool) {
	if s.kind != kindText {
		return "", false
	}
	return s.raw, true
}

// Float parses the value as a finite float. Numeric strings are accepted.
func (s Scalar) Float() (float64, bool) {
	switch s.kind {
	case kindNumber, kindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(s.raw), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case kindBool:
		if s.raw == "true" {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func (s *Scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null":
		*s = Scalar{}
	case b[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = Text(v)
	case string(b) == "true" || string(b) == "false":
		*s = Bool(string(b) == "true")
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		*s = Scalar{kind: kindNumber, raw: string(b)}
	default:
		*s = Scalar{kind: kindOther, raw: string(b)}
	}
	return nil
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case kindAbsent:
		return []byte("null"), nil
	case kindNumber:
		if _, ok := s.Float(); ok {
			return []byte(s.raw), nil
		}
	case kindBool:
		return []byte(s.raw), nil
	case kindOther:
		if json.Valid([]byte(s.raw)) {
			return []byte(s.raw), nil
		}
	}
	return json.Marshal(s.raw)
}

func (s *Scalar) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeNull, bson.TypeUndefined:
		*s = Scalar{}
	case bson.TypeDouble:
		*s = Number(rv.Double())
	case bson.TypeInt32:
		*s = Integer(int64(rv.Int32()))
	case bson.TypeInt64:
		*s = Integer(rv.Int64())
	case bson.TypeDecimal128:
		*s = Scalar{kind: kindNumber, raw: rv.Decimal128().String()}
	case bson.TypeString:
		*s = Text(rv.StringValue())
	case bson.TypeBoolean:
		*s = Bool(rv.Boolean())
	case bson.TypeDateTime:
		*s = Text(rv.Time().UTC().Format(time.RFC3339Nano))
	default:
		*s = Scalar{kind: kindOther, raw: rv.String()}
	}
	return nil
}

func (s Scalar) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch s.kind {
	case kindAbsent:
		return bson.MarshalValue(nil)
	case kindNumber:
		if i, err := strconv.ParseInt(s.raw, 10, 64); err == nil {
			return bson.MarshalValue(i)
		}
		if f, ok := s.Float(); ok {
			return bson.MarshalValue(f)
		}
	case kindBool:
		return bson.MarshalValue(s.raw == "true")
	}
	return bson.MarshalValue(s.raw)
}

// FormatFloat renders v the way report consumers expect decimal keys: shortest
// round-trip digits, always with a fractional part ("12.0", "103.94").
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".nN") {
		s += ".0"
	}
	return s
}
