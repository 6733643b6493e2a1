package domain

import (
	"encoding/json"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestScalarJSON(t *testing.T) {
	var v struct {
		A Scalar `json:"a"`
		B Scalar `json:"b"`
		C Scalar `json:"c"`
		D Scalar `json:"d"`
		E Scalar `json:"e"`
	}
	if err := json.Unmarshal([]byte(`{"a":12.5,"b":"103.94","c":true,"d":null,"e":"n/a"}`), &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !v.A.IsNumber() || v.A.String() != "12.5" {
		t.Errorf("a = %+v, want number 12.5", v.A)
	}
	if v.B.IsNumber() {
		t.Errorf("b should be text")
	}
	if f, ok := v.B.Float(); !ok || f != 103.94 {
		t.Errorf("b.Float() = %v, %v", f, ok)
	}
	if v.C.String() != "True" {
		t.Errorf("c = %q, want True", v.C.String())
	}
	if !v.D.IsZero() {
		t.Errorf("d should be absent")
	}
	if _, ok := v.E.Float(); ok {
		t.Errorf("e should not parse as a number")
	}
}

func TestScalarBSON(t *testing.T) {
	doc := bson.D{
		{Key: "height", Value: int32(120)},
		{Key: "width", Value: 33.5},
		{Key: "length", Value: "n/a"},
	}
	b, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var v VolumeData
	if err := bson.Unmarshal(b, &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if v.Height.String() != "120" || !v.Height.IsNumber() {
		t.Errorf("height = %+v", v.Height)
	}
	if v.Width.String() != "33.5" {
		t.Errorf("width = %q", v.Width.String())
	}
	if _, ok := v.Length.Text(); !ok {
		t.Errorf("length should be text")
	}
	if !v.RealVolume.IsZero() {
		t.Errorf("real_volume should be absent")
	}
}

func TestFormatFloat(t *testing.T) {
	cases := map[float64]string{
		12:     "12.0",
		103.94: "103.94",
		-0.5:   "-0.5",
	}
	for in, want := range cases {
		if got := FormatFloat(in); got != want {
			t.Errorf("FormatFloat(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestParcelQueryMatches(t *testing.T) {
	p := &ParcelRecord{HostID: "H1", Barcodes: []string{"A", "B"}, AlibiNumber: "AL9"}

	tests := []struct {
		q    ParcelQuery
		want bool
	}{
		{ParcelQuery{Field: SearchByHostID, Value: "H1"}, true},
		{ParcelQuery{Field: SearchByBarcode, Value: "B"}, true},
		{ParcelQuery{Field: SearchByAlibiID, Value: "AL9"}, true},
		{ParcelQuery{Field: SearchByBarcode, Value: "C"}, false},
		{ParcelQuery{Field: "color", Value: "H1"}, false},
	}
	for _, tt := range tests {
		if got := tt.q.Matches(p); got != tt.want {
			t.Errorf("%+v.Matches = %v, want %v", tt.q, got, tt.want)
		}
	}
}
