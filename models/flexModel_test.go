package models

import (
	"encoding/json"
	"testing"
)

func TestFlexIntUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"json number", `42`, 42, false},
		{"numeric string", `"42"`, 42, false},
		{"padded string", `" 7 "`, 7, false},
		{"null", `null`, 0, false},
		{"empty string", `""`, 0, false},
		{"garbage string", `"abc"`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v FlexInt
			err := json.Unmarshal([]byte(tt.input), &v)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && int(v) != tt.want {
				t.Errorf("got %d, want %d", int(v), tt.want)
			}
		})
	}
}

func TestFlexFloatUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"json number", `12.5`, 12.5, false},
		{"numeric string", `"12.50"`, 12.5, false},
		{"integer string", `"9"`, 9, false},
		{"null", `null`, 0, false},
		{"empty string", `""`, 0, false},
		{"garbage string", `"12,50"`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v FlexFloat
			err := json.Unmarshal([]byte(tt.input), &v)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && float64(v) != tt.want {
				t.Errorf("got %v, want %v", float64(v), tt.want)
			}
		})
	}
}

func TestFlexTypesMarshalAsNumbers(t *testing.T) {
	body, err := json.Marshal(struct {
		Quantity FlexInt   `json:"quantity"`
		Price    FlexFloat `json:"price"`
	}{Quantity: 3, Price: 4.5})
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != `{"quantity":3,"price":4.5}` {
		t.Errorf("marshal output = %s", body)
	}
}
