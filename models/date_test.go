package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid date", "2025-03-14", "2025-03-14", false},
		{"leap day", "2024-02-29", "2024-02-29", false},
		{"invalid leap day", "2025-02-29", "", true},
		{"wrong format", "14-03-2025", "", true},
		{"empty", "", "", true},
		{"timestamp rejected", "2025-03-14T10:00:00Z", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && d.String() != tt.want {
				t.Errorf("ParseDate(%q) = %q, want %q", tt.input, d.String(), tt.want)
			}
		})
	}
}

func TestDateUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain date", `"2025-06-01"`, "2025-06-01", false},
		{"rfc3339", `"2025-06-01T08:30:00Z"`, "2025-06-01", false},
		{"null", `null`, "0001-01-01", false},
		{"empty string", `""`, "0001-01-01", false},
		{"garbage", `"not-a-date"`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && d.String() != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.input, d.String(), tt.want)
			}
		})
	}
}

func TestDateMarshalJSON(t *testing.T) {
	d, err := ParseDate("2025-12-31")
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2025-12-31"` {
		t.Errorf("Marshal = %s, want %q", b, `"2025-12-31"`)
	}

	var zero Date
	b, err = json.Marshal(zero)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "null" {
		t.Errorf("Marshal zero = %s, want null", b)
	}
}

func TestDateScan(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"time.Time", time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), "2025-05-20"},
		{"date string", "2025-05-20", "2025-05-20"},
		{"datetime string", "2025-05-20 00:00:00", "2025-05-20"},
		{"rfc3339 string", "2025-05-20T00:00:00Z", "2025-05-20"},
		{"bytes", []byte("2025-05-20"), "2025-05-20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := d.Scan(tt.input); err != nil {
				t.Fatalf("Scan(%v) error = %v", tt.input, err)
			}
			if d.String() != tt.want {
				t.Errorf("Scan(%v) = %q, want %q", tt.input, d.String(), tt.want)
			}
		})
	}
}
