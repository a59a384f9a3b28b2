package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", "2023-02-29", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"00:00", "08:30", "23:59"}
	invalid := []string{"24:00", "8:30", "08:60", "0830", ""}
	for _, s := range valid {
		if !IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = true, want false", s)
		}
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("16:45")
	if err != nil || h != 16 || m != 45 {
		t.Errorf("ParseClock(16:45) = %d, %d, %v", h, m, err)
	}
	if _, _, err := ParseClock("25:00"); err == nil {
		t.Errorf("ParseClock(25:00) expected error")
	}
}

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		input string
		want  time.Time
	}{
		{"2024-07-01T08:00", time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)},
		{"2024-07-01T08:00:30", time.Date(2024, 7, 1, 8, 0, 30, 0, time.UTC)},
		{"2024-07-01 16:00", time.Date(2024, 7, 1, 16, 0, 0, 0, time.UTC)},
		{"2024-07-01", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-07-01T08:00:00+03:00", time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, err := ParseTimestamp(c.input)
		if err != nil {
			t.Errorf("ParseTimestamp(%q) error: %v", c.input, err)
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", c.input, got, c.want)
		}
	}
	if _, err := ParseTimestamp("yesterday"); err == nil {
		t.Errorf("ParseTimestamp(yesterday) expected error")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "name", Message: "required"},
	}
	got := errs.Error()
	want := "email: invalid; name: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "name", Message: "required"},
		{Field: "name", Message: "too long"},
	}
	got := errs.ToMap()
	want := map[string]string{"email": "invalid", "name": "required; too long"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

type sampleRequest struct {
	Name  string `json:"name" validate:"required,max=10"`
	Hours int    `json:"daily_contract_hours" validate:"oneof=4 6 8"`
	Start string `json:"start_time" validate:"required,clock"`
	Day   string `json:"day" validate:"omitempty,date"`
}

func TestStruct(t *testing.T) {
	ok := sampleRequest{Name: "Ana", Hours: 8, Start: "08:00", Day: "2024-07-01"}
	if errs := Struct(ok); errs != nil {
		t.Fatalf("Struct(valid) = %v, want nil", errs)
	}

	bad := sampleRequest{Hours: 7, Start: "8am", Day: "07/01"}
	got := Struct(bad).ToMap()
	for _, field := range []string{"name", "daily_contract_hours", "start_time", "day"} {
		if _, exists := got[field]; !exists {
			t.Errorf("Struct(invalid) missing error for %q: %v", field, got)
		}
	}
	if got["daily_contract_hours"] != "daily_contract_hours must be one of: 4, 6, 8" {
		t.Errorf("unexpected oneof message: %q", got["daily_contract_hours"])
	}
}
