package validation

import "testing"

func TestPresent(t *testing.T) {
	body := map[string]interface{}{
		"name":  "run",
		"blank": "   ",
		"zero":  float64(0),
		"nil":   nil,
	}

	if !Present(body, "name") {
		t.Error("Expected name to be present")
	}
	if Present(body, "blank") {
		t.Error("Expected blank string to count as absent")
	}
	// Zero is a value, not an absence
	if !Present(body, "zero") {
		t.Error("Expected numeric zero to be present")
	}
	if Present(body, "nil") {
		t.Error("Expected nil to count as absent")
	}
	if Present(body, "missing") {
		t.Error("Expected missing key to be absent")
	}
}

func TestInt(t *testing.T) {
	if n, err := Int(float64(30), "duration"); err != nil || n != 30 {
		t.Errorf("Expected 30, got %v (%v)", n, err)
	}
	// HTML forms post numbers as strings
	if n, err := Int("30", "duration"); err != nil || n != 30 {
		t.Errorf("Expected coerced 30, got %v (%v)", n, err)
	}
	if _, err := Int(float64(30.5), "duration"); err == nil {
		t.Error("Expected fractional value to be rejected")
	}
	if _, err := Int("abc", "duration"); err == nil {
		t.Error("Expected non-numeric string to be rejected")
	}
	if _, err := Int(true, "duration"); err == nil {
		t.Error("Expected bool to be rejected")
	}
}

func TestPositiveInt(t *testing.T) {
	if _, err := PositiveInt(float64(0), "duration"); err == nil {
		t.Error("Expected zero to be rejected")
	}
	if _, err := PositiveInt(float64(-5), "duration"); err == nil {
		t.Error("Expected negative to be rejected")
	}
	if n, err := PositiveInt("45", "duration"); err != nil || n != 45 {
		t.Errorf("Expected 45, got %v (%v)", n, err)
	}
}

func TestNonNegative(t *testing.T) {
	if n, err := NonNegativeInt(float64(0), "calories"); err != nil || n != 0 {
		t.Errorf("Expected 0 to be accepted, got %v (%v)", n, err)
	}
	if _, err := NonNegativeInt(float64(-1), "calories"); err == nil {
		t.Error("Expected negative int to be rejected")
	}
	if f, err := NonNegativeFloat("12.5", "protein"); err != nil || f != 12.5 {
		t.Errorf("Expected 12.5, got %v (%v)", f, err)
	}
	if _, err := NonNegativeFloat(float64(-0.1), "protein"); err == nil {
		t.Error("Expected negative float to be rejected")
	}
}

func TestBool(t *testing.T) {
	cases := []struct {
		in   interface{}
		want bool
	}{
		{true, true},
		{false, false},
		{float64(1), true},
		{float64(0), false},
		{"true", true},
		{"false", false},
	}
	for _, tc := range cases {
		got, err := Bool(tc.in, "is_active")
		if err != nil || got != tc.want {
			t.Errorf("Bool(%v): expected %v, got %v (%v)", tc.in, tc.want, got, err)
		}
	}
	if _, err := Bool("yes please", "is_active"); err == nil {
		t.Error("Expected garbage string to be rejected")
	}
}

func TestDate(t *testing.T) {
	if d, err := Date("2024-01-01", "date"); err != nil || d != "2024-01-01" {
		t.Errorf("Expected 2024-01-01, got %v (%v)", d, err)
	}
	for _, bad := range []interface{}{"01/01/2024", "2024-13-01", "2024-01-32", "yesterday", float64(20240101)} {
		if _, err := Date(bad, "date"); err == nil {
			t.Errorf("Expected %v to be rejected", bad)
		}
	}
}

func TestOneOf(t *testing.T) {
	if s, err := OneOf("high", "intensity", "low", "medium", "high"); err != nil || s != "high" {
		t.Errorf("Expected high, got %v (%v)", s, err)
	}
	// Case-insensitive on input, stored lowercase
	if s, err := OneOf("HIGH", "intensity", "low", "medium", "high"); err != nil || s != "high" {
		t.Errorf("Expected normalized high, got %v (%v)", s, err)
	}
	_, err := OneOf("extreme", "intensity", "low", "medium", "high")
	if err == nil {
		t.Fatal("Expected out-of-set value to be rejected")
	}
	if err.Field != "intensity" {
		t.Errorf("Expected error to name the field, got %q", err.Field)
	}
}
