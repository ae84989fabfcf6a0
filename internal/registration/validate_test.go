package registration

import "testing"

func TestValidateNames(t *testing.T) {
	cases := []struct {
		name  string
		field Field
		input string
		ok    bool
		want  string
	}{
		{"simple cyrillic", FieldFirstName, "Анна", true, "Анна"},
		{"latin with hyphen", FieldFirstName, "Anne-Marie", true, "Anne-Marie"},
		{"trims whitespace", FieldFirstName, "  Анна  ", true, "Анна"},
		{"too short", FieldFirstName, "A", false, ""},
		{"only spaces", FieldFirstName, "   ", false, ""},
		{"digits rejected", FieldFirstName, "Анна123", false, ""},
		{"lastname cyrillic", FieldLastName, "Петрова", true, "Петрова"},
		{"lastname punctuation rejected", FieldLastName, "O'Brien", false, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Validate(tc.field, tc.input)
			if tc.ok {
				if err != nil {
					t.Fatalf("Validate(%q, %q) rejected: %v", tc.field, tc.input, err)
				}
				if got != tc.want {
					t.Fatalf("Validate(%q, %q) = %q, want %q", tc.field, tc.input, got, tc.want)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate(%q, %q) accepted, want rejection", tc.field, tc.input)
			}
			if err.Message == "" {
				t.Fatal("rejection without user-facing message")
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	accepted := []string{
		"+7 (912) 345-67-89",
		"+79123456789",
		"89123456789",
		"8 (912) 345 67 89",
		"7 912 345 67 89",
		"7912.345.67.89",
	}
	for _, in := range accepted {
		if _, err := Validate(FieldPhone, in); err != nil {
			t.Errorf("phone %q rejected: %v", in, err)
		}
	}

	rejected := []string{
		"",
		"12345",
		"+1 555 123 4567",
		"9123456789",
		"телефон",
		"8912345678",    // one digit short
		"891234567890",  // one digit extra
	}
	for _, in := range rejected {
		if _, err := Validate(FieldPhone, in); err == nil {
			t.Errorf("phone %q accepted, want rejection", in)
		}
	}
}

func TestValidateFreeText(t *testing.T) {
	for _, field := range []Field{FieldCompany, FieldActivityType} {
		if _, err := Validate(field, "x"); err == nil {
			t.Errorf("%s: single rune accepted", field)
		}
		got, err := Validate(field, "  ООО Ромашка  ")
		if err != nil {
			t.Fatalf("%s: rejected valid input: %v", field, err)
		}
		if got != "ООО Ромашка" {
			t.Fatalf("%s: normalized to %q", field, got)
		}
	}
}

func TestValidationErrorCode(t *testing.T) {
	_, err := Validate(FieldPhone, "12345")
	if err == nil {
		t.Fatal("expected rejection")
	}
	if err.Code() != "invalid_phone" {
		t.Fatalf("Code() = %q", err.Code())
	}
}
