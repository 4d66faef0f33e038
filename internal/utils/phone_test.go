package utils

import "testing"

func TestNormalizePhone_AcceptedShapes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+998 90 123 45 67", "+998901234567"},
		{"+998901234567", "+998901234567"},
		{"998901234567", "+998901234567"},
		{"901234567", "+998901234567"},
	}

	for _, tc := range cases {
		got, err := NormalizePhone(tc.in)
		if err != nil {
			t.Fatalf("NormalizePhone(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	inputs := []string{"+998 90 123 45 67", "998901234567", "901234567", "+998901234567"}

	for _, in := range inputs {
		once, err := NormalizePhone(in)
		if err != nil {
			t.Fatalf("NormalizePhone(%q) returned error: %v", in, err)
		}
		twice, err := NormalizePhone(once)
		if err != nil {
			t.Fatalf("NormalizePhone(%q) returned error on second pass: %v", once, err)
		}
		if once != twice {
			t.Fatalf("normalization not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestNormalizePhone_Rejected(t *testing.T) {
	inputs := []string{
		"",
		"12345",
		"+1 555 123 4567",
		"99890123456",     // 11 digits
		"9012345678",      // 10 digits, only accepted in booking context
		"+998 901234567",  // wrong spacing
		"998 90 123 45 6", // malformed
		"abc901234567",
	}

	for _, in := range inputs {
		if got, err := NormalizePhone(in); err == nil {
			t.Fatalf("NormalizePhone(%q) = %q, want error", in, got)
		}
	}
}

func TestNormalizeBookingPhone_TenDigits(t *testing.T) {
	got, err := NormalizeBookingPhone("9012345678")
	if err != nil {
		t.Fatalf("NormalizeBookingPhone returned error: %v", err)
	}
	if got != "+9012345678" {
		t.Fatalf("NormalizeBookingPhone(%q) = %q, want %q", "9012345678", got, "+9012345678")
	}

	// Standard shapes still normalize to the canonical form.
	got, err = NormalizeBookingPhone("901234567")
	if err != nil {
		t.Fatalf("NormalizeBookingPhone returned error: %v", err)
	}
	if got != "+998901234567" {
		t.Fatalf("NormalizeBookingPhone(%q) = %q, want %q", "901234567", got, "+998901234567")
	}
}

func TestValidDoctorPhone(t *testing.T) {
	valid := []string{"", "+998 90 123 45 67", "901234567"}
	for _, in := range valid {
		if !ValidDoctorPhone(in) {
			t.Fatalf("ValidDoctorPhone(%q) = false, want true", in)
		}
	}

	invalid := []string{"+998901234567", "998901234567", "12345", "phone"}
	for _, in := range invalid {
		if ValidDoctorPhone(in) {
			t.Fatalf("ValidDoctorPhone(%q) = true, want false", in)
		}
	}
}
