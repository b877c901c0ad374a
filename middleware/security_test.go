package middleware

import (
	"testing"
)

func TestValidatePhoneNumber(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+33612345678", true},
		{"+1 415 555 0100", true},
		{"+49(30)123456", true},
		{"+123456", true},
		{"33612345678", false},
		{"+12345", false},
		{"+1234567890123456", false},
		{"+336abc45678", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			if got := ValidatePhoneNumber(tt.phone); got != tt.want {
				t.Errorf("ValidatePhoneNumber(%q) = %v, want %v", tt.phone, got, tt.want)
			}
		})
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid", "Passw0rd123", true},
		{"too short", "Pa1", false},
		{"letters only", "justletters", false},
		{"digits only", "1234567890", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, details := ValidatePasswordStrength(tt.password)
			if got != tt.want {
				t.Errorf("ValidatePasswordStrength(%q) = %v (%v), want %v", tt.password, got, details, tt.want)
			}
			if !tt.want && len(details) == 0 {
				t.Errorf("weak password returned no details")
			}
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello  ", "hello"},
		{"<script>alert('x')</script>", "&lt;script&gt;alert(&#x27;x&#x27;)&lt;/script&gt;"},
		{`say "hi"`, "say &quot;hi&quot;"},
		{"plain text", "plain text"},
	}

	for _, tt := range tests {
		if got := SanitizeInput(tt.in); got != tt.want {
			t.Errorf("SanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
