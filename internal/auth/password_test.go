package auth

import "testing"

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"good password", "tr0ub4dor&3", false},
		{"exactly eight chars", "abcd123x", false},
		{"too short", "short1", true},
		{"entirely numeric", "12345678901", true},
		{"numeric with letter", "1234567a", false},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordStrength(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePasswordStrength(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}
