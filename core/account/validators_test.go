package account

import "testing"

func TestValidateIdentityFields(t *testing.T) {
	valid := struct {
		username, email, password, district, address, birthDate string
	}{"johndoe", "john@test.edu", "s3cret", "Coimbra", "Rua Larga 1", "15-06-2001"}

	tests := []struct {
		name    string
		mutate  func(*[6]string)
		wantErr string
	}{
		{name: "all valid"},
		{name: "short username", mutate: func(f *[6]string) { f[0] = "jo" },
			wantErr: "Invalid username. Must be at least 3 characters long."},
		{name: "email without at", mutate: func(f *[6]string) { f[1] = "john.test.edu" },
			wantErr: "Invalid email format."},
		{name: "email without dot after at", mutate: func(f *[6]string) { f[1] = "john.doe@edu" },
			wantErr: "Invalid email format."},
		{name: "short password", mutate: func(f *[6]string) { f[2] = "abc12" },
			wantErr: "Password must be at least 6 characters long."},
		{name: "short district", mutate: func(f *[6]string) { f[3] = "Faro" },
			wantErr: "Invalid district. Must be at least 5 characters long."},
		{name: "short multibyte district", mutate: func(f *[6]string) { f[3] = "ééé" }, // 6 bytes, 3 runes
			wantErr: "Invalid district. Must be at least 5 characters long."},
		{name: "multibyte district long enough", mutate: func(f *[6]string) { f[3] = "Évora" }},
		{name: "short address", mutate: func(f *[6]string) { f[4] = "R 1" },
			wantErr: "Invalid address. Must be at least 5 characters long."},
		{name: "bad birth date", mutate: func(f *[6]string) { f[5] = "2001-06-15" },
			wantErr: "Invalid date format. Must be DD-MM-YYYY."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := [6]string{valid.username, valid.email, valid.password, valid.district, valid.address, valid.birthDate}
			if tt.mutate != nil {
				tt.mutate(&fields)
			}
			err := ValidateIdentityFields(fields[0], fields[1], fields[2], fields[3], fields[4], fields[5])
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateIdentityFields() unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("ValidateIdentityFields() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNumericID(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{name: "valid", value: "1234567890", valid: true},
		{name: "too short", value: "123456789"},
		{name: "too long", value: "12345678901"},
		{name: "letters", value: "12345abcde"},
		{name: "signed", value: "+123456789"},
		{name: "empty", value: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNumericID(tt.value, NumberLength, "student number")
			if tt.valid {
				if err != nil {
					t.Errorf("ValidateNumericID(%q) unexpected error: %v", tt.value, err)
				}
				return
			}
			want := "Invalid student number. Must be a numeric value with exactly 10 digits."
			if err == nil || err.Error() != want {
				t.Errorf("ValidateNumericID(%q) error = %v, want %q", tt.value, err, want)
			}
		})
	}
}
