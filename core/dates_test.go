package core

import "testing"

func TestValidateDate(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr string
	}{
		{name: "valid", date: "15-06-2001"},
		{name: "valid single digit day and month", date: "1-1-2000"},
		{name: "valid 31st", date: "31-12-1999"},
		{name: "valid 30-day month", date: "30-04-2010"},
		{name: "valid Feb 29 leap year", date: "29-02-2004"},
		{name: "valid Feb 29 leap century", date: "29-02-2000"},
		{name: "valid Feb 28 non-leap", date: "28-02-2001"},

		{name: "empty", date: "", wantErr: "Invalid date format. Must be DD-MM-YYYY."},
		{name: "wrong separator", date: "15/06/2001", wantErr: "Invalid date format. Must be DD-MM-YYYY."},
		{name: "two parts", date: "15-2001", wantErr: "Invalid date format. Must be DD-MM-YYYY."},
		{name: "two digit year", date: "15-06-01", wantErr: "Invalid date format. Must be DD-MM-YYYY."},
		{name: "three digit day", date: "150-06-2001", wantErr: "Invalid date format. Must be DD-MM-YYYY."},
		{name: "letters", date: "aa-bb-cccc", wantErr: "Invalid date format. Must be DD-MM-YYYY."},
		{name: "signed day", date: "+1-06-2001", wantErr: "Invalid date format. Must be DD-MM-YYYY."},

		{name: "year before 1900", date: "15-06-1899", wantErr: "Year must be 1900 or later."},
		{name: "month zero", date: "15-00-2001", wantErr: "Month must be between 1 and 12."},
		{name: "month thirteen", date: "15-13-2001", wantErr: "Month must be between 1 and 12."},

		{name: "day 32 in January", date: "32-01-2001", wantErr: "Invalid day for month 1. Must be between 1 and 31."},
		{name: "day zero in January", date: "0-01-2001", wantErr: "Invalid day for month 1. Must be between 1 and 31."},
		{name: "day 31 in April", date: "31-04-2001", wantErr: "Invalid day for month 4. Must be between 1 and 30."},
		{name: "Feb 30 leap year", date: "30-02-2004", wantErr: "Invalid day for February in a leap year. Must be between 1 and 29."},
		{name: "Feb 29 non-leap year", date: "29-02-2001", wantErr: "Invalid day for February in a non-leap year. Must be between 1 and 28."},
		{name: "Feb 29 non-leap century", date: "29-02-1900", wantErr: "Invalid day for February in a non-leap year. Must be between 1 and 28."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDate(tt.date)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateDate(%q) unexpected error: %v", tt.date, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateDate(%q) expected error %q, got nil", tt.date, tt.wantErr)
			}
			if err.Error() != tt.wantErr {
				t.Errorf("ValidateDate(%q) error = %q, want %q", tt.date, err.Error(), tt.wantErr)
			}
		})
	}
}

func Test_isLeapYear(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{2004, true},
		{2000, true},
		{1900, false},
		{2001, false},
		{2400, true},
	}
	for _, tt := range tests {
		if got := isLeapYear(tt.year); got != tt.want {
			t.Errorf("isLeapYear(%d) = %v, want %v", tt.year, got, tt.want)
		}
	}
}
