package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:    "valid email",
			email:   "test@example.com",
			wantErr: false,
		},
		{
			name:    "valid email with subdomain",
			email:   "user@mail.example.com",
			wantErr: false,
		},
		{
			name:    "valid email with plus",
			email:   "user+tag@example.com",
			wantErr: false,
		},
		{
			name:    "missing @",
			email:   "testexample.com",
			wantErr: true,
		},
		{
			name:    "missing domain",
			email:   "test@",
			wantErr: true,
		},
		{
			name:    "missing local part",
			email:   "@example.com",
			wantErr: true,
		},
		{
			name:    "empty string",
			email:   "",
			wantErr: true,
		},
		{
			name:    "spaces in email",
			email:   "test @example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "valid name",
			input:   "John Doe",
			wantErr: false,
		},
		{
			name:    "single name",
			input:   "John",
			wantErr: false,
		},
		{
			name:    "empty name",
			input:   "",
			wantErr: true,
		},
		{
			name:    "name too short",
			input:   "J",
			wantErr: true,
		},
		{
			name:    "name with hyphen",
			input:   "Mary-Jane",
			wantErr: false,
		},
		{
			name:    "name with apostrophe",
			input:   "O'Brien",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "valid password",
			password: "password123",
			wantErr:  false,
		},
		{
			name:     "password exactly 8 characters",
			password: "pass1234",
			wantErr:  false,
		},
		{
			name:     "password too short",
			password: "pass123",
			wantErr:  true,
		},
		{
			name:     "empty password",
			password: "",
			wantErr:  true,
		},
		{
			name:     "long password",
			password: "thisIsAVeryLongPasswordThatShouldBeValid123",
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDayNumber(t *testing.T) {
	for _, day := range []int{1, 4, 7} {
		if err := ValidateDayNumber(day); err != nil {
			t.Errorf("ValidateDayNumber(%d) unexpected error: %v", day, err)
		}
	}
	for _, day := range []int{-1, 0, 8} {
		if err := ValidateDayNumber(day); err == nil {
			t.Errorf("ValidateDayNumber(%d) expected error", day)
		}
	}
}

func TestValidateOneOf(t *testing.T) {
	allowed := []string{"low", "medium", "high"}

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "allowed value", value: "medium", wantErr: false},
		{name: "empty value", value: "", wantErr: true},
		{name: "unknown value", value: "extreme", wantErr: true},
		{name: "case sensitive", value: "Low", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOneOf("hungerLevel", tt.value, allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOneOf(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSubset(t *testing.T) {
	allowed := []string{"Fogão", "Airfryer", "Micro-ondas", "Liquidificador"}

	tests := []struct {
		name    string
		values  []string
		wantErr bool
	}{
		{name: "single option", values: []string{"Airfryer"}, wantErr: false},
		{name: "all options", values: allowed, wantErr: false},
		{name: "empty selection", values: nil, wantErr: true},
		{name: "unknown option", values: []string{"Forno a lenha"}, wantErr: true},
		{name: "duplicate option", values: []string{"Fogão", "Fogão"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubset("equipment", tt.values, allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSubset(%v) error = %v, wantErr %v", tt.values, err, tt.wantErr)
			}
		})
	}
}
