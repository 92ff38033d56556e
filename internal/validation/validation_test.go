package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid password", "hunter2hunter2", false},
		{"Exactly 8 characters", "12345678", false},
		{"Too short", "hunter2", true},
		{"Empty", "", true},
		{"Too long", strings.Repeat("a", 73), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Valid username", "planeswalker", false},
		{"Numbers and underscores", "mtg_fan_99", false},
		{"Minimum length", "abc", false},
		{"Maximum length", strings.Repeat("a", 20), false},
		{"Too short", "ab", true},
		{"Too long", strings.Repeat("a", 21), true},
		{"Invalid characters", "jace beleren", true},
		{"Leading underscore", "_jace", true},
		{"Trailing hyphen", "jace-", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid email", "jace@example.com", false},
		{"Subdomain", "jace@mail.example.co.uk", false},
		{"Missing at sign", "jace.example.com", true},
		{"Missing TLD", "jace@example", true},
		{"Empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
