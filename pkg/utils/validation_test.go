package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Query    string `json:"food_query" validate:"notblank"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		in      sample
		wantErr string
	}{
		{"valid", sample{Username: "alice", Query: "spinach"}, ""},
		{"too short", sample{Username: "al", Query: "x"}, "username must be at least 3 characters"},
		{"too long", sample{Username: strings.Repeat("a", 31), Query: "x"}, "username must be at most 30 characters"},
		{"missing", sample{Query: "x"}, "username is required"},
		{"blank query", sample{Username: "alice", Query: "   "}, "food_query must not be blank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestFormatISO8601(t *testing.T) {
	ts := time.Date(2024, 3, 5, 7, 8, 9, 123456000, time.FixedZone("X", 3600))
	assert.Equal(t, "2024-03-05T06:08:09.123456Z", FormatISO8601(ts))
}
