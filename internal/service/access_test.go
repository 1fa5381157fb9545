package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessService_IsAllowed(t *testing.T) {
	tests := []struct {
		name     string
		allowed  []int64
		userID   int64
		expected bool
	}{
		{
			name:     "user on the list",
			allowed:  []int64{100, 200},
			userID:   100,
			expected: true,
		},
		{
			name:     "user not on the list",
			allowed:  []int64{100, 200},
			userID:   300,
			expected: false,
		},
		{
			name:     "empty list denies everyone",
			allowed:  nil,
			userID:   100,
			expected: false,
		},
		{
			name:     "zero id is not special",
			allowed:  []int64{100},
			userID:   0,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewAccessService(tt.allowed)

			assert.Equal(t, tt.expected, service.IsAllowed(tt.userID))
		})
	}
}
