package chat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRetryableError(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"rate limit", errors.New("Rate Limit exceeded"), true},
		{"quota", errors.New("quota exceeded for project"), true},
		{"http 429", errors.New("server returned 429"), true},
		{"http 503", errors.New("503 service unavailable"), true},
		{"timeout", errors.New("context deadline exceeded: timeout"), true},
		{"connection reset", errors.New("read: connection reset by peer"), true},
		{"invalid argument", errors.New("invalid argument"), false},
		{"auth failure", errors.New("API key not valid"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.retryable, retryableError(tc.err))
		})
	}
}

func TestContainsAny(t *testing.T) {
	assert.True(t, containsAny("Service UNAVAILABLE right now", "unavailable"))
	assert.False(t, containsAny("all good", "unavailable", "timeout"))
	assert.False(t, containsAny("", "unavailable"))
}
