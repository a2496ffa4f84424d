package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	for _, env := range []string{"production", "development", ""} {
		l, err := New(env)
		require.NoError(t, err, env)
		assert.NotNil(t, l)
	}
}

func TestRedact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want string
	}{
		{"password", redacted},
		{"access_token", redacted},
		{"Authorization", redacted},
		{"refresh", redacted},
		{"client_secret", redacted},
		{"booking_id", "b-1"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			f := Redact(tt.key, "b-1")
			assert.Equal(t, tt.key, f.Key)
			assert.Equal(t, tt.want, f.String)
		})
	}
}

func TestEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "***@x.com", Email("email", "a@x.com").String)
	assert.Equal(t, redacted, Email("email", "not-an-email").String)
}
