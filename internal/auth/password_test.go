package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_NonDeterministic(t *testing.T) {
	// Соль генерируется на каждый вызов, поэтому хеши разные,
	// но оба проверяются одним паролем
	hash1, err := HashPassword("secret1")
	require.NoError(t, err)
	hash2, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
	assert.True(t, CheckPassword("secret1", hash1))
	assert.True(t, CheckPassword("secret1", hash2))
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{
			name:     "correct password",
			password: "correct-password",
			hash:     hash,
			want:     true,
		},
		{
			name:     "wrong password",
			password: "wrong-password",
			hash:     hash,
			want:     false,
		},
		{
			name:     "empty password",
			password: "",
			hash:     hash,
			want:     false,
		},
		{
			name:     "malformed hash does not panic",
			password: "correct-password",
			hash:     "not-a-bcrypt-hash",
			want:     false,
		},
		{
			name:     "empty hash",
			password: "correct-password",
			hash:     "",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckPassword(tt.password, tt.hash))
		})
	}
}
