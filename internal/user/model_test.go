package user

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evstore/storefront/internal/apperr"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong horse"))
	assert.False(t, CheckPassword("not-a-hash", "correct horse"))
}

func TestNewUserValidate(t *testing.T) {
	require.NoError(t, NewUser{Username: "ada", Email: "ada@example.com", Password: "longenough"}.Validate())

	cases := map[string]NewUser{
		"username": {Email: "ada@example.com", Password: "longenough"},
		"email":    {Username: "ada", Email: "nope", Password: "longenough"},
		"password": {Username: "ada", Email: "ada@example.com", Password: "short"},
	}
	for field, in := range cases {
		err := in.Validate()
		var ve *apperr.ValidationError
		require.True(t, errors.As(err, &ve), "%s: %v", field, err)
		assert.Equal(t, field, ve.Field)
	}
}
