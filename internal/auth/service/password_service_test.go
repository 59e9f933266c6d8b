package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordService(t *testing.T) {
	service := NewPasswordService()

	t.Run("Success_HashAndVerify", func(t *testing.T) {
		hash, err := service.Hash("Sup3rSecret")
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
		assert.NotEqual(t, "Sup3rSecret", hash)

		assert.True(t, service.Verify("Sup3rSecret", hash))
	})

	t.Run("Success_WrongPasswordRejected", func(t *testing.T) {
		hash, err := service.Hash("Sup3rSecret")
		require.NoError(t, err)

		assert.False(t, service.Verify("WrongPassword", hash))
	})

	t.Run("Success_HashesAreSalted", func(t *testing.T) {
		first, err := service.Hash("Sup3rSecret")
		require.NoError(t, err)
		second, err := service.Hash("Sup3rSecret")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("Success_MalformedHashRejected", func(t *testing.T) {
		assert.False(t, service.Verify("Sup3rSecret", "not-a-valid-hash"))
	})
}
