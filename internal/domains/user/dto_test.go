package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequestValidate(t *testing.T) {
	valid := SignupRequest{
		Username:  "alice_01",
		Password:  "password1",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Smith",
	}
	assert.NoError(t, valid.Validate())

	short := valid
	short.Password = "short"
	assert.Error(t, short.Validate())

	badName := valid
	badName.Username = "no spaces"
	assert.Error(t, badName.Validate())

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.Error(t, badEmail.Validate())
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("alice@example.com"))
	assert.False(t, IsEmail("alice"))
	assert.False(t, IsEmail("alice@nodot"))
}
