// internal/models/user_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordHashing(t *testing.T) {
	user := &User{Name: "Alice", Email: "alice@example.com", Role: UserRoleSeller}

	err := user.SetPassword("correct horse battery staple")
	assert.NoError(t, err)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "correct horse battery staple", user.PasswordHash)

	assert.NoError(t, user.CheckPassword("correct horse battery staple"))
	assert.Error(t, user.CheckPassword("wrong password"))
}

func TestLawyerProfile(t *testing.T) {
	user := &User{
		Name:           "Carol",
		Email:          "carol@lawfirm.example",
		Role:           UserRoleLawyer,
		LicenseNumber:  "BAR-12345",
		BarAssociation: "Lisbon Bar",
		Verified:       true,
	}

	profile := user.LawyerProfile()

	assert.Equal(t, "Carol", profile.Name)
	assert.Equal(t, "BAR-12345", profile.LicenseNumber)
	assert.Equal(t, "Lisbon Bar", profile.BarAssociation)
	assert.True(t, profile.Verified)
}
