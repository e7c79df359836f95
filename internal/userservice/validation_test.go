package userservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sushihentaime/inkwell/internal/common"
)

func TestValidateUsername(t *testing.T) {
	testCases := []struct {
		name     string
		username string
		want     map[string]string
	}{
		{name: "valid", username: "writer42", want: map[string]string{}},
		{name: "empty", username: "", want: map[string]string{"username": "must be provided"}},
		{name: "too short", username: "ab", want: map[string]string{"username": "must be between 3 and 25 characters long"}},
		{name: "symbols", username: "writer_42", want: map[string]string{"username": "must only contain letters and numbers"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validateUsername(v, tc.username)
			assert.Equal(t, tc.want, v.Errors)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	v := common.NewValidator()
	validateEmail(v, "writer@example.com")
	assert.True(t, v.Valid())

	v = common.NewValidator()
	validateEmail(v, "writer@")
	assert.Equal(t, map[string]string{"email": "must be a valid email address"}, v.Errors)
}

func TestValidatePassword(t *testing.T) {
	testCases := []struct {
		password string
		valid    bool
	}{
		{"Test_1234!", true},
		{"test_1234!", false},
		{"TEST_1234!", false},
		{"Test_abcd!", false},
		{"Test1234", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.password, func(t *testing.T) {
			v := common.NewValidator()
			validatePassword(v, tc.password)
			assert.Equal(t, tc.valid, v.Valid())
		})
	}
}

func TestValidateToken(t *testing.T) {
	v := common.NewValidator()
	ValidateToken(v, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	assert.True(t, v.Valid())

	v = common.NewValidator()
	ValidateToken(v, "")
	assert.Equal(t, map[string]string{"token": "must be provided"}, v.Errors)
}
