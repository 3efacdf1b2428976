package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginMasksPassword(t *testing.T) {
	expectedMap := map[string]string{"email": "nadia@postreria.mx", "password": "***"}
	expected, _ := json.Marshal(expectedMap)
	loginReq := Login{Email: "nadia@postreria.mx", Password: "hunter2hunter2"}

	actual, _ := json.Marshal(loginReq)

	assert.EqualValues(t, expected, actual)
	assert.EqualValues(t, "hunter2hunter2", loginReq.Password)
}

func TestRegisterMasksPassword(t *testing.T) {
	expectedMap := map[string]string{
		"username": "nadia",
		"email":    "nadia@postreria.mx",
		"password": "***",
	}
	expected, _ := json.Marshal(expectedMap)
	registerReq := Register{
		Username: "nadia",
		Email:    "nadia@postreria.mx",
		Password: "hunter2hunter2",
	}

	actual, _ := json.Marshal(registerReq)

	assert.JSONEq(t, string(expected), string(actual))
	assert.EqualValues(t, "hunter2hunter2", registerReq.Password)
}
