package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/swifthomes-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

var testSubject = pkgjwt.Subject{
	SessionID:      "00000000-0000-0000-0000-0000000000aa",
	UserID:         "00000000-0000-0000-0000-000000000001",
	OrganizationID: "00000000-0000-0000-0000-000000000002",
	Role:           "tenant",
}

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "swifthomes-test", 60, testSubject)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testSubject.SessionID, claims.SessionID)
	assert.Equal(t, testSubject.SessionID, claims.ID)
	assert.Equal(t, testSubject.UserID, claims.UserID)
	assert.Equal(t, testSubject.OrganizationID, claims.OrganizationID)
	assert.Equal(t, "tenant", claims.Role)
	assert.Equal(t, "swifthomes-test", claims.Issuer)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "swifthomes-test", -1, testSubject)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "swifthomes-test", 60, testSubject)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestParse_SinSesion(t *testing.T) {
	sub := testSubject
	sub.SessionID = ""
	tok, err := pkgjwt.Generate(testSecret, "swifthomes-test", 60, sub)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestGenerate_SinSecret(t *testing.T) {
	_, err := pkgjwt.Generate("", "swifthomes-test", 60, testSubject)
	assert.Error(t, err)
}
