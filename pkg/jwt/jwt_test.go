package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/hisaab-kitaab/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "yasir", "hisaab-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	username, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "yasir", username)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "yasir", "hisaab-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "yasir", "hisaab-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestJWT_SinUsername_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "", "hisaab-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestJWT_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "yasir", "hisaab-test", 60)
	assert.Error(t, err)
}
