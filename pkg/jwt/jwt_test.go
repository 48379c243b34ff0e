package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "secreto-de-pruebas"

func TestGenerateParse(t *testing.T) {
	tok, err := Generate(secret, 42, 1, "inventarios-api", 240)
	require.NoError(t, err)

	uid, role, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), uid)
	assert.Equal(t, 1, role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := Generate(secret, 42, 2, "inventarios-api", 240)
	require.NoError(t, err)

	_, _, err = Parse("otro-secreto", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := Generate(secret, 42, 2, "inventarios-api", -1)
	require.NoError(t, err)

	_, _, err = Parse(secret, tok)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", 1, 1, "x", 10)
	assert.Error(t, err)

	_, _, err = Parse("", "token")
	assert.Error(t, err)
}
