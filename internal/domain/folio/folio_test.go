package folio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext(t *testing.T) {
	assert.Equal(t, "SIS-134", Responsiva.Next(0))
	assert.Equal(t, "BAJA-141", Baja.Next(0))
	assert.Equal(t, "BAJA-141", Baja.Next(12))
	assert.Equal(t, "MAN-201", Mantenimiento.Next(200))
}

func TestNumber(t *testing.T) {
	n, err := Baja.Number("BAJA-141")
	require.NoError(t, err)
	assert.Equal(t, 141, n)

	_, err = Baja.Number("MAN-141")
	assert.Error(t, err)
}

func TestLockKey_DistintaPorSerie(t *testing.T) {
	assert.NotEqual(t, Baja.LockKey(), Mantenimiento.LockKey())
	assert.Equal(t, Baja.LockKey(), Series{Prefix: "BAJA-", Base: 1}.LockKey())
}
