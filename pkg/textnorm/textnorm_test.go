package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "miercoles", Fold("  Miércoles "))
	assert.Equal(t, "sabado", Fold("SÁBADO"))
	assert.Equal(t, "diciembre", Fold("diciembre"))
}

func TestSafeFileName(t *testing.T) {
	assert.Equal(t, "acta-baja-firmada.pdf", SafeFileName("Acta Baja (firmada).PDF"))
	assert.Equal(t, "passwd", SafeFileName("../../etc/passwd"))
	assert.Equal(t, "archivo.pdf", SafeFileName("###.pdf"))
	assert.Equal(t, "resguardo-n-5.pdf", SafeFileName(`C:\docs\Resguardo Nº 5.pdf`))
}
