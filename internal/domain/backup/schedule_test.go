package backup

import (
	"testing"

	"github.com/jhoicas/inventarios-api/internal/domain"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCronSpec(t *testing.T) {
	tests := []struct {
		name string
		in   entity.BackupSchedule
		want string
	}{
		{"diario", entity.BackupSchedule{Tipo: "diario", Hora: "02:30"}, "30 2 * * *"},
		{"semanal con acento", entity.BackupSchedule{Tipo: "semanal", DiaSemana: "Miércoles", Hora: "23:05"}, "5 23 * * 3"},
		{"semanal domingo", entity.BackupSchedule{Tipo: "semanal", DiaSemana: "domingo", Hora: "00:00"}, "0 0 * * 0"},
		{"mensual", entity.BackupSchedule{Tipo: "mensual", DiaMes: 15, Hora: "10:00:00"}, "0 10 15 * *"},
		{"anual", entity.BackupSchedule{Tipo: "Anual", MesAnual: "diciembre", Hora: "08:45"}, "45 8 1 12 *"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CronSpec(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCronSpec_Invalidos(t *testing.T) {
	cases := []entity.BackupSchedule{
		{Tipo: "diario", Hora: "25:00"},
		{Tipo: "diario", Hora: "dos"},
		{Tipo: "semanal", DiaSemana: "feriado", Hora: "01:00"},
		{Tipo: "mensual", DiaMes: 32, Hora: "01:00"},
		{Tipo: "anual", MesAnual: "brumario", Hora: "01:00"},
		{Tipo: "quincenal", Hora: "01:00"},
	}
	for _, c := range cases {
		_, err := CronSpec(c)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", c)
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "BKP-2025-06-01.sql.gz", FileName("2025-06-01"))
}
