// Package backup traduce la configuración de respaldo automático a una expresión cron.
package backup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/inventarios-api/internal/domain"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/pkg/textnorm"
)

var weekdays = map[string]int{
	"domingo": 0, "lunes": 1, "martes": 2, "miercoles": 3,
	"jueves": 4, "viernes": 5, "sabado": 6,
}

var months = map[string]int{
	"enero": 1, "febrero": 2, "marzo": 3, "abril": 4, "mayo": 5, "junio": 6,
	"julio": 7, "agosto": 8, "septiembre": 9, "octubre": 10, "noviembre": 11, "diciembre": 12,
}

// CronSpec devuelve la expresión de 5 campos (min hora día-mes mes día-semana).
func CronSpec(s entity.BackupSchedule) (string, error) {
	hour, minute, err := ParseHora(s.Hora)
	if err != nil {
		return "", err
	}

	switch textnorm.Fold(s.Tipo) {
	case entity.BackupDaily:
		return fmt.Sprintf("%d %d * * *", minute, hour), nil
	case entity.BackupWeekly:
		dow, ok := weekdays[textnorm.Fold(s.DiaSemana)]
		if !ok {
			return "", fmt.Errorf("%w: día de la semana %q", domain.ErrInvalidInput, s.DiaSemana)
		}
		return fmt.Sprintf("%d %d * * %d", minute, hour, dow), nil
	case entity.BackupMonthly:
		if s.DiaMes < 1 || s.DiaMes > 31 {
			return "", fmt.Errorf("%w: día del mes %d", domain.ErrInvalidInput, s.DiaMes)
		}
		return fmt.Sprintf("%d %d %d * *", minute, hour, s.DiaMes), nil
	case entity.BackupYearly:
		month, ok := months[textnorm.Fold(s.MesAnual)]
		if !ok {
			return "", fmt.Errorf("%w: mes %q", domain.ErrInvalidInput, s.MesAnual)
		}
		return fmt.Sprintf("%d %d 1 %d *", minute, hour, month), nil
	default:
		return "", fmt.Errorf("%w: tipo de respaldo %q", domain.ErrInvalidInput, s.Tipo)
	}
}

// ParseHora interpreta "HH:MM" (acepta también "HH:MM:SS").
func ParseHora(hora string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(hora), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, fmt.Errorf("%w: hora %q", domain.ErrInvalidInput, hora)
	}
	hour, errH := strconv.Atoi(parts[0])
	minute, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: hora %q", domain.ErrInvalidInput, hora)
	}
	return hour, minute, nil
}

// FileName nombre del respaldo para una fecha YYYY-MM-DD.
func FileName(date string) string {
	return "BKP-" + date + ".sql.gz"
}
