// Package textnorm normaliza texto en español para comparaciones y nombres de archivo.
package textnorm

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold quita acentos, espacios sobrantes y pasa a minúsculas: "  Miércoles " -> "miercoles".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(strings.TrimSpace(out))
}

// SafeFileName reduce un nombre de archivo recibido a caracteres seguros
// conservando la extensión: "Acta Baja (firmada).PDF" -> "acta-baja-firmada.pdf".
func SafeFileName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	ext := Fold(filepath.Ext(base))
	stem := Fold(strings.TrimSuffix(base, filepath.Ext(base)))

	var b strings.Builder
	dash := false
	for _, r := range stem {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	clean := strings.TrimSuffix(b.String(), "-")
	if clean == "" {
		clean = "archivo"
	}
	return clean + ext
}
