// Package folio genera los números de documento consecutivos (SIS-134, BAJA-141, MAN-141).
package folio

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// Series define el prefijo y el número base de una serie de folios.
// El primer folio emitido es Base+1.
type Series struct {
	Prefix string
	Base   int
}

var (
	Responsiva    = Series{Prefix: "SIS-", Base: 133}
	Baja          = Series{Prefix: "BAJA-", Base: 140}
	Mantenimiento = Series{Prefix: "MAN-", Base: 140}
)

// Next devuelve el folio siguiente al mayor número existente.
// Sin folios previos (o por debajo de la base) se continúa desde la base.
func (s Series) Next(maxExisting int) string {
	n := maxExisting
	if n < s.Base {
		n = s.Base
	}
	return s.Prefix + strconv.Itoa(n+1)
}

// Number extrae la parte numérica de un folio de la serie.
func (s Series) Number(folio string) (int, error) {
	if !strings.HasPrefix(folio, s.Prefix) {
		return 0, fmt.Errorf("folio %q fuera de la serie %s", folio, s.Prefix)
	}
	return strconv.Atoi(strings.TrimPrefix(folio, s.Prefix))
}

// LockKey clave estable para pg_advisory_xact_lock de la serie.
func (s Series) LockKey() int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("folio:" + s.Prefix))
	return int64(h.Sum64())
}
