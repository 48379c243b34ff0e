package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

var jsonNull = []byte("null")

// Flag booleano que acepta true/false, 1/0 y "1"/"0" (el front manda enteros).
// Se serializa como booleano.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, jsonNull) {
		return nil
	}
	s := strings.Trim(string(b), `"`)
	switch strings.ToLower(s) {
	case "true", "1":
		*f = true
	case "false", "0", "":
		*f = false
	default:
		return fmt.Errorf("valor booleano inválido: %s", b)
	}
	return nil
}

// BoolPtr nil si el campo no vino.
func (f *Flag) BoolPtr() *bool {
	if f == nil {
		return nil
	}
	v := bool(*f)
	return &v
}

// Num entero que también acepta su forma de texto ("2").
type Num int

func (n *Num) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, jsonNull) {
		return nil
	}
	s := strings.TrimSpace(strings.Trim(string(b), `"`))
	if s == "" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("entero inválido: %s", b)
	}
	*n = Num(v)
	return nil
}

// OneOrMany lista que acepta también un valor suelto; null y "" no filtran.
type OneOrMany[T any] []T

func (l *OneOrMany[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, jsonNull) || bytes.Equal(b, []byte(`""`)) {
		*l = nil
		return nil
	}
	if len(b) > 0 && b[0] == '[' {
		var many []T
		if err := json.Unmarshal(b, &many); err != nil {
			return err
		}
		*l = many
		return nil
	}
	var one T
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	*l = OneOrMany[T]{one}
	return nil
}

// IDList ids de equipos; acepta números o los objetos completos ({"id": 3, ...})
// que manda la previsualización.
type IDList []int64

func (l *IDList) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(IDList, 0, len(raw))
	for _, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) > 0 && item[0] == '{' {
			var obj struct {
				ID int64 `json:"id"`
			}
			if err := json.Unmarshal(item, &obj); err != nil {
				return err
			}
			out = append(out, obj.ID)
			continue
		}
		var id Num
		if err := id.UnmarshalJSON(item); err != nil {
			return err
		}
		out = append(out, int64(id))
	}
	*l = out
	return nil
}
