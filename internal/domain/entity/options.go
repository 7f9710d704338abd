package entity

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// DishID identificador de plato normalizado al ingresar al sistema.
type DishID string

// String implementa fmt.Stringer.
func (id DishID) String() string { return string(id) }

// NormalizeDishID convierte las formas en que llega la referencia a un plato
// (texto, número, objeto embebido con _id/id, ObjectID de Mongo) en un DishID.
func NormalizeDishID(v any) DishID {
	switch t := v.(type) {
	case nil:
		return ""
	case DishID:
		return t
	case string:
		return DishID(strings.TrimSpace(t))
	case json.Number:
		return DishID(t.String())
	case float64:
		return DishID(strconv.FormatFloat(t, 'f', -1, 64))
	case int:
		return DishID(strconv.Itoa(t))
	case int32:
		return DishID(strconv.FormatInt(int64(t), 10))
	case int64:
		return DishID(strconv.FormatInt(t, 10))
	case map[string]any:
		for _, k := range []string{"_id", "id", "$oid"} {
			if inner, ok := t[k]; ok {
				if id := NormalizeDishID(inner); id != "" {
					return id
				}
			}
		}
		return ""
	case interface{ Hex() string }:
		return DishID(t.Hex())
	default:
		return ""
	}
}

// UnmarshalJSON aplica NormalizeDishID sobre el valor recibido.
func (id *DishID) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	*id = NormalizeDishID(v)
	return nil
}

// OptionValue valor elegido para un tipo de opción. Puede ser un escalar
// ("large", 2, true) o un objeto ({"label": "Grande", "value": "large"}).
type OptionValue struct {
	scalar string
	object bool
	label  string
	name   string
	value  string
	raw    json.RawMessage
}

// TextOption construye un valor escalar de texto.
func TextOption(s string) OptionValue {
	raw, _ := json.Marshal(s)
	return OptionValue{scalar: s, raw: raw}
}

// IsObject indica si el valor llegó como objeto o arreglo.
func (v OptionValue) IsObject() bool { return v.object }

// Text devuelve el texto de un valor escalar; vacío para objetos.
func (v OptionValue) Text() string { return v.scalar }

// Display representación para recibos: escalar tal cual; objetos por label, name, value
// y como último recurso el JSON compacto.
func (v OptionValue) Display() string {
	if !v.object {
		return v.scalar
	}
	for _, s := range []string{v.label, v.name, v.value} {
		if s != "" {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, v.raw); err != nil {
		return string(v.raw)
	}
	return buf.String()
}

// UnmarshalJSON conserva el valor crudo y extrae los campos de presentación.
func (v *OptionValue) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	*v = OptionValue{raw: append(json.RawMessage(nil), trimmed...)}
	if len(trimmed) == 0 {
		return nil
	}
	switch trimmed[0] {
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return err
		}
		v.object = true
		v.label = scalarText(fields["label"])
		v.name = scalarText(fields["name"])
		v.value = scalarText(fields["value"])
	case '[':
		var arr []json.RawMessage
		if err := json.Unmarshal(trimmed, &arr); err != nil {
			return err
		}
		v.object = true
	default:
		v.scalar = scalarText(trimmed)
	}
	return nil
}

// MarshalJSON devuelve el valor tal como llegó.
func (v OptionValue) MarshalJSON() ([]byte, error) {
	if len(v.raw) == 0 {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// scalarText texto de un escalar JSON: strings sin comillas, números y booleanos literales.
func scalarText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	if raw[0] == '{' || raw[0] == '[' {
		return ""
	}
	return string(raw)
}

// SelectedOptions opciones elegidas en una línea del pedido: tipo de opción → valor.
type SelectedOptions map[string]OptionValue
