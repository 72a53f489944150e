package typescript

import (
	"strings"

	"github.com/teranos/movets/errors"
	"github.com/teranos/movets/idl"
	"github.com/teranos/movets/typegen/util"
)

const (
	tsBoolean = "boolean"
	tsNumber  = "number"
	tsString  = "string"
	tsUnknown = "unknown"
	tsEmpty   = "Record<string, never>"

	readonlyArrayOpen = "ReadonlyArray<"
)

// Mapper turns IDL types into TypeScript type expressions.
type Mapper struct {
	structs idl.StructTable
	format  Format
}

// NewMapper creates a mapper resolving struct references against structs.
func NewMapper(structs idl.StructTable, format Format) *Mapper {
	return &Mapper{structs: structs, format: format}
}

// Map renders t. scope holds the names bound to the enclosing generic
// parameters by position; indices outside scope render as unknown.
func (m *Mapper) Map(t idl.Type, scope []string, mode Mode) (string, error) {
	switch t := t.(type) {
	case idl.Bool:
		return tsBoolean, nil
	case idl.U8:
		return tsNumber, nil
	case idl.U64:
		return m.format.wrapper(m.format.U64, mode), nil
	case idl.U128:
		return m.format.wrapper(m.format.U128, mode), nil
	case idl.Address:
		return m.format.wrapper(m.format.RawAddress, mode), nil
	case idl.Signer:
		return m.format.wrapper(m.format.RawSigner, mode), nil

	case idl.Vector:
		if _, isByte := t.Elem.(idl.U8); isByte {
			return m.format.wrapper(m.format.ByteString, mode), nil
		}
		inner, err := m.Map(t.Elem, scope, mode)
		if err != nil {
			return "", err
		}
		return readonlyArrayOpen + inner + ">", nil

	case idl.StructRef:
		return m.mapStruct(t, scope, mode)

	case idl.TypeParameter:
		if t.Index >= 0 && t.Index < len(scope) {
			return scope[t.Index], nil
		}
		return tsUnknown, nil

	case idl.Tuple:
		return "", errors.Wrapf(errors.ErrUnsupportedType, "%s", t)
	}
	return "", errors.Wrapf(errors.ErrUnsupportedType, "%T", t)
}

// mapStruct expands a struct reference inline with its type arguments
// bound to the referenced struct's own parameters.
func (m *Mapper) mapStruct(ref idl.StructRef, scope []string, mode Mode) (string, error) {
	if m.format.IsNativeString(ref.Name) {
		return tsString, nil
	}

	def, ok := m.structs.Lookup(ref.Name)
	if !ok {
		return "", errors.WithHint(
			errors.Wrapf(errors.ErrUnresolvedStructReference, "%s", ref.Name),
			"the IDL must include every module the package depends on",
		)
	}
	if m.format.IsMarker(def) || len(def.Fields) == 0 {
		return tsEmpty, nil
	}

	inner := make([]string, len(def.TypeParams))
	for i := range def.TypeParams {
		if i >= len(ref.TypeArgs) {
			inner[i] = tsUnknown
			continue
		}
		arg, err := m.Map(ref.TypeArgs[i], scope, mode)
		if err != nil {
			return "", errors.Wrapf(err, "type argument %d of %s", i, ref.Name)
		}
		inner[i] = arg
	}

	body, err := m.fields(def.Fields, inner, mode)
	if err != nil {
		return "", errors.Wrapf(err, "expanding %s", ref.Name)
	}
	return "{\n" + Indent(body) + "\n}", nil
}

// fields renders one "name: type;" entry per field in declaration order.
func (m *Mapper) fields(fields []idl.Field, scope []string, mode Mode) (string, error) {
	entries := make([]string, 0, len(fields))
	for _, f := range fields {
		ty, err := m.Map(f.Type, scope, mode)
		if err != nil {
			return "", errors.Wrapf(err, "field %s", f.Name)
		}
		entries = append(entries, withDoc(f.Doc, util.PropertyKey(f.Name)+": "+ty+";"))
	}
	return strings.Join(entries, "\n"), nil
}
