package typescript

import (
	"strings"

	"github.com/teranos/movets/errors"
	"github.com/teranos/movets/idl"
	"github.com/teranos/movets/logger"
)

// StructTypeName is the exported type name of a struct: Balance -> BalanceData.
func StructTypeName(s *idl.Struct) string {
	return s.Name.Name + "Data"
}

// GenerateStruct renders the type declaration of one struct. Phantom
// parameters are left out of the generic list; field references to them
// render as unknown. Marker structs render as "".
func (e *Emitter) GenerateStruct(s *idl.Struct) (string, error) {
	if e.format.IsMarker(s) {
		return "", nil
	}

	scope := make([]string, len(s.TypeParams))
	var generics []string
	for i, p := range s.TypeParams {
		if p.IsPhantom {
			scope[i] = tsUnknown
			continue
		}
		scope[i] = p.Name
		generics = append(generics, p.Name+" = "+tsUnknown)
	}

	var sb strings.Builder
	sb.WriteString("export type ")
	sb.WriteString(StructTypeName(s))
	if len(generics) > 0 {
		sb.WriteString("<" + strings.Join(generics, ", ") + ">")
	}
	sb.WriteString(" = ")

	if len(s.Fields) == 0 {
		sb.WriteString(tsEmpty + ";")
		return withDoc(s.Doc, sb.String()), nil
	}

	body, err := e.mapper.fields(s.Fields, scope, e.format.ModeFor(SiteStructField))
	if err != nil {
		return "", errors.Wrapf(err, "struct %s", s.Name)
	}
	sb.WriteString("{\n")
	sb.WriteString(Indent(body))
	sb.WriteString("\n};")

	e.logger.Debugw("Rendered struct",
		logger.FieldStruct, s.Name.String(),
		"fields", len(s.Fields),
		"generics", len(generics))
	return withDoc(s.Doc, sb.String()), nil
}
