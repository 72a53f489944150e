package typescript

import (
	"fmt"
	"strings"

	"github.com/teranos/movets/errors"
	"github.com/teranos/movets/idl"
	"github.com/teranos/movets/logger"
	"github.com/teranos/movets/typegen/util"
)

// PayloadTypeName is the payload type of a function: transfer -> TransferPayload.
func PayloadTypeName(f *idl.Function) string {
	return util.ToPascalCase(f.Name) + "Payload"
}

// needsPayload reports whether f takes any arguments or type arguments.
func needsPayload(f *idl.Function) bool {
	return len(f.Args) > 0 || len(f.TypeArgs) > 0
}

// RenderPayloadType renders the payload argument type of f, or "" when f
// takes no arguments and no type arguments.
func (e *Emitter) RenderPayloadType(f *idl.Function) (string, error) {
	if !needsPayload(f) {
		return "", nil
	}

	var records []string
	if len(f.Args) > 0 {
		mode := e.format.ModeFor(SitePayloadArgument)
		entries := make([]string, 0, len(f.Args))
		for _, arg := range f.Args {
			// Payload records are not generic, so type parameters render as unknown.
			ty, err := e.mapper.Map(arg.Type, nil, mode)
			if err != nil {
				return "", errors.Wrapf(err, "function %s argument %s", f.Name, arg.Name)
			}
			doc := fmt.Sprintf("IDL type: `%s`", arg.Type)
			entries = append(entries, withDoc(doc, util.PropertyKey(arg.Name)+": "+ty+";"))
		}
		records = append(records, "args: {\n"+Indent(strings.Join(entries, "\n"))+"\n};")
	}
	if len(f.TypeArgs) > 0 {
		entries := make([]string, len(f.TypeArgs))
		for i, name := range f.TypeArgs {
			entries[i] = util.PropertyKey(name) + ": " + tsString + ";"
		}
		records = append(records, "typeArgs: {\n"+Indent(strings.Join(entries, "\n"))+"\n};")
	}

	doc := fmt.Sprintf("Payload arguments for {@link entrypoints.%s}.", f.Name)
	decl := "export type " + PayloadTypeName(f) + " = {\n" + Indent(strings.Join(records, "\n")) + "\n};"
	return withDoc(doc, decl), nil
}

// RenderBuilder renders the entrypoint builder of f as an object-literal member.
func (e *Emitter) RenderBuilder(module idl.ModuleID, f *idl.Function) (string, error) {
	var params []string
	if len(f.Args) > 0 {
		params = append(params, "args")
	}
	if len(f.TypeArgs) > 0 {
		params = append(params, "typeArgs")
	}

	signature := "()"
	if len(params) > 0 {
		signature = "({ " + strings.Join(params, ", ") + " }: " + PayloadTypeName(f) + ")"
	}

	typeArgs := make([]string, len(f.TypeArgs))
	for i, name := range f.TypeArgs {
		typeArgs[i] = "typeArgs" + accessor(name)
	}

	mode := e.format.ModeFor(SiteArgumentSerializer)
	args := make([]string, len(f.Args))
	for i, arg := range f.Args {
		typed, err := e.mapper.Map(arg.Type, nil, mode)
		if err != nil {
			return "", errors.Wrapf(err, "function %s argument %s", f.Name, arg.Name)
		}
		args[i] = e.format.SerializeArgument(typed, "args"+accessor(arg.Name))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s: %s => ({\n", util.PropertyKey(f.Name), signature, e.format.PayloadType)
	fmt.Fprintf(&sb, "  type: %q,\n", e.format.PayloadKind)
	fmt.Fprintf(&sb, "  function: %q,\n", module.String()+"::"+f.Name)
	fmt.Fprintf(&sb, "  type_arguments: [%s],\n", strings.Join(typeArgs, ", "))
	fmt.Fprintf(&sb, "  arguments: [%s],\n", strings.Join(args, ", "))
	sb.WriteString("}),")

	e.logger.Debugw("Rendered builder",
		logger.FieldFunction, module.String()+"::"+f.Name,
		"args", len(f.Args),
		"type_args", len(f.TypeArgs))
	return withDoc(f.Doc, sb.String()), nil
}

// SerializeArgument wraps expr in the serializer its Typed mapping calls
// for. Selection looks only at the mapped type string.
func (f Format) SerializeArgument(typed, expr string) string {
	return f.serialize(typed, expr, 0)
}

func (f Format) serialize(typed, expr string, depth int) string {
	switch {
	case typed == f.U64:
		return f.SerializeU64 + "(" + expr + ")"
	case typed == f.U128:
		return f.SerializeU128 + "(" + expr + ")"
	case f.isHexWrapper(typed):
		return f.SerializeHexString + "(" + expr + ")"
	}

	if elem, ok := arrayElem(typed); ok {
		item := fmt.Sprintf("item%d", depth)
		body := f.serialize(elem, item, depth+1)
		if body == item {
			return expr
		}
		return expr + ".map((" + item + ") => " + body + ")"
	}
	return expr
}

// arrayElem unwraps ReadonlyArray<T> to T.
func arrayElem(typed string) (string, bool) {
	if !strings.HasPrefix(typed, readonlyArrayOpen) || !strings.HasSuffix(typed, ">") {
		return "", false
	}
	return typed[len(readonlyArrayOpen) : len(typed)-1], true
}

// accessor renders a property access: ".to" or `["default"]`.
func accessor(name string) string {
	if util.IsIdentifier(name) {
		return "." + name
	}
	return "[" + util.PropertyKey(name) + "]"
}
