package typescript

import (
	"encoding/json"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"

	"github.com/teranos/movets/errors"
	"github.com/teranos/movets/idl"
	"github.com/teranos/movets/logger"
	"github.com/teranos/movets/typegen"
)

// Per-module unit names
const (
	unitIndex  = "index"
	unitIDL    = "idl"
	unitEntry  = "entry"
	unitErrors = "errors"
)

// Emitter renders the declarations and units of one package. It resolves
// struct references against the package-wide struct table.
type Emitter struct {
	format  Format
	mapper  *Mapper
	logger  *zap.SugaredLogger
	version string
}

// NewEmitter creates an emitter over structs. A nil logger disables logging.
func NewEmitter(structs idl.StructTable, format Format, log *zap.SugaredLogger) *Emitter {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Emitter{
		format: format,
		mapper: NewMapper(structs, format),
		logger: log,
	}
}

// Mapper returns the emitter's type mapper.
func (e *Emitter) Mapper() *Mapper {
	return e.mapper
}

// ModuleNames are the name tables a module exposes for runtime lookups:
// short struct name -> fully qualified name, for all structs and for
// resources only, and function name -> function IDL.
type ModuleNames struct {
	Structs   *orderedmap.OrderedMap[string, string]
	Resources *orderedmap.OrderedMap[string, string]
	Functions *orderedmap.OrderedMap[string, idl.Function]
}

// BuildModuleNames folds a module's structs and functions into its name tables.
func BuildModuleNames(m *idl.Module) ModuleNames {
	names := ModuleNames{
		Structs:   orderedmap.New[string, string](),
		Resources: orderedmap.New[string, string](),
		Functions: orderedmap.New[string, idl.Function](),
	}
	for _, f := range m.Functions {
		names.Functions.Set(f.Name, f)
	}
	for i := range m.Structs {
		s := &m.Structs[i]
		names.Structs.Set(s.Name.Name, s.Name.String())
		if s.IsResource() {
			names.Resources.Set(s.Name.Name, s.Name.String())
		}
	}
	return names
}

// GenerateModule renders every unit of m under dir.
func (e *Emitter) GenerateModule(m *idl.Module, dir string) ([]typegen.File, error) {
	log := e.logger.With(logger.FieldModule, m.ID.String())
	path := func(unit string) string { return dir + "/" + e.format.FileName(unit) }

	var files []typegen.File

	index, err := e.moduleIndex(m)
	if err != nil {
		return nil, errors.Wrapf(err, "module %s", m.ID)
	}
	files = append(files, typegen.File{Path: path(unitIndex), Content: index})

	idlUnit, err := e.moduleIDL(m)
	if err != nil {
		return nil, errors.Wrapf(err, "module %s", m.ID)
	}
	files = append(files, typegen.File{Path: path(unitIDL), Content: idlUnit})

	if len(m.Functions) > 0 {
		entry, err := e.moduleEntry(m)
		if err != nil {
			return nil, errors.Wrapf(err, "module %s", m.ID)
		}
		files = append(files, typegen.File{Path: path(unitEntry), Content: entry})
	}

	if len(m.Errors) > 0 {
		files = append(files, typegen.File{Path: path(unitErrors), Content: e.moduleErrors(m)})
	}

	log.Debugw("Generated module",
		logger.FieldPath, dir,
		logger.FieldCount, len(files),
		"structs", len(m.Structs),
		"functions", len(m.Functions),
		"errors", len(m.Errors))
	return files, nil
}

// header starts every generated unit.
func (e *Emitter) header() string {
	var sb strings.Builder
	sb.WriteString("/* eslint-disable */\n")
	sb.WriteString("// Code generated by movets. DO NOT EDIT.\n")
	if e.version != "" {
		sb.WriteString(typegen.MetadataPrefix + " movets " + e.version + "\n")
	}
	return sb.String()
}

// moduleDoc is the @module block opening a unit.
func moduleDoc(text string) string {
	return DocString(text+"\n\n@module") + "\n"
}

func (e *Emitter) moduleIndex(m *idl.Module) (string, error) {
	id := m.ID
	names := BuildModuleNames(m)

	var sb strings.Builder
	sb.WriteString(e.header())
	sb.WriteString("\n")

	doc := fmt.Sprintf("**Module ID:** `%s`", id)
	if m.Doc != "" {
		doc = Dedent(m.Doc) + "\n\n" + doc
	}
	sb.WriteString(moduleDoc(doc))
	sb.WriteString("\n")

	sb.WriteString(e.format.ImportLine() + "\n\n")
	if len(m.Functions) > 0 {
		fmt.Fprintf(&sb, "import { entrypoints } from %q;\n", e.format.ImportPath(unitEntry))
	}
	fmt.Fprintf(&sb, "import { idl } from %q;\n\n", e.format.ImportPath(unitIDL))

	if len(m.Functions) > 0 {
		fmt.Fprintf(&sb, "export * as entry from %q;\n", e.format.ImportPath(unitEntry))
	}
	if len(m.Errors) > 0 {
		fmt.Fprintf(&sb, "export * as errors from %q;\n", e.format.ImportPath(unitErrors))
	}
	sb.WriteString("export { idl };\n\n")

	fmt.Fprintf(&sb, "/** The address of the module. */\nexport const ADDRESS = %q as const;\n", string(id.Address))
	fmt.Fprintf(&sb, "/** The full module name. */\nexport const FULL_NAME = %q as const;\n", id.String())
	fmt.Fprintf(&sb, "/** The name of the module. */\nexport const NAME = %q as const;\n\n", id.Name)
	sb.WriteString("/** Module ID information. */\nexport const id = {\n  ADDRESS,\n  FULL_NAME,\n  NAME,\n} as const;\n\n")

	errorCodes, err := prettyJSON(m.Errors)
	if err != nil {
		return "", err
	}
	functions, err := prettyJSON(names.Functions)
	if err != nil {
		return "", err
	}
	structs, err := prettyJSON(names.Structs)
	if err != nil {
		return "", err
	}
	resources, err := prettyJSON(names.Resources)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&sb, "/** Module error codes. */\nexport const errorCodes = %s as const;\n\n", errorCodes)
	fmt.Fprintf(&sb, "/** All module function IDLs. */\nexport const functions = %s as const;\n\n", functions)
	fmt.Fprintf(&sb, "/** All struct types with ability `key`. */\nexport const resources = %s as const;\n\n", resources)
	fmt.Fprintf(&sb, "/** All struct types. */\nexport const structs = %s as const;\n\n", structs)

	for i := range m.Structs {
		decl, err := e.GenerateStruct(&m.Structs[i])
		if err != nil {
			return "", err
		}
		if decl == "" {
			continue
		}
		sb.WriteString(decl)
		sb.WriteString("\n\n")
	}

	fmt.Fprintf(&sb, "/** Payload generators for module `%s`. */\n", id)
	sb.WriteString("const moduleImpl = {\n  ...id,\n  idl,\n  errorCodes,\n  functions,\n  resources,\n  structs,\n")
	if len(m.Functions) > 0 {
		sb.WriteString("\n  ...entrypoints,\n")
	}
	sb.WriteString("} as const;\n\n")

	sb.WriteString(withDoc(m.Doc, fmt.Sprintf(
		"export const moduleDefinition = moduleImpl as %s<%q, %q> as typeof moduleImpl;\n",
		e.format.ModuleDefinitionType, string(id.Address), id.Name)))
	return sb.String(), nil
}

func (e *Emitter) moduleIDL(m *idl.Module) (string, error) {
	literal, err := json.Marshal(m)
	if err != nil {
		return "", errors.Wrapf(errors.ErrSerializationFailure, "module %s: %v", m.ID, err)
	}

	var sb strings.Builder
	sb.WriteString(e.header())
	sb.WriteString("\n")
	sb.WriteString(moduleDoc(fmt.Sprintf("The IDL of module `%s`.", m.ID)))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "/** The IDL of the module. */\nexport const idl = %s as const;\n", literal)
	return sb.String(), nil
}

func (e *Emitter) moduleEntry(m *idl.Module) (string, error) {
	var payloads, builders []string
	for i := range m.Functions {
		f := &m.Functions[i]
		payload, err := e.RenderPayloadType(f)
		if err != nil {
			return "", err
		}
		if payload != "" {
			payloads = append(payloads, payload)
		}
		builder, err := e.RenderBuilder(m.ID, f)
		if err != nil {
			return "", err
		}
		builders = append(builders, builder)
	}

	var sb strings.Builder
	sb.WriteString(e.header())
	sb.WriteString("\n")
	sb.WriteString(moduleDoc(fmt.Sprintf("Entrypoint builders for module `%s`.", m.ID)))
	sb.WriteString("\n")
	sb.WriteString(e.format.ImportLine() + "\n\n")
	for _, p := range payloads {
		sb.WriteString(p)
		sb.WriteString("\n\n")
	}
	sb.WriteString("/** Entrypoint builders. */\nexport const entrypoints = {\n")
	sb.WriteString(Indent(strings.Join(builders, "\n")))
	sb.WriteString("\n} as const;\n")
	return sb.String(), nil
}

func (e *Emitter) moduleErrors(m *idl.Module) string {
	var sb strings.Builder
	sb.WriteString(e.header())
	sb.WriteString("\n")
	sb.WriteString(moduleDoc(fmt.Sprintf("Errors for module `%s`.", m.ID)))

	for _, er := range m.Errors {
		var body strings.Builder
		fmt.Fprintf(&body, "export const %s = {\n", er.Name)
		fmt.Fprintf(&body, "  code: %d,\n", er.Code)
		fmt.Fprintf(&body, "  name: %q,\n", er.Name)
		if er.Doc != "" {
			docJSON, _ := json.Marshal(er.Doc)
			fmt.Fprintf(&body, "  doc: %s,\n", docJSON)
		}
		body.WriteString("} as const;\n")

		sb.WriteString("\n")
		sb.WriteString(withDoc(er.Doc, body.String()))
	}
	return sb.String()
}

// prettyJSON renders v as an indented JSON literal.
func prettyJSON(v interface{}) (string, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", errors.Wrapf(errors.ErrSerializationFailure, "%v", err)
	}
	return string(out), nil
}
