package typescript

import (
	"strings"

	"github.com/teranos/movets/idl"
)

// Mode selects how wide integers and address-like values render.
type Mode int

const (
	// Typed renders prelude wrapper types (p.U64, p.RawAddress, ...)
	Typed Mode = iota
	// Stringified collapses wrapper types to string for loosely typed input
	Stringified
)

func (m Mode) String() string {
	switch m {
	case Typed:
		return "typed"
	case Stringified:
		return "stringified"
	}
	return "unknown"
}

// Site names a place in the output where a type expression is rendered.
type Site int

const (
	// SiteStructField is a struct declaration field, including inline expansions
	SiteStructField Site = iota
	// SitePayloadArgument is an entry in a payload type's args record
	SitePayloadArgument
	// SiteArgumentSerializer is the mapping used to pick an argument serializer
	SiteArgumentSerializer
)

// Format is every literal the TypeScript generator emits that has varied
// across prelude revisions.
type Format struct {
	PreludeModule string
	PreludeAlias  string

	FileExtension   string
	ImportExtension string

	// Wrapper types
	U64          string
	U128         string
	RawAddress   string
	RawSigner    string
	ByteString   string
	HexStringArg string

	// Serializer functions
	SerializeU64       string
	SerializeU128      string
	SerializeHexString string

	PayloadKind          string
	PayloadType          string
	ModuleDefinitionType string

	// NativeStrings are struct tags rendered as the TypeScript string type
	NativeStrings []string

	// MarkerField is the sole boolean field the compiler gives empty structs
	MarkerField string

	// Modes is the per-site mode policy
	Modes map[Site]Mode
}

// DefaultFormat targets @movingco/prelude imported as p.
func DefaultFormat() Format {
	return NewFormat("p", "@movingco/prelude")
}

// NewFormat derives every prelude reference from the import alias.
func NewFormat(alias, module string) Format {
	ref := func(name string) string { return alias + "." + name }
	return Format{
		PreludeModule:   module,
		PreludeAlias:    alias,
		FileExtension:   "ts",
		ImportExtension: "js",

		U64:          ref("U64"),
		U128:         ref("U128"),
		RawAddress:   ref("RawAddress"),
		RawSigner:    ref("RawSigner"),
		ByteString:   ref("ByteString"),
		HexStringArg: ref("HexStringArg"),

		SerializeU64:       ref("serializers.u64"),
		SerializeU128:      ref("serializers.u128"),
		SerializeHexString: ref("serializers.hexString"),

		PayloadKind:          "script_function_payload",
		PayloadType:          ref("ScriptFunctionPayload"),
		ModuleDefinitionType: ref("MoveModuleDefinition"),

		NativeStrings: []string{"0x1::ASCII::String", "0x1::ascii::String", "0x1::string::String"},
		MarkerField:   "dummy_field",

		Modes: map[Site]Mode{
			SiteStructField:        Typed,
			SitePayloadArgument:    Stringified,
			SiteArgumentSerializer: Typed,
		},
	}
}

// ModeFor returns the policy mode for a site. Unlisted sites are Typed.
func (f Format) ModeFor(site Site) Mode {
	if m, ok := f.Modes[site]; ok {
		return m
	}
	return Typed
}

// ImportLine is the prelude import every unit that references wrappers carries.
func (f Format) ImportLine() string {
	return `import * as ` + f.PreludeAlias + ` from "` + f.PreludeModule + `";`
}

// FileName returns base with the output extension: "index" -> "index.ts".
func (f Format) FileName(base string) string {
	return base + "." + f.FileExtension
}

// ImportPath returns the relative import specifier for a sibling unit.
func (f Format) ImportPath(base string) string {
	return "./" + base + "." + f.ImportExtension
}

// IsNativeString reports whether tag maps to the TypeScript string type.
func (f Format) IsNativeString(tag idl.StructTag) bool {
	name := tag.String()
	for _, s := range f.NativeStrings {
		if s == name {
			return true
		}
	}
	return false
}

// IsMarker reports whether s is the placeholder shape of an empty struct:
// a single boolean field with the marker name.
func (f Format) IsMarker(s *idl.Struct) bool {
	if len(s.Fields) != 1 || s.Fields[0].Name != f.MarkerField {
		return false
	}
	_, isBool := s.Fields[0].Type.(idl.Bool)
	return isBool
}

// isHexWrapper reports whether a mapped type is serialized as a hex string.
func (f Format) isHexWrapper(typed string) bool {
	switch typed {
	case f.RawAddress, f.RawSigner, f.ByteString, f.HexStringArg:
		return true
	}
	return false
}

// wrapper returns name in Typed mode and string otherwise.
func (f Format) wrapper(name string, mode Mode) string {
	if mode == Stringified && strings.HasPrefix(name, f.PreludeAlias+".") {
		return "string"
	}
	return name
}
