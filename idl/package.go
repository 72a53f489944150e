package idl

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/teranos/movets/errors"
)

// Ability classifies what operations are permitted on a struct's values.
type Ability string

const (
	AbilityCopy  Ability = "copy"
	AbilityDrop  Ability = "drop"
	AbilityStore Ability = "store"
	AbilityKey   Ability = "key"
)

func (a *Ability) UnmarshalText(text []byte) error {
	switch v := Ability(text); v {
	case AbilityCopy, AbilityDrop, AbilityStore, AbilityKey:
		*a = v
		return nil
	}
	return errors.Wrapf(errors.ErrMalformedIDL, "unknown ability %q", string(text))
}

// GenericParam is a struct's declared type parameter.
type GenericParam struct {
	Name      string `json:"name"`
	IsPhantom bool   `json:"is_phantom"`
}

// Field is a struct field. Field order defines the serialized layout.
type Field struct {
	Name string `json:"name"`
	Doc  string `json:"doc,omitempty"`
	Type Type   `json:"ty"`
}

func (f *Field) UnmarshalJSON(data []byte) error {
	var wire struct {
		Name string          `json:"name"`
		Doc  *string         `json:"doc"`
		Ty   json.RawMessage `json:"ty"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return errors.Wrapf(errors.ErrMalformedIDL, "field: %v", err)
	}
	ty, err := ParseType(wire.Ty)
	if err != nil {
		return errors.Wrapf(err, "field %s", wire.Name)
	}
	*f = Field{Name: wire.Name, Type: ty}
	if wire.Doc != nil {
		f.Doc = *wire.Doc
	}
	return nil
}

// Struct is a struct declaration.
type Struct struct {
	Name       StructTag      `json:"name"`
	Doc        string         `json:"doc,omitempty"`
	TypeParams []GenericParam `json:"type_params"`
	Fields     []Field        `json:"fields"`
	Abilities  []Ability      `json:"abilities"`
}

// MarshalJSON writes absent lists as [] rather than null.
func (s Struct) MarshalJSON() ([]byte, error) {
	type wire Struct
	w := wire(s)
	if w.TypeParams == nil {
		w.TypeParams = []GenericParam{}
	}
	if w.Fields == nil {
		w.Fields = []Field{}
	}
	if w.Abilities == nil {
		w.Abilities = []Ability{}
	}
	return json.Marshal(w)
}

// HasAbility reports whether the struct declares a.
func (s *Struct) HasAbility(a Ability) bool {
	for _, have := range s.Abilities {
		if have == a {
			return true
		}
	}
	return false
}

// IsResource reports whether values of the struct can live in global storage.
func (s *Struct) IsResource() bool {
	return s.HasAbility(AbilityKey)
}

// Argument is a function argument.
type Argument struct {
	Name string `json:"name"`
	Type Type   `json:"ty"`
}

func (a *Argument) UnmarshalJSON(data []byte) error {
	var wire struct {
		Name string          `json:"name"`
		Ty   json.RawMessage `json:"ty"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return errors.Wrapf(errors.ErrMalformedIDL, "argument: %v", err)
	}
	ty, err := ParseType(wire.Ty)
	if err != nil {
		return errors.Wrapf(err, "argument %s", wire.Name)
	}
	*a = Argument{Name: wire.Name, Type: ty}
	return nil
}

// Function is an entry function callable through a transaction payload.
type Function struct {
	Name     string     `json:"name"`
	Doc      string     `json:"doc,omitempty"`
	TypeArgs []string   `json:"ty_args"`
	Args     []Argument `json:"args"`
}

func (f Function) MarshalJSON() ([]byte, error) {
	type wire Function
	w := wire(f)
	if w.TypeArgs == nil {
		w.TypeArgs = []string{}
	}
	if w.Args == nil {
		w.Args = []Argument{}
	}
	return json.Marshal(w)
}

// Error is an abort code declared by a module.
type Error struct {
	Code uint64 `json:"-"`
	Name string `json:"name"`
	Doc  string `json:"doc,omitempty"`
}

// ErrorList holds a module's errors sorted by code. On the wire it is an
// object keyed by the decimal code.
type ErrorList []Error

func (l ErrorList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		body, err := json.Marshal(e)
		if err != nil {
			return nil, err
		}
		buf.WriteString(strconv.Quote(strconv.FormatUint(e.Code, 10)))
		buf.WriteByte(':')
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (l *ErrorList) UnmarshalJSON(data []byte) error {
	var wire map[string]struct {
		Name string  `json:"name"`
		Doc  *string `json:"doc"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return errors.Wrapf(errors.ErrMalformedIDL, "errors: %v", err)
	}
	out := make(ErrorList, 0, len(wire))
	for key, e := range wire {
		code, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return errors.Wrapf(errors.ErrMalformedIDL, "error code %q", key)
		}
		item := Error{Code: code, Name: e.Name}
		if e.Doc != nil {
			item.Doc = *e.Doc
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	*l = out
	return nil
}

// Module is the interface of one published module.
type Module struct {
	ID        ModuleID   `json:"module_id"`
	Doc       string     `json:"doc,omitempty"`
	Functions []Function `json:"functions"`
	Structs   []Struct   `json:"structs"`
	Errors    ErrorList  `json:"errors"`
}

func (m Module) MarshalJSON() ([]byte, error) {
	type wire Module
	w := wire(m)
	if w.Functions == nil {
		w.Functions = []Function{}
	}
	if w.Structs == nil {
		w.Structs = []Struct{}
	}
	return json.Marshal(w)
}

// ModuleMap is an insertion-ordered set of modules keyed by module id.
type ModuleMap struct {
	m *orderedmap.OrderedMap[string, *Module]
}

// NewModuleMap builds a map from modules, failing on duplicate ids.
func NewModuleMap(modules ...*Module) (*ModuleMap, error) {
	mm := &ModuleMap{m: orderedmap.New[string, *Module]()}
	for _, mod := range modules {
		if err := mm.Add(mod); err != nil {
			return nil, err
		}
	}
	return mm, nil
}

// Add appends mod. Module ids are unique within a map.
func (mm *ModuleMap) Add(mod *Module) error {
	if mm.m == nil {
		mm.m = orderedmap.New[string, *Module]()
	}
	key := mod.ID.String()
	if _, exists := mm.m.Get(key); exists {
		return errors.Wrapf(errors.ErrMalformedIDL, "duplicate module %s", key)
	}
	mm.m.Set(key, mod)
	return nil
}

// Get looks a module up by its id string (0x1::Coin).
func (mm *ModuleMap) Get(id string) (*Module, bool) {
	if mm == nil || mm.m == nil {
		return nil, false
	}
	return mm.m.Get(id)
}

func (mm *ModuleMap) Len() int {
	if mm == nil || mm.m == nil {
		return 0
	}
	return mm.m.Len()
}

// Values returns the modules in insertion order.
func (mm *ModuleMap) Values() []*Module {
	if mm == nil || mm.m == nil {
		return nil
	}
	out := make([]*Module, 0, mm.m.Len())
	for pair := mm.m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

func (mm *ModuleMap) MarshalJSON() ([]byte, error) {
	if mm == nil || mm.m == nil {
		return []byte("{}"), nil
	}
	return mm.m.MarshalJSON()
}

// UnmarshalJSON reads the object token by token so that document order
// is kept and duplicate keys are rejected.
func (mm *ModuleMap) UnmarshalJSON(data []byte) error {
	mm.m = orderedmap.New[string, *Module]()

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return errors.Wrapf(errors.ErrMalformedIDL, "modules: %v", err)
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.Wrap(errors.ErrMalformedIDL, "modules: expected an object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return errors.Wrapf(errors.ErrMalformedIDL, "modules: %v", err)
		}
		key := keyTok.(string)

		var mod Module
		if err := dec.Decode(&mod); err != nil {
			if errors.Is(err, errors.ErrMalformedIDL) {
				return errors.Wrapf(err, "module %s", key)
			}
			return errors.Wrapf(errors.ErrMalformedIDL, "module %s: %v", key, err)
		}
		keyID, err := ParseModuleID(key)
		if err != nil {
			return err
		}
		if keyID != mod.ID {
			return errors.Wrapf(errors.ErrMalformedIDL, "module key %s does not match module_id %s", key, mod.ID)
		}
		if err := mm.Add(&mod); err != nil {
			return err
		}
	}
	return nil
}

// Package is the IDL of a Move package: its own modules and the
// modules of its dependencies.
type Package struct {
	Name         string     `json:"name"`
	Modules      *ModuleMap `json:"modules"`
	Dependencies *ModuleMap `json:"dependencies"`
}

// ModulesToGenerate returns the package's own modules in order, followed
// by dependency modules when withDependencies is set.
func (p *Package) ModulesToGenerate(withDependencies bool) []*Module {
	modules := p.Modules.Values()
	if withDependencies {
		modules = append(modules, p.Dependencies.Values()...)
	}
	return modules
}

// StructTable indexes every struct declared by the package or its dependencies.
type StructTable map[StructTag]*Struct

// Lookup finds a struct by tag.
func (t StructTable) Lookup(tag StructTag) (*Struct, bool) {
	s, ok := t[tag]
	return s, ok
}

// StructTable builds the package-wide struct index. Dependencies are
// always included so own modules can reference their structs.
func (p *Package) StructTable() StructTable {
	table := make(StructTable)
	for _, mm := range []*ModuleMap{p.Dependencies, p.Modules} {
		for _, mod := range mm.Values() {
			for i := range mod.Structs {
				table[mod.Structs[i].Name] = &mod.Structs[i]
			}
		}
	}
	return table
}
