package idl

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/teranos/movets/errors"
)

// Type is a Move type as it appears in field and argument positions.
// The variant set is closed: Bool, U8, U64, U128, Address, Signer,
// Vector, StructRef, TypeParameter and Tuple.
//
// On the wire a Type is externally tagged: primitives are bare strings
// ("u64") and composites are single-key objects ({"vector": "u8"}).
type Type interface {
	json.Marshaler
	// String renders the type for diagnostics and generated docs.
	String() string
	isType()
}

type (
	Bool    struct{}
	U8      struct{}
	U64     struct{}
	U128    struct{}
	Address struct{}
	Signer  struct{}

	// Vector is vector<Elem>.
	Vector struct {
		Elem Type
	}

	// StructRef is a struct instantiated with TypeArgs bound positionally
	// to the referenced struct's generic parameters.
	StructRef struct {
		Name     StructTag
		TypeArgs []Type
	}

	// TypeParameter refers to the Index-th generic parameter of the
	// enclosing struct or function.
	TypeParameter struct {
		Index int
	}

	Tuple struct {
		Elems []Type
	}
)

func (Bool) isType()          {}
func (U8) isType()            {}
func (U64) isType()           {}
func (U128) isType()          {}
func (Address) isType()       {}
func (Signer) isType()        {}
func (Vector) isType()        {}
func (StructRef) isType()     {}
func (TypeParameter) isType() {}
func (Tuple) isType()         {}

func (Bool) String() string    { return "Bool" }
func (U8) String() string      { return "U8" }
func (U64) String() string     { return "U64" }
func (U128) String() string    { return "U128" }
func (Address) String() string { return "Address" }
func (Signer) String() string  { return "Signer" }

func (v Vector) String() string {
	return "Vector<" + v.Elem.String() + ">"
}

func (s StructRef) String() string {
	if len(s.TypeArgs) == 0 {
		return s.Name.String()
	}
	return s.Name.String() + "<" + joinTypes(s.TypeArgs) + ">"
}

func (p TypeParameter) String() string {
	return "TypeParameter(" + strconv.Itoa(p.Index) + ")"
}

func (t Tuple) String() string {
	return "Tuple<" + joinTypes(t.Elems) + ">"
}

func joinTypes(ts []Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// Wire tags
const (
	tagBool      = "bool"
	tagU8        = "u8"
	tagU64       = "u64"
	tagU128      = "u128"
	tagAddress   = "address"
	tagSigner    = "signer"
	tagVector    = "vector"
	tagStruct    = "struct"
	tagTypeParam = "type_param"
	tagTuple     = "tuple"
)

func (Bool) MarshalJSON() ([]byte, error)    { return json.Marshal(tagBool) }
func (U8) MarshalJSON() ([]byte, error)      { return json.Marshal(tagU8) }
func (U64) MarshalJSON() ([]byte, error)     { return json.Marshal(tagU64) }
func (U128) MarshalJSON() ([]byte, error)    { return json.Marshal(tagU128) }
func (Address) MarshalJSON() ([]byte, error) { return json.Marshal(tagAddress) }
func (Signer) MarshalJSON() ([]byte, error)  { return json.Marshal(tagSigner) }

func (v Vector) MarshalJSON() ([]byte, error) {
	if v.Elem == nil {
		return nil, errors.Wrap(errors.ErrSerializationFailure, "vector without element type")
	}
	return json.Marshal(map[string]Type{tagVector: v.Elem})
}

type structRefWire struct {
	Name     StructTag `json:"name"`
	TypeArgs []Type    `json:"ty_args"`
}

func (s StructRef) MarshalJSON() ([]byte, error) {
	args := s.TypeArgs
	if args == nil {
		args = []Type{}
	}
	return json.Marshal(map[string]structRefWire{tagStruct: {Name: s.Name, TypeArgs: args}})
}

func (p TypeParameter) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]int{tagTypeParam: p.Index})
}

func (t Tuple) MarshalJSON() ([]byte, error) {
	elems := t.Elems
	if elems == nil {
		elems = []Type{}
	}
	return json.Marshal(map[string][]Type{tagTuple: elems})
}

// ParseType decodes one externally tagged type. Unknown tags are rejected.
func ParseType(data []byte) (Type, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.Wrap(errors.ErrMalformedIDL, "empty type")
	}

	if data[0] == '"' {
		var tag string
		if err := json.Unmarshal(data, &tag); err != nil {
			return nil, errors.Wrapf(errors.ErrMalformedIDL, "type: %v", err)
		}
		switch tag {
		case tagBool:
			return Bool{}, nil
		case tagU8:
			return U8{}, nil
		case tagU64:
			return U64{}, nil
		case tagU128:
			return U128{}, nil
		case tagAddress:
			return Address{}, nil
		case tagSigner:
			return Signer{}, nil
		}
		return nil, errors.Wrapf(errors.ErrMalformedIDL, "unknown type %q", tag)
	}

	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return nil, errors.Wrapf(errors.ErrMalformedIDL, "type: %v", err)
	}
	if len(tagged) != 1 {
		return nil, errors.Wrapf(errors.ErrMalformedIDL, "type object must have exactly one tag, got %d", len(tagged))
	}

	var tag string
	var body json.RawMessage
	for k, v := range tagged {
		tag, body = k, v
	}

	switch tag {
	case tagVector:
		elem, err := ParseType(body)
		if err != nil {
			return nil, errors.Wrap(err, "vector element")
		}
		return Vector{Elem: elem}, nil

	case tagStruct:
		var wire struct {
			Name    StructTag         `json:"name"`
			TypeArg []json.RawMessage `json:"ty_args"`
		}
		if err := json.Unmarshal(body, &wire); err != nil {
			return nil, errors.Wrapf(errors.ErrMalformedIDL, "struct type: %v", err)
		}
		args, err := parseTypeList(wire.TypeArg)
		if err != nil {
			return nil, errors.Wrapf(err, "type arguments of %s", wire.Name)
		}
		return StructRef{Name: wire.Name, TypeArgs: args}, nil

	case tagTypeParam:
		var idx int
		if err := json.Unmarshal(body, &idx); err != nil || idx < 0 {
			return nil, errors.Wrapf(errors.ErrMalformedIDL, "type parameter index %s", string(body))
		}
		return TypeParameter{Index: idx}, nil

	case tagTuple:
		var raw []json.RawMessage
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, errors.Wrapf(errors.ErrMalformedIDL, "tuple: %v", err)
		}
		elems, err := parseTypeList(raw)
		if err != nil {
			return nil, errors.Wrap(err, "tuple element")
		}
		return Tuple{Elems: elems}, nil

	default:
		return nil, errors.Wrapf(errors.ErrMalformedIDL, "unknown type tag %q", tag)
	}
}

func parseTypeList(raw []json.RawMessage) ([]Type, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]Type, len(raw))
	for i, r := range raw {
		t, err := ParseType(r)
		if err != nil {
			return nil, errors.Wrapf(err, "position %d", i)
		}
		out[i] = t
	}
	return out, nil
}
