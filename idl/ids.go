package idl

import (
	"strings"

	"github.com/teranos/movets/errors"
)

// AccountAddress is an on-chain account address in short hex form (0x1).
type AccountAddress string

// NormalizeAddress lowercases a hex address and strips leading zeros.
func NormalizeAddress(s string) (AccountAddress, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	raw = strings.TrimPrefix(raw, "0x")
	if raw == "" || len(raw) > 64 {
		return "", errors.Wrapf(errors.ErrMalformedIDL, "address %q", s)
	}
	for _, c := range raw {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return "", errors.Wrapf(errors.ErrMalformedIDL, "address %q: invalid hex digit %q", s, c)
		}
	}
	raw = strings.TrimLeft(raw, "0")
	if raw == "" {
		raw = "0"
	}
	return AccountAddress("0x" + raw), nil
}

// ModuleID identifies a module by the address it is published under and its name.
type ModuleID struct {
	Address AccountAddress
	Name    string
}

// ParseModuleID parses "0x1::Coin".
func ParseModuleID(s string) (ModuleID, error) {
	parts := strings.Split(s, "::")
	if len(parts) != 2 || parts[1] == "" {
		return ModuleID{}, errors.Wrapf(errors.ErrMalformedIDL, "module id %q: want <address>::<name>", s)
	}
	addr, err := NormalizeAddress(parts[0])
	if err != nil {
		return ModuleID{}, err
	}
	return ModuleID{Address: addr, Name: parts[1]}, nil
}

func (id ModuleID) String() string {
	return string(id.Address) + "::" + id.Name
}

func (id ModuleID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ModuleID) UnmarshalText(text []byte) error {
	parsed, err := ParseModuleID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// StructTag is the fully qualified name of a struct: 0x1::Coin::Balance.
type StructTag struct {
	Address AccountAddress
	Module  string
	Name    string
}

// ParseStructTag parses "0x1::Coin::Balance". Instantiated tags
// (with <...> arguments) are not accepted; type arguments travel separately.
func ParseStructTag(s string) (StructTag, error) {
	if strings.ContainsAny(s, "<>") {
		return StructTag{}, errors.Wrapf(errors.ErrMalformedIDL, "struct tag %q: type arguments are not part of a tag", s)
	}
	parts := strings.Split(s, "::")
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return StructTag{}, errors.Wrapf(errors.ErrMalformedIDL, "struct tag %q: want <address>::<module>::<name>", s)
	}
	addr, err := NormalizeAddress(parts[0])
	if err != nil {
		return StructTag{}, err
	}
	return StructTag{Address: addr, Module: parts[1], Name: parts[2]}, nil
}

// ModuleID returns the module declaring the struct.
func (t StructTag) ModuleID() ModuleID {
	return ModuleID{Address: t.Address, Name: t.Module}
}

func (t StructTag) String() string {
	return string(t.Address) + "::" + t.Module + "::" + t.Name
}

func (t StructTag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *StructTag) UnmarshalText(text []byte) error {
	parsed, err := ParseStructTag(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
