package typescript

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teranos/movets/idl"
)

func tag(module, name string) idl.StructTag {
	return idl.StructTag{Address: "0x1", Module: module, Name: name}
}

func moduleID(name string) idl.ModuleID {
	return idl.ModuleID{Address: "0x1", Name: name}
}

func newPackage(t *testing.T, name string, modules []*idl.Module, deps []*idl.Module) *idl.Package {
	t.Helper()
	mods, err := idl.NewModuleMap(modules...)
	require.NoError(t, err)
	depMap, err := idl.NewModuleMap(deps...)
	require.NoError(t, err)
	return &idl.Package{Name: name, Modules: mods, Dependencies: depMap}
}

// coinModule is a module Coin with a key struct Balance{value: u64} and
// an entry function transfer(to: address, amount: u64).
func coinModule() *idl.Module {
	return &idl.Module{
		ID: moduleID("Coin"),
		Structs: []idl.Struct{{
			Name:      tag("Coin", "Balance"),
			Fields:    []idl.Field{{Name: "value", Type: idl.U64{}}},
			Abilities: []idl.Ability{idl.AbilityKey},
		}},
		Functions: []idl.Function{{
			Name: "transfer",
			Args: []idl.Argument{
				{Name: "to", Type: idl.Address{}},
				{Name: "amount", Type: idl.U64{}},
			},
		}},
	}
}

// genericCoin is Coin<T> { value: u64, meta: T }.
func genericCoin() idl.Struct {
	return idl.Struct{
		Name:       tag("Coin", "Coin"),
		TypeParams: []idl.GenericParam{{Name: "T"}},
		Fields: []idl.Field{
			{Name: "value", Type: idl.U64{}},
			{Name: "meta", Type: idl.TypeParameter{Index: 0}},
		},
		Abilities: []idl.Ability{idl.AbilityStore},
	}
}

func markerStruct(module, name string) idl.Struct {
	return idl.Struct{
		Name:      tag(module, name),
		Fields:    []idl.Field{{Name: "dummy_field", Type: idl.Bool{}}},
		Abilities: []idl.Ability{idl.AbilityDrop},
	}
}

func tableOf(structs ...idl.Struct) idl.StructTable {
	table := make(idl.StructTable)
	for i := range structs {
		table[structs[i].Name] = &structs[i]
	}
	return table
}
