package typescript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/movets/errors"
	"github.com/teranos/movets/idl"
)

func TestMapPrimitives(t *testing.T) {
	m := NewMapper(nil, DefaultFormat())

	tests := []struct {
		name        string
		ty          idl.Type
		typed       string
		stringified string
	}{
		{"bool", idl.Bool{}, "boolean", "boolean"},
		{"u8", idl.U8{}, "number", "number"},
		{"u64", idl.U64{}, "p.U64", "string"},
		{"u128", idl.U128{}, "p.U128", "string"},
		{"address", idl.Address{}, "p.RawAddress", "string"},
		{"signer", idl.Signer{}, "p.RawSigner", "string"},
		{"vector<u8>", idl.Vector{Elem: idl.U8{}}, "p.ByteString", "string"},
		{"vector<u64>", idl.Vector{Elem: idl.U64{}}, "ReadonlyArray<p.U64>", "ReadonlyArray<string>"},
		{"vector<bool>", idl.Vector{Elem: idl.Bool{}}, "ReadonlyArray<boolean>", "ReadonlyArray<boolean>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typed, err := m.Map(tt.ty, nil, Typed)
			require.NoError(t, err)
			assert.Equal(t, tt.typed, typed)

			stringified, err := m.Map(tt.ty, nil, Stringified)
			require.NoError(t, err)
			assert.Equal(t, tt.stringified, stringified)
		})
	}
}

func TestMapByteVectorAtAnyDepth(t *testing.T) {
	m := NewMapper(nil, DefaultFormat())

	var ty idl.Type = idl.Vector{Elem: idl.U8{}}
	want := "p.ByteString"
	for depth := 0; depth < 4; depth++ {
		got, err := m.Map(ty, nil, Typed)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		ty = idl.Vector{Elem: ty}
		want = "ReadonlyArray<" + want + ">"
	}
}

func TestMapTypeParameter(t *testing.T) {
	m := NewMapper(nil, DefaultFormat())

	got, err := m.Map(idl.TypeParameter{Index: 1}, []string{"T", "U"}, Typed)
	require.NoError(t, err)
	assert.Equal(t, "U", got)

	got, err = m.Map(idl.TypeParameter{Index: 2}, []string{"T", "U"}, Typed)
	require.NoError(t, err)
	assert.Equal(t, "unknown", got, "out-of-range index falls back to unknown")

	got, err = m.Map(idl.TypeParameter{Index: -1}, []string{"T"}, Typed)
	require.NoError(t, err)
	assert.Equal(t, "unknown", got, "negative index falls back to unknown")

	got, err = m.Map(idl.Vector{Elem: idl.TypeParameter{Index: 0}}, nil, Stringified)
	require.NoError(t, err)
	assert.Equal(t, "ReadonlyArray<unknown>", got)
}

func TestMapStructExpansion(t *testing.T) {
	coin := genericCoin()
	wrapper := idl.Struct{
		Name: tag("Vault", "Wrapper"),
		Fields: []idl.Field{{
			Name: "inner",
			Doc:  "The wrapped coin.",
			Type: idl.StructRef{Name: coin.Name, TypeArgs: []idl.Type{idl.Bool{}}},
		}},
	}
	m := NewMapper(tableOf(coin, wrapper), DefaultFormat())

	t.Run("type arguments substitute into the referenced scope", func(t *testing.T) {
		ref := idl.StructRef{Name: coin.Name, TypeArgs: []idl.Type{idl.U128{}}}

		typed, err := m.Map(ref, nil, Typed)
		require.NoError(t, err)
		assert.Equal(t, "{\n  value: p.U64;\n  meta: p.U128;\n}", typed)

		stringified, err := m.Map(ref, nil, Stringified)
		require.NoError(t, err)
		assert.Equal(t, "{\n  value: string;\n  meta: string;\n}", stringified)
	})

	t.Run("caller scope flows into type arguments", func(t *testing.T) {
		ref := idl.StructRef{Name: coin.Name, TypeArgs: []idl.Type{idl.TypeParameter{Index: 0}}}
		got, err := m.Map(ref, []string{"CoinType"}, Typed)
		require.NoError(t, err)
		assert.Equal(t, "{\n  value: p.U64;\n  meta: CoinType;\n}", got)
	})

	t.Run("missing type arguments render unknown", func(t *testing.T) {
		got, err := m.Map(idl.StructRef{Name: coin.Name}, nil, Typed)
		require.NoError(t, err)
		assert.Equal(t, "{\n  value: p.U64;\n  meta: unknown;\n}", got)
	})

	t.Run("nested expansion with field docs", func(t *testing.T) {
		got, err := m.Map(idl.StructRef{Name: wrapper.Name}, nil, Typed)
		require.NoError(t, err)
		want := "{\n" +
			"  /** The wrapped coin. */\n" +
			"  inner: {\n" +
			"    value: p.U64;\n" +
			"    meta: boolean;\n" +
			"  };\n" +
			"}"
		assert.Equal(t, want, got)
	})
}

func TestMapSpecialStructs(t *testing.T) {
	marker := markerStruct("Coin", "Marker")
	m := NewMapper(tableOf(marker), DefaultFormat())

	for _, name := range []string{"0x1::ASCII::String", "0x1::string::String"} {
		t.Run(name, func(t *testing.T) {
			strTag, err := idl.ParseStructTag(name)
			require.NoError(t, err)
			got, err := m.Map(idl.StructRef{Name: strTag}, nil, Typed)
			require.NoError(t, err)
			assert.Equal(t, "string", got)
		})
	}

	got, err := m.Map(idl.StructRef{Name: marker.Name}, nil, Typed)
	require.NoError(t, err)
	assert.Equal(t, "Record<string, never>", got)
}

func TestMapErrors(t *testing.T) {
	m := NewMapper(tableOf(genericCoin()), DefaultFormat())

	_, err := m.Map(idl.StructRef{Name: tag("Missing", "Thing")}, nil, Typed)
	require.Error(t, err)
	assert.True(t, errors.IsUnresolvedStructReference(err))
	assert.Contains(t, err.Error(), "0x1::Missing::Thing")

	_, err = m.Map(idl.Vector{Elem: idl.Tuple{Elems: []idl.Type{idl.U8{}}}}, nil, Typed)
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedType(err))

	ref := idl.StructRef{Name: tag("Coin", "Coin"), TypeArgs: []idl.Type{idl.StructRef{Name: tag("Gone", "X")}}}
	_, err = m.Map(ref, nil, Stringified)
	assert.True(t, errors.IsUnresolvedStructReference(err), "errors propagate out of type arguments")
}

func TestCustomPreludeAlias(t *testing.T) {
	format := NewFormat("prelude", "@acme/prelude")
	m := NewMapper(nil, format)

	typed, err := m.Map(idl.U64{}, nil, Typed)
	require.NoError(t, err)
	assert.Equal(t, "prelude.U64", typed)

	stringified, err := m.Map(idl.U64{}, nil, Stringified)
	require.NoError(t, err)
	assert.Equal(t, "string", stringified)

	assert.Equal(t, `import * as prelude from "@acme/prelude";`, format.ImportLine())
	assert.Equal(t, "prelude.serializers.u64(x)", format.SerializeArgument(typed, "x"))
}

func TestModePolicy(t *testing.T) {
	f := DefaultFormat()
	assert.Equal(t, Typed, f.ModeFor(SiteStructField))
	assert.Equal(t, Stringified, f.ModeFor(SitePayloadArgument))
	assert.Equal(t, Typed, f.ModeFor(SiteArgumentSerializer))
	assert.Equal(t, Typed, f.ModeFor(Site(99)))
	assert.Equal(t, "stringified", Stringified.String())
}
