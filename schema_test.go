package copyjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchema(t *testing.T) {
	t.Parallel()

	t.Run("basic declarations", func(t *testing.T) {
		t.Parallel()

		schema, err := ParseSchema([]string{"id:integer", "name:text", "active:boolean"})
		require.NoError(t, err)
		assert.Equal(t, 3, schema.Len())
		assert.Equal(t, []string{"id", "name", "active"}, schema.Columns())
	})

	t.Run("zero declarations yield empty schema", func(t *testing.T) {
		t.Parallel()

		schema, err := ParseSchema(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, schema.Len())
		assert.Empty(t, schema.Columns())
	})

	t.Run("type may contain a colon-free spelling with spaces", func(t *testing.T) {
		t.Parallel()

		schema, err := ParseSchema([]string{"price:double precision"})
		require.NoError(t, err)
		assert.Equal(t, 1, schema.Len())
		assert.Equal(t, columnTypeReal, schema.columns[0].typ)
	})

	t.Run("array declaration", func(t *testing.T) {
		t.Parallel()

		schema, err := ParseSchema([]string{"tags:text[]"})
		require.NoError(t, err)
		require.Equal(t, 1, schema.Len())
		assert.True(t, schema.columns[0].array)
		assert.Equal(t, columnTypeText, schema.columns[0].typ)
	})

	t.Run("missing colon", func(t *testing.T) {
		t.Parallel()

		_, err := ParseSchema([]string{"idinteger"})
		assert.ErrorIs(t, err, ErrColumnSpec)
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		_, err := ParseSchema([]string{":integer"})
		assert.ErrorIs(t, err, ErrColumnSpec)
	})

	t.Run("unsupported type names the column", func(t *testing.T) {
		t.Parallel()

		_, err := ParseSchema([]string{"id:integer", "geom:geometry"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedType)
		assert.Contains(t, err.Error(), `"geom"`)
	})

	t.Run("nested array rejected", func(t *testing.T) {
		t.Parallel()

		_, err := ParseSchema([]string{"matrix:integer[][]"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNestedArray)
		assert.Contains(t, err.Error(), `"matrix"`)
	})

	t.Run("first invalid declaration aborts", func(t *testing.T) {
		t.Parallel()

		schema, err := ParseSchema([]string{"a:integer", "bad", "b:nope"})
		require.Error(t, err)
		assert.Nil(t, schema)
		assert.ErrorIs(t, err, ErrColumnSpec)
	})
}

func TestResolveType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		declared  string
		wantType  columnType
		wantArray bool
	}{
		{name: "integer", declared: "integer", wantType: columnTypeInteger},
		{name: "int alias", declared: "int", wantType: columnTypeInteger},
		{name: "int2", declared: "int2", wantType: columnTypeInteger},
		{name: "int4", declared: "int4", wantType: columnTypeInteger},
		{name: "int8", declared: "int8", wantType: columnTypeInteger},
		{name: "smallint", declared: "smallint", wantType: columnTypeInteger},
		{name: "bigint", declared: "bigint", wantType: columnTypeInteger},
		{name: "serial", declared: "serial", wantType: columnTypeInteger},
		{name: "bigserial", declared: "bigserial", wantType: columnTypeInteger},
		{name: "real", declared: "real", wantType: columnTypeReal},
		{name: "float4", declared: "float4", wantType: columnTypeReal},
		{name: "float8", declared: "float8", wantType: columnTypeReal},
		{name: "double precision", declared: "double precision", wantType: columnTypeReal},
		{name: "numeric", declared: "numeric", wantType: columnTypeReal},
		{name: "decimal", declared: "decimal", wantType: columnTypeReal},
		{name: "bool", declared: "bool", wantType: columnTypeBoolean},
		{name: "boolean", declared: "boolean", wantType: columnTypeBoolean},
		{name: "timestamp", declared: "timestamp", wantType: columnTypeTimestamp},
		{name: "timestamp without time zone", declared: "timestamp without time zone", wantType: columnTypeTimestamp},
		{name: "timestamp with precision", declared: "timestamp(3)", wantType: columnTypeTimestamp},
		{name: "timestamp with precision and zone suffix", declared: "timestamp(6) without time zone", wantType: columnTypeTimestamp},
		{name: "text", declared: "text", wantType: columnTypeText},
		{name: "varchar", declared: "varchar", wantType: columnTypeText},
		{name: "character varying", declared: "character varying", wantType: columnTypeText},
		{name: "uuid", declared: "uuid", wantType: columnTypeText},
		{name: "json", declared: "json", wantType: columnTypeText},
		{name: "jsonb", declared: "jsonb", wantType: columnTypeText},
		{name: "date decodes as text", declared: "date", wantType: columnTypeText},
		{name: "uppercase normalized", declared: "INTEGER", wantType: columnTypeInteger},
		{name: "surrounding spaces trimmed", declared: " text ", wantType: columnTypeText},
		{name: "integer array", declared: "integer[]", wantType: columnTypeInteger, wantArray: true},
		{name: "text array", declared: "text[]", wantType: columnTypeText, wantArray: true},
		{name: "uppercase array", declared: "TEXT[]", wantType: columnTypeText, wantArray: true},
		{name: "timestamp precision array", declared: "timestamp(3)[]", wantType: columnTypeTimestamp, wantArray: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			typ, isArray, err := resolveType(tt.declared)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, typ)
			assert.Equal(t, tt.wantArray, isArray)
		})
	}

	t.Run("unknown scalar", func(t *testing.T) {
		t.Parallel()

		_, _, err := resolveType("geometry")
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("unknown array element", func(t *testing.T) {
		t.Parallel()

		_, _, err := resolveType("geometry[]")
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("nested array", func(t *testing.T) {
		t.Parallel()

		_, _, err := resolveType("text[][]")
		assert.ErrorIs(t, err, ErrNestedArray)
	})

	t.Run("timestamp with time zone unsupported", func(t *testing.T) {
		t.Parallel()

		_, _, err := resolveType("timestamp with time zone")
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})
}

func TestColumnTypeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		typ  columnType
		want string
	}{
		{name: "text", typ: columnTypeText, want: "text"},
		{name: "integer", typ: columnTypeInteger, want: "integer"},
		{name: "real", typ: columnTypeReal, want: "real"},
		{name: "boolean", typ: columnTypeBoolean, want: "boolean"},
		{name: "timestamp", typ: columnTypeTimestamp, want: "timestamp"},
		{name: "unknown defaults to text", typ: columnType(99), want: "text"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestColumnTypeString_Array(t *testing.T) {
	t.Parallel()

	col := column{name: "tags", typ: columnTypeText, array: true}
	assert.Equal(t, "text[]", col.typeString())

	col = column{name: "id", typ: columnTypeInteger}
	assert.Equal(t, "integer", col.typeString())
}
