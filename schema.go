package copyjson

import (
	"fmt"
	"regexp"
	"strings"
)

// typeAliases maps lowercased declared type spellings to their normalized
// type. The set covers the names PostgreSQL commonly reports for each
// family; spellings without a dedicated conversion resolve to text.
var typeAliases = map[string]columnType{
	"int":       columnTypeInteger,
	"integer":   columnTypeInteger,
	"int2":      columnTypeInteger,
	"int4":      columnTypeInteger,
	"int8":      columnTypeInteger,
	"smallint":  columnTypeInteger,
	"bigint":    columnTypeInteger,
	"serial":    columnTypeInteger,
	"bigserial": columnTypeInteger,

	"float":            columnTypeReal,
	"float4":           columnTypeReal,
	"float8":           columnTypeReal,
	"real":             columnTypeReal,
	"double precision": columnTypeReal,
	"numeric":          columnTypeReal,
	"decimal":          columnTypeReal,

	"bool":    columnTypeBoolean,
	"boolean": columnTypeBoolean,

	"timestamp":                   columnTypeTimestamp,
	"timestamp without time zone": columnTypeTimestamp,

	"text":              columnTypeText,
	"varchar":           columnTypeText,
	"character varying": columnTypeText,
	"char":              columnTypeText,
	"character":         columnTypeText,
	"name":              columnTypeText,
	"uuid":              columnTypeText,
	"json":              columnTypeText,
	"jsonb":             columnTypeText,
	"date":              columnTypeText,
	"unknown":           columnTypeText,
}

// timestampTypePattern collapses precision-qualified spellings such as
// "timestamp(3) without time zone" to the timestamp type; the precision
// is ignored.
var timestampTypePattern = regexp.MustCompile(`^timestamp\(\d+\)( without time zone)?$`)

// Schema is the ordered list of declared columns. It is immutable once
// built and safe to share across concurrent decodes.
type Schema struct {
	columns []column
}

// ParseSchema builds a Schema from ordered name:type declarations.
// Each declaration splits on its first colon. Construction is fail-fast:
// the first invalid declaration aborts with an error naming the offending
// column and no partial schema is returned. Zero declarations yield an
// empty schema, which decodes every line to an empty record.
func ParseSchema(declarations []string) (*Schema, error) {
	columns := make([]column, 0, len(declarations))
	for _, decl := range declarations {
		name, typeName, ok := strings.Cut(decl, ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q (want name:type)", ErrColumnSpec, decl)
		}
		typ, isArray, err := resolveType(typeName)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		columns = append(columns, column{name: name, typ: typ, array: isArray})
	}
	return &Schema{columns: columns}, nil
}

// Len returns the number of declared columns.
func (s *Schema) Len() int {
	return len(s.columns)
}

// Columns returns the declared column names in output order.
func (s *Schema) Columns() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.name
	}
	return names
}

// resolveType normalizes a declared type string to its closed type tag and
// array flag. Resolution failures are schema-build errors; nothing is
// deferred to decode time.
func resolveType(declared string) (columnType, bool, error) {
	name := strings.ToLower(strings.TrimSpace(declared))
	if elem, ok := strings.CutSuffix(name, "[]"); ok {
		if strings.HasSuffix(elem, "[]") {
			return 0, false, fmt.Errorf("%w: %q", ErrNestedArray, declared)
		}
		typ, err := resolveScalarType(elem)
		if err != nil {
			return 0, false, err
		}
		return typ, true, nil
	}
	typ, err := resolveScalarType(name)
	return typ, false, err
}

// resolveScalarType maps one lowercased scalar type name to its tag.
func resolveScalarType(name string) (columnType, error) {
	if timestampTypePattern.MatchString(name) {
		return columnTypeTimestamp, nil
	}
	if typ, ok := typeAliases[name]; ok {
		return typ, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedType, name)
}
