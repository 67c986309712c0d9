package gen

import "strings"

// Target names a target ORM ecosystem.
type Target string

// Supported targets.
const (
	// PHP is the trait-based PHP ORM.
	PHP Target = "php"
	// CSharp is the plain partial-class .NET variant.
	CSharp Target = "csharp"
	// NHibernate is the attribute-mapped .NET variant. It also emits hbm.xml mapping files.
	NHibernate Target = "nhibernate"
	// Go emits Go structs.
	Go Target = "go"
)

// Targets lists all built-in targets in a stable order.
var Targets = []Target{PHP, CSharp, NHibernate, Go}

// String implements the fmt.Stringer interface.
func (t Target) String() string { return string(t) }

// Kind classifies a native type for nullability and accessor rendering.
type Kind uint8

const (
	// KindString is a string type, nullable by default in every target but Go.
	KindString Kind = iota
	// KindNumeric covers integer and floating point types.
	KindNumeric
	// KindDecimal is a fixed precision numeric type.
	KindDecimal
	// KindBool is a boolean type.
	KindBool
	// KindTime is a date/time type.
	KindTime
	// KindDynamic is a loosely-typed value.
	KindDynamic
	// KindSerialized is a structured value stored as a string and
	// (de)serialized by the generated accessors.
	KindSerialized
)

// TypeInfo describes the native type a column maps to.
type TypeInfo struct {
	// Tag is the canonical semantic type tag (e.g. "int32").
	Tag string
	// Name is the native type name including the nullable marker.
	Name string
	// Base is the native type name without the nullable marker.
	Base string
	// Kind of the native type.
	Kind Kind
	// Nullable reports whether the nullable marker was applied.
	Nullable bool
}

// String returns the native type name.
func (t *TypeInfo) String() string { return t.Name }

// aliases maps accepted type tags to their canonical tag.
var aliases = map[string]string{
	"string":    "string",
	"text":      "string",
	"int16":     "int16",
	"short":     "int16",
	"smallint":  "int16",
	"int32":     "int32",
	"int":       "int32",
	"integer":   "int32",
	"int64":     "int64",
	"bigint":    "int64",
	"long":      "int64",
	"float":     "float",
	"double":    "float",
	"decimal":   "decimal",
	"bool":      "bool",
	"boolean":   "bool",
	"datetime":  "datetime",
	"timestamp": "datetime",
	"json":      "json",
}

// nativeType is one cell of a target type table.
type nativeType struct {
	name string
	kind Kind
}

// typeMap is the per-target table of canonical tags. NullableFormat is applied
// to the kinds listed in nullableKinds, in the style of a printf verb.
type typeMap struct {
	types          map[string]nativeType
	nullableFormat string
	nullableKinds  map[Kind]bool
}

var dotnetNullable = map[Kind]bool{
	KindNumeric: true,
	KindDecimal: true,
	KindBool:    true,
	KindTime:    true,
}

var typeMaps = map[Target]*typeMap{
	PHP: {
		types: map[string]nativeType{
			"string":  {"string", KindString},
			"int32":   {"int", KindNumeric},
			"int64":   {"int", KindNumeric},
			"float":   {"float", KindNumeric},
			"decimal": {"float", KindDecimal},
			"bool":    {"bool", KindBool},
			"json":    {"mixed", KindDynamic},
		},
	},
	CSharp: {
		types: map[string]nativeType{
			"string":   {"string", KindString},
			"int16":    {"short", KindNumeric},
			"int32":    {"int", KindNumeric},
			"int64":    {"long", KindNumeric},
			"float":    {"double", KindNumeric},
			"decimal":  {"decimal", KindDecimal},
			"bool":     {"bool", KindBool},
			"datetime": {"DateTime", KindTime},
			"json":     {"dynamic", KindDynamic},
		},
		nullableFormat: "%s?",
		nullableKinds:  dotnetNullable,
	},
	NHibernate: {
		types: map[string]nativeType{
			"string":   {"string", KindString},
			"int16":    {"short", KindNumeric},
			"int32":    {"int", KindNumeric},
			"int64":    {"long", KindNumeric},
			"float":    {"double", KindNumeric},
			"decimal":  {"decimal", KindDecimal},
			"bool":     {"bool", KindBool},
			"datetime": {"DateTime", KindTime},
			"json":     {"string", KindSerialized},
		},
		nullableFormat: "%s?",
		nullableKinds:  dotnetNullable,
	},
	Go: {
		types: map[string]nativeType{
			"string":   {"string", KindString},
			"int16":    {"int16", KindNumeric},
			"int32":    {"int32", KindNumeric},
			"int64":    {"int64", KindNumeric},
			"float":    {"float64", KindNumeric},
			"decimal":  {"decimal.Decimal", KindDecimal},
			"bool":     {"bool", KindBool},
			"datetime": {"time.Time", KindTime},
			"json":     {"any", KindDynamic},
		},
		nullableFormat: "*%s",
		nullableKinds: map[Kind]bool{
			KindString:  true,
			KindNumeric: true,
			KindDecimal: true,
			KindBool:    true,
			KindTime:    true,
		},
	},
}

// NormalizeTag trims and lower-cases a type tag.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// CanonicalTag resolves the canonical tag of a column type. An empty tag
// defaults to "int32" for id columns and "string" otherwise. It returns
// false for unknown tags.
func CanonicalTag(tag string, isID bool) (string, bool) {
	tag = NormalizeTag(tag)
	if tag == "" {
		if isID {
			return "int32", true
		}
		return "string", true
	}
	c, ok := aliases[tag]
	return c, ok
}

// LookupType maps a semantic type tag to the native type of the target.
func LookupType(target Target, tag string, isID, nullable bool) (*TypeInfo, error) {
	tm, ok := typeMaps[target]
	if !ok {
		return nil, &TargetError{Target: target}
	}
	canonical, ok := CanonicalTag(tag, isID)
	if !ok {
		return nil, &TypeError{Target: target, Tag: tag}
	}
	nt, ok := tm.types[canonical]
	if !ok {
		return nil, &TypeError{Target: target, Tag: tag}
	}
	info := &TypeInfo{Tag: canonical, Name: nt.name, Base: nt.name, Kind: nt.kind}
	if nullable && tm.nullableKinds[nt.kind] {
		info.Nullable = true
		info.Name = strings.Replace(tm.nullableFormat, "%s", nt.name, 1)
	}
	return info, nil
}

// MapType returns the native type name of a semantic type tag for the target.
func MapType(target Target, tag string, isID, nullable bool) (string, error) {
	info, err := LookupType(target, tag, isID, nullable)
	if err != nil {
		return "", err
	}
	return info.Name, nil
}

// Supported reports the canonical tags the target can map, in a stable order.
func Supported(target Target) []string {
	tm, ok := typeMaps[target]
	if !ok {
		return nil
	}
	var tags []string
	for _, t := range []string{"string", "int16", "int32", "int64", "float", "decimal", "bool", "datetime", "json"} {
		if _, ok := tm.types[t]; ok {
			tags = append(tags, t)
		}
	}
	return tags
}

// Aliases returns the accepted tags that resolve to the canonical tag.
func Aliases(canonical string) []string {
	var out []string
	for _, a := range []string{
		"string", "text", "int16", "short", "smallint", "int32", "int", "integer",
		"int64", "bigint", "long", "float", "double", "decimal", "bool", "boolean",
		"datetime", "timestamp", "json",
	} {
		if aliases[a] == canonical && a != canonical {
			out = append(out, a)
		}
	}
	return out
}
