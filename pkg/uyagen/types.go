package uyagen

import "fmt"

// FieldType is a Uya scalar type descriptor used by the struct templates.
type FieldType struct {
	Name  string
	Float bool
	Bits  int
}

var (
	typeI32 = FieldType{Name: "i32", Bits: 32}
	typeI64 = FieldType{Name: "i64", Bits: 64}
	typeF32 = FieldType{Name: "f32", Float: true, Bits: 32}
)

// StructField is one named field of a generated struct.
type StructField struct {
	Name string
	Type FieldType
}

// structFields is the fixed layout shared by every StructN declaration.
// Order matters: it is both the declaration and the literal initializer order.
var structFields = []StructField{
	{Name: "field1", Type: typeI32},
	{Name: "field2", Type: typeF32},
	{Name: "field3", Type: typeI64},
	{Name: "field4", Type: typeI32},
	{Name: "field5", Type: typeF32},
}

// StructFields returns a copy of the fixed struct layout.
func StructFields() []StructField {
	out := make([]StructField, len(structFields))
	copy(out, structFields)
	return out
}

// castTo converts an i32 expression to t, leaving i32 values untouched.
func castTo(t FieldType, expr string) string {
	if t == typeI32 {
		return expr
	}
	return fmt.Sprintf("%s as %s", expr, t.Name)
}

func structName(i int) string {
	return fmt.Sprintf("Struct%d", i)
}

func functionName(i int) string {
	return fmt.Sprintf("test_function_%d", i)
}
