package tree

import "fmt"

type Type int

const (
	NullType Type = iota
	BoolType
	NumberType
	StringType
	ArrayType
	ObjectType
	CommentType
)

func (t Type) String() string {
	switch t {
	case NullType:
		return "Null"
	case BoolType:
		return "Bool"
	case NumberType:
		return "Number"
	case StringType:
		return "String"
	case ArrayType:
		return "Array"
	case ObjectType:
		return "Object"
	case CommentType:
		return "Comment"
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	for _, tt := range Types() {
		if tt.String() == string(d) {
			*t = tt
			return nil
		}
	}
	return fmt.Errorf("unrecognized type %q", d)
}

func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		NumberType,
		StringType,
		ArrayType,
		ObjectType,
		CommentType,
	}
}

// IsLeaf reports whether nodes of this type carry no child values.
func (t Type) IsLeaf() bool {
	switch t {
	case ArrayType, ObjectType:
		return false
	default:
		return true
	}
}
