package editop

import "fmt"

// Kind tags the closed set of edit operation variants.
type Kind int

const (
	RemoveKind Kind = iota
	AddKind
	ReplaceKind
)

func (k Kind) String() string {
	switch k {
	case RemoveKind:
		return "Remove"
	case AddKind:
		return "Add"
	case ReplaceKind:
		return "Replace"
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	switch string(d) {
	case "Remove":
		*k = RemoveKind
	case "Add":
		*k = AddKind
	case "Replace":
		*k = ReplaceKind
	default:
		return fmt.Errorf("unrecognized kind %q", d)
	}
	return nil
}

func Kinds() []Kind {
	return []Kind{
		RemoveKind,
		AddKind,
		ReplaceKind,
	}
}
