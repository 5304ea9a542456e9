package models

import "fmt"

// ObjectKind classifies a table node. The numeric values are persisted in run-state files.
type ObjectKind int

const (
	KindRegular ObjectKind = 0
	KindHidden  ObjectKind = 1
	KindGrouped ObjectKind = 2
)

func (k ObjectKind) String() string {
	switch k {
	case KindRegular:
		return "regular"
	case KindHidden:
		return "hidden"
	case KindGrouped:
		return "grouped"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseObjectKind validates a persisted kind value.
func ParseObjectKind(v int) (ObjectKind, error) {
	k := ObjectKind(v)
	if k < KindRegular || k > KindGrouped {
		return 0, fmt.Errorf("invalid object kind %d", v)
	}
	return k, nil
}
