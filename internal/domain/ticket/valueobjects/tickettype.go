package valueobjects

import "fmt"

type Type string

const (
	TypeBug      Type = "BUG"
	TypeTask     Type = "TASK"
	TypeFeature  Type = "FEATURE"
	TypeIncident Type = "INCIDENT"
	TypeSupport  Type = "SUPPORT"
)

var validTypes = map[Type]bool{
	TypeBug:      true,
	TypeTask:     true,
	TypeFeature:  true,
	TypeIncident: true,
	TypeSupport:  true,
}

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	return validTypes[t]
}

func NewType(s string) (Type, error) {
	tt := Type(s)
	if !tt.IsValid() {
		return "", fmt.Errorf("invalid ticket type: %s", s)
	}
	return tt, nil
}
