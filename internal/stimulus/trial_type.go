package stimulus

import "fmt"

// TrialType selects which visual feature separates target from distractors.
type TrialType int

const (
	Color TrialType = iota
	Shape
	Combo
	Size
	Letter
)

var trialTypeNames = [...]string{"Color", "Shape", "Combo", "Size", "Letter"}

func (t TrialType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("TrialType(%d)", int(t))
	}
	return trialTypeNames[t]
}

// Valid reports whether t is one of the five known trial types.
func (t TrialType) Valid() bool {
	return t >= Color && t <= Letter
}

// TrialTypes lists every trial type in form order.
func TrialTypes() []TrialType {
	return []TrialType{Color, Shape, Combo, Size, Letter}
}

// ParseTrialType maps a form label back to its TrialType.
func ParseTrialType(s string) (TrialType, error) {
	for i, name := range trialTypeNames {
		if name == s {
			return TrialType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTrialType, s)
}
