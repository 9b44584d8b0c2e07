package match3

import "fmt"

// lookupName returns the index of text in names.
func lookupName(names []string, text []byte, what string) (int, error) {
	for i, n := range names {
		if n == string(text) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("match3: unknown %s %q", what, text)
}

// UnmarshalText decodes a mode name.
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(text []byte) error {
	i, err := lookupName(statusNames[:], text, "status")
	if err != nil {
		return err
	}
	*s = Status(i)
	return nil
}

// UnmarshalText decodes a rejection reason.
func (r *Reason) UnmarshalText(text []byte) error {
	i, err := lookupName(reasonNames[:], text, "reason")
	if err != nil {
		return err
	}
	*r = Reason(i)
	return nil
}

// UnmarshalText decodes a step kind name.
func (k *StepKind) UnmarshalText(text []byte) error {
	i, err := lookupName(stepNames[:], text, "step kind")
	if err != nil {
		return err
	}
	*k = StepKind(i)
	return nil
}
