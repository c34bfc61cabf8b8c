package ecs

import (
	"unique"

	"golang.org/x/text/unicode/norm"
)

// Name is an interned entity name. Names compare and hash by value; the zero
// Name means "unnamed".
type Name struct {
	h unique.Handle[string]
}

// Intern returns the Name for s. Text is NFC-normalised so canonically
// equivalent spellings intern to the same Name.
func Intern(s string) Name {
	if s == "" {
		return Name{}
	}
	return Name{h: unique.Make(norm.NFC.String(s))}
}

func (n Name) IsZero() bool { return n == Name{} }

func (n Name) String() string {
	if n.IsZero() {
		return ""
	}
	return n.h.Value()
}
