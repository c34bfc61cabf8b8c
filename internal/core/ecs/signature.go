package ecs

import "math/bits"

// Signature is a bitset over ComponentTypeIDs. It records which components an
// entity carries and which components a system requires.
type Signature []uint64

// NewSignature builds a fresh signature containing ids.
func NewSignature(ids ...ComponentTypeID) Signature {
	var s Signature
	for _, id := range ids {
		s = s.Set(id)
	}
	return s
}

// Set returns s with bit id set. The receiver's backing array may be reused.
func (s Signature) Set(id ComponentTypeID) Signature {
	word, pos := int(id)/64, uint(id)%64
	for len(s) <= word {
		s = append(s, 0)
	}
	s[word] |= 1 << pos
	return s
}

// Clear returns s with bit id cleared.
func (s Signature) Clear(id ComponentTypeID) Signature {
	word, pos := int(id)/64, uint(id)%64
	if len(s) <= word {
		return s
	}
	s[word] &^= 1 << pos
	return s
}

func (s Signature) Has(id ComponentTypeID) bool {
	word, pos := int(id)/64, uint(id)%64
	return word < len(s) && s[word]&(1<<pos) != 0
}

// Contains reports whether s is a superset of required.
func (s Signature) Contains(required Signature) bool {
	for i, w := range required {
		if w == 0 {
			continue
		}
		if i >= len(s) || s[i]&w != w {
			return false
		}
	}
	return true
}

// ForEach visits set bits in ascending order.
func (s Signature) ForEach(fn func(id ComponentTypeID)) {
	for wordIdx, word := range s {
		for word != 0 {
			bitPos := bits.TrailingZeros64(word)
			fn(ComponentTypeID(wordIdx*64 + bitPos))
			word &^= 1 << bitPos
		}
	}
}

// Len returns the number of set bits.
func (s Signature) Len() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}
