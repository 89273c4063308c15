package util

// Pair is used for key-value arguments, such as the entries of a dict literal
type Pair[A, B any] struct {
	Fst A
	Snd B
}

func NewPair[A, B any](fst A, snd B) Pair[A, B] {
	return Pair[A, B]{Fst: fst, Snd: snd}
}

// Unpack returns both halves of p
func (p Pair[A, B]) Unpack() (A, B) {
	return p.Fst, p.Snd
}
