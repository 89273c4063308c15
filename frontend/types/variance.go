package types

// Variance says how a parameter of a generic class relates subtyping of the
// argument to subtyping of the instantiated class
type Variance struct {
	covariant, contravariant bool
}

var (
	Bivariant     = Variance{covariant: true, contravariant: true}
	Covariant     = Variance{covariant: true}
	Contravariant = Variance{contravariant: true}
	Invariant     = Variance{}
)

func (v Variance) IsCovariant() bool     { return v.covariant }
func (v Variance) IsContravariant() bool { return v.contravariant }

func (v Variance) String() string {
	switch v {
	case Bivariant:
		return "±"
	case Covariant:
		return "+"
	case Contravariant:
		return "-"
	default:
		return "="
	}
}
