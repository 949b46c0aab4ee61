package linalg

// Commutator returns [A, B] = AB − BA.
func Commutator(a, b Matrix) (Matrix, error) {
	ab, ba, err := products("commutator", a, b)
	if err != nil {
		return nil, err
	}
	return Sub(ab, ba)
}

// Anticommutator returns {A, B} = AB + BA.
func Anticommutator(a, b Matrix) (Matrix, error) {
	ab, ba, err := products("anticommutator", a, b)
	if err != nil {
		return nil, err
	}
	return Add(ab, ba)
}

func products(op string, a, b Matrix) (Matrix, Matrix, error) {
	if !a.IsSquare() || !b.IsSquare() || a.Rows() != b.Rows() {
		return nil, nil, &DimensionError{Op: op, Want: "square matrices of equal size", Got: shape(a) + ", " + shape(b)}
	}
	ab, err := Mul(a, b)
	if err != nil {
		return nil, nil, err
	}
	ba, err := Mul(b, a)
	if err != nil {
		return nil, nil, err
	}
	return ab, ba, nil
}
