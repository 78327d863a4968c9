package fixedpoint

func Sum(values []Value) (s Value) {
	s = Zero
	for _, value := range values {
		s = s.Add(value)
	}
	return s
}

func Max(a, b Value) Value {
	if a.Compare(b) >= 0 {
		return a
	}
	return b
}

func Min(a, b Value) Value {
	if a.Compare(b) <= 0 {
		return a
	}
	return b
}
