package glm

type Vec2[T numeric] [2]T

func (lhs Vec2[T]) Add(rhs Vec2[T]) Vec2[T] {
	return Vec2[T]{lhs[0] + rhs[0], lhs[1] + rhs[1]}
}

func (lhs Vec2[T]) Sub(rhs Vec2[T]) Vec2[T] {
	return Vec2[T]{lhs[0] - rhs[0], lhs[1] - rhs[1]}
}

func (lhs Vec2[T]) MulScalar(s T) Vec2[T] {
	return Vec2[T]{lhs[0] * s, lhs[1] * s}
}

func (lhs Vec2[T]) XY() (x, y T) {
	return lhs[0], lhs[1]
}

// ToVec2f converts the vector into a float32 vector
func (lhs Vec2[T]) ToVec2f() Vec2f {
	return Vec2f{float32(lhs[0]), float32(lhs[1])}
}
