package admin

// SetCompareHash swaps the bcrypt comparison used by login and returns a restore func.
func SetCompareHash(fn func(hashed, password []byte) error) func() {
	prev := compareHash
	compareHash = fn
	return func() { compareHash = prev }
}
