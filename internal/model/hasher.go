package model

// PasswordHasher hashes passwords one-way and verifies them in constant
// time. Verify returns false on a malformed stored hash, it never fails
// open.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}
