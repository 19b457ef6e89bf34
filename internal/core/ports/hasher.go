package ports

// PasswordHasher is an opaque one-way hash capability: Hash produces a
// storable digest, Verify compares a candidate password against one in
// constant time.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}
