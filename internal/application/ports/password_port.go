package ports

// PasswordHasher puerto de hashing de passwords; lo implementa *password.Hasher.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, encoded string) (bool, error)
}
