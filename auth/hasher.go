package auth

import "golang.org/x/crypto/bcrypt"

// Hasher abstracts password hashing so tests can substitute a fast fake.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(password, hash string) error
}

const bcryptCost = 10

type BcryptHasher struct{}

func (BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (BcryptHasher) Compare(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
