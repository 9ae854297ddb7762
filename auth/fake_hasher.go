package auth

import "errors"

// FakeHasher is a deterministic, fast Hasher for tests. Never use it to
// store real credentials.
type FakeHasher struct{}

func (FakeHasher) Hash(password string) (string, error) {
	return "fake:" + password, nil
}

func (FakeHasher) Compare(password, hash string) error {
	if hash != "fake:"+password {
		return errors.New("password mismatch")
	}
	return nil
}
