package auth

import "golang.org/x/crypto/bcrypt"

// HashSecret hashes a plaintext secret with the configured cost. The same
// transform is applied at account creation and at login; no plaintext path
// exists.
func HashSecret(secret string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CompareSecret verifies a secret against its hashed value.
func CompareSecret(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
