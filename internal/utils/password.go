package utils

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt cost used for the staff password hash.
const PasswordCost = 12

// HashPassword returns a bcrypt hash of plain.  A cost outside bcrypt's
// accepted range falls back to PasswordCost.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = PasswordCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a bcrypt hash with a plain password in
// constant time.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
