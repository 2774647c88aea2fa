package domain

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// User models an operator or voter account.
type User struct {
	Base     `bson:",inline"`
	Name     string `json:"name" bson:"name"`
	Email    string `json:"email" bson:"email"`
	Password string `json:"-" bson:"password"` // bcrypt hash, never rendered
	RoleID   string `json:"role_id,omitempty" bson:"role_id,omitempty"`

	// GeneratedPassword holds the plaintext of an auto-generated password so
	// it can be shown to the operator exactly once. Never persisted.
	GeneratedPassword string `json:"generated_password,omitempty" bson:"-"`
}

// VerifyPassword reports whether the plaintext password matches the stored hash.
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

const (
	generatedPasswordLen     = 16
	generatedPasswordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
)

// GeneratePassword returns a random strong password for accounts created
// without an explicit password parameter.
func GeneratePassword() string {
	out := make([]byte, generatedPasswordLen)
	max := big.NewInt(int64(len(generatedPasswordCharset)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand never fails on supported platforms; keep the
			// charset's first symbol as a harmless fallback.
			out[i] = generatedPasswordCharset[0]
			continue
		}
		out[i] = generatedPasswordCharset[n.Int64()]
	}
	return string(out)
}
