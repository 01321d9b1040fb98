package auth

import "golang.org/x/crypto/bcrypt"

// HashSecret хеширует чувствительные значения (номер документа), которые не храним в открытом виде
func HashSecret(value string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(value), bcrypt.DefaultCost)
	return string(b), err
}
