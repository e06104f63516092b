package auth

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword возвращает bcrypt-хеш пароля
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword сравнивает пароль с хешем
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// dummyHash заменяет хеш отсутствующего пользователя
var dummyHash = sync.OnceValue(func() string {
	hashed, err := bcrypt.GenerateFromPassword([]byte("company-directory"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(hashed)
})

// VerifyPassword сравнивает пароль с хешем пользователя. Пустой хеш означает, что
// пользователь не найден: сравнение идёт с фиктивным хешем той же стоимости и всегда неуспешно.
func VerifyPassword(hash, password string) bool {
	if hash == "" {
		CheckPassword(dummyHash(), password)
		return false
	}
	return CheckPassword(hash, password)
}
