package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost задает стоимость bcrypt для всех путей хеширования:
// и для регистрации/логина, и для bulk загрузки пользователей.
// Один явный work factor вместо смеси дефолтов.
const PasswordCost = 12

// HashPassword хеширует пароль с использованием bcrypt
// Соль генерируется автоматически, поэтому два вызова для одного
// пароля дают разные строки
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword проверяет, соответствует ли пароль сохраненному хешу
// Никогда не возвращает ошибку: битый или пустой хеш дает false
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
