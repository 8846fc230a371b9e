// Package csvio implements CSV bulk loading and export of users and
// products, used by the authadmin tool for initial data seeding.
package csvio

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"encoding/csv"

	"github.com/iudanet/apistarter/internal/auth"
	"github.com/iudanet/apistarter/internal/models"
	"github.com/iudanet/apistarter/internal/server/storage"
	"github.com/iudanet/apistarter/internal/validation"
)

// LoadUsers загружает пользователей из CSV файла
// Ожидаемые колонки: id,username,email,password,role
// Пароли в файле хранятся открытым текстом и хешируются при загрузке
// тем же work factor, что и при регистрации.
// Если в хранилище уже есть пользователи, загрузка пропускается
func LoadUsers(ctx context.Context, store storage.UserStorage, path string) (int, error) {
	count, err := store.CountUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		// Данные уже загружены
		return 0, nil
	}

	rows, err := readCSV(path, []string{"id", "username", "email", "password", "role"})
	if err != nil {
		return 0, err
	}

	loaded := 0
	for _, row := range rows {
		role := validation.NormalizeIdentifier(row["role"])
		if !models.ValidRole(role) {
			return loaded, fmt.Errorf("invalid role %q for user %q", row["role"], row["username"])
		}

		hash, err := auth.HashPassword(row["password"])
		if err != nil {
			return loaded, fmt.Errorf("failed to hash password for user %q: %w", row["username"], err)
		}

		user := &models.User{
			Username:     validation.NormalizeIdentifier(row["username"]),
			Email:        validation.NormalizeIdentifier(row["email"]),
			PasswordHash: hash,
			Role:         role,
		}

		if err := store.CreateUser(ctx, user); err != nil {
			return loaded, fmt.Errorf("failed to insert user %q: %w", user.Username, err)
		}
		loaded++
	}

	return loaded, nil
}

// LoadProducts загружает товары из CSV файла
// Ожидаемые колонки: id,name,category,price
// Если в хранилище уже есть товары, загрузка пропускается
func LoadProducts(ctx context.Context, store storage.ProductStorage, path string) (int, error) {
	count, err := store.CountProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	rows, err := readCSV(path, []string{"id", "name", "category", "price"})
	if err != nil {
		return 0, err
	}

	loaded := 0
	for _, row := range rows {
		price, err := strconv.ParseFloat(row["price"], 64)
		if err != nil {
			return loaded, fmt.Errorf("invalid price %q for product %q: %w", row["price"], row["name"], err)
		}

		product := &models.Product{
			Name:     row["name"],
			Category: row["category"],
			Price:    price,
		}

		if err := store.CreateProduct(ctx, product); err != nil {
			return loaded, fmt.Errorf("failed to insert product %q: %w", product.Name, err)
		}
		loaded++
	}

	return loaded, nil
}

// readCSV читает CSV файл с заголовком и возвращает строки как map
// колонка -> значение. Отсутствие любой из required колонок — ошибка
func readCSV(path string, required []string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file %s is empty", path)
	}

	header := records[0]
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("CSV file %s is missing column %q", path, name)
		}
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(header) {
			return nil, fmt.Errorf("incomplete row in %s: %v", path, record)
		}
		row := make(map[string]string, len(header))
		for name, i := range index {
			row[name] = record[i]
		}
		rows = append(rows, row)
	}

	return rows, nil
}
