package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/iudanet/apistarter/internal/server/storage"
)

// timestamp возвращает текущее время в формате YYYYMMDD_HHMMSS
// для имен экспортных файлов
func timestamp() string {
	return time.Now().Format("20060102_150405")
}

// ExportUsers выгружает всех пользователей в CSV файл
// <dir>/users_<timestamp>.csv. В файл попадает сохраненный хеш,
// открытых паролей в системе нет.
// Возвращает путь к созданному файлу
func ExportUsers(ctx context.Context, store storage.UserStorage, dir string) (string, error) {
	users, err := store.ListUsers(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list users: %w", err)
	}
	if len(users) == 0 {
		return "", fmt.Errorf("no users to export")
	}

	records := [][]string{{"id", "username", "email", "password_hash", "role"}}
	for _, u := range users {
		records = append(records, []string{
			strconv.FormatInt(u.ID, 10),
			u.Username,
			u.Email,
			u.PasswordHash,
			u.Role,
		})
	}

	return writeCSV(dir, "users", records)
}

// ExportProducts выгружает все товары в CSV файл
// <dir>/products_<timestamp>.csv
// Возвращает путь к созданному файлу
func ExportProducts(ctx context.Context, store storage.ProductStorage, dir string) (string, error) {
	// Выгружаем весь каталог постранично
	const pageSize = 500

	records := [][]string{{"id", "name", "category", "price"}}
	for offset := 0; ; offset += pageSize {
		page, err := store.ListProducts(ctx, pageSize, offset)
		if err != nil {
			return "", fmt.Errorf("failed to list products: %w", err)
		}
		if len(page) == 0 {
			break
		}
		for _, p := range page {
			records = append(records, []string{
				strconv.FormatInt(p.ID, 10),
				p.Name,
				p.Category,
				strconv.FormatFloat(p.Price, 'f', -1, 64),
			})
		}
	}

	if len(records) == 1 {
		return "", fmt.Errorf("no products to export")
	}

	return writeCSV(dir, "products", records)
}

// writeCSV создает каталог экспорта и пишет records в файл с timestamp
func writeCSV(dir, name string, records [][]string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", name, timestamp()))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(records); err != nil {
		return "", fmt.Errorf("failed to write CSV: %w", err)
	}

	return path, nil
}
