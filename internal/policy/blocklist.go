// Package policy implements the registration-time email-domain blocklist.
package policy

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Blocklist — неизменяемый набор заблокированных email доменов
// Загружается один раз при старте процесса и дальше только читается,
// поэтому безопасен для конкурентного использования без блокировок
type Blocklist struct {
	domains map[string]struct{}
}

// blocklistFile описывает формат JSON файла со списком доменов
type blocklistFile struct {
	BlockedDomains []string `json:"blocked_domains"`
}

// LoadBlocklist загружает blocklist из JSON файла вида
// {"blocked_domains": ["tempmail.com", ...]}
// Отсутствующий или битый файл — ошибка запуска, не per-request ошибка
func LoadBlocklist(path string) (*Blocklist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blocklist file: %w", err)
	}

	var file blocklistFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse blocklist file: %w", err)
	}

	return NewBlocklist(file.BlockedDomains), nil
}

// NewBlocklist создает blocklist из списка доменов
// Домены нормализуются к lowercase
func NewBlocklist(domains []string) *Blocklist {
	set := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		set[strings.ToLower(d)] = struct{}{}
	}
	return &Blocklist{domains: set}
}

// Allowed проверяет, разрешен ли email для регистрации
// Берется домен после последнего "@", сравнение case-insensitive;
// строка без "@" целиком считается доменом.
// Проверка выполняется только при регистрации и никогда не
// перепроверяется на login или refresh
func (b *Blocklist) Allowed(email string) bool {
	domain := strings.ToLower(email[strings.LastIndex(email, "@")+1:])
	_, blocked := b.domains[domain]
	return !blocked
}

// Len возвращает количество доменов в blocklist
func (b *Blocklist) Len() int {
	return len(b.domains)
}
