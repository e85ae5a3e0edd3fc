package kraken

import (
	"fmt"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"dancespiele/pkg/crypto"
)

// Credentials - пара ключей для приватного API
type Credentials struct {
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
}

// encPrefix помечает зашифрованный секрет в keys.json
const encPrefix = "enc:"

// LoadCredentials читает ключи аккаунта из keys.json.
//
// Файл содержит несколько именованных аккаунтов:
//
//	{"main": {"api_key": "...", "api_secret": "..."}}
//
// Секрет с префиксом "enc:" расшифровывается ключом encryptionKey
// (AES-256-GCM). Пустой encryptionKey при зашифрованном секрете - ошибка.
func LoadCredentials(path, account, encryptionKey string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keys file: %w", err)
	}

	var accounts map[string]Credentials
	if err := jsoniter.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("parse keys file: %w", err)
	}

	creds, ok := accounts[account]
	if !ok {
		return nil, fmt.Errorf("account %q not found in %s", account, path)
	}
	if creds.APIKey == "" || creds.APISecret == "" {
		return nil, fmt.Errorf("account %q has empty api_key or api_secret", account)
	}

	if strings.HasPrefix(creds.APISecret, encPrefix) {
		if encryptionKey == "" {
			return nil, fmt.Errorf("account %q has encrypted secret but ENCRYPTION_KEY is not set", account)
		}
		plain, err := crypto.Decrypt(strings.TrimPrefix(creds.APISecret, encPrefix), []byte(encryptionKey))
		if err != nil {
			return nil, fmt.Errorf("decrypt api_secret for %q: %w", account, err)
		}
		creds.APISecret = plain
	}

	return &creds, nil
}
