// internal/vault/vault.go

package vault

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"rssh/internal/crypto"
)

const (
	DefaultVaultFileName = "vault.json"
	DefaultKeyFileName   = "vault.key"
)

// ErrNotFound sygnalizuje brak sekretu dla danej pary (service, alias).
var ErrNotFound = errors.New("secret not found")

// Vault przechowuje sekrety per (service, alias). Usunięcie
// nieistniejącego wpisu nie jest błędem.
type Vault interface {
	GetSecret(service, alias string) (string, error)
	SetSecret(service, alias, secret string) error
	DeleteSecret(service, alias string) error
}

// FileVault trzyma sekrety w pliku JSON, zaszyfrowane AES-256-GCM
// kluczem generowanym przy pierwszym użyciu.
type FileVault struct {
	vaultPath string
	keyPath   string
}

// NewFileVault tworzy vault w podanym katalogu.
func NewFileVault(dir string) *FileVault {
	return &FileVault{
		vaultPath: filepath.Join(dir, DefaultVaultFileName),
		keyPath:   filepath.Join(dir, DefaultKeyFileName),
	}
}

// DefaultDir zwraca domyślny katalog vaulta (obok pliku konfiguracji).
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get home directory: %v", err)
	}
	return filepath.Join(homeDir, ".config/rssh"), nil
}

// entryKey buduje klucz wpisu w dokumencie vaulta.
func entryKey(service, alias string) string {
	return service + "/" + alias
}

func (v *FileVault) cipher(createKey bool) (*crypto.Cipher, error) {
	data, err := os.ReadFile(v.keyPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) || !createKey {
			return nil, fmt.Errorf("failed to read vault key: %v", err)
		}

		// Pierwsze użycie: generujemy klucz i zapisujemy z prawami 0600
		key, err := crypto.GenerateKey()
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(v.keyPath), 0700); err != nil {
			return nil, fmt.Errorf("failed to create vault directory: %v", err)
		}
		if err := os.WriteFile(v.keyPath, []byte(hex.EncodeToString(key)), 0600); err != nil {
			return nil, fmt.Errorf("failed to write vault key: %v", err)
		}
		return crypto.NewCipher(key)
	}

	key, err := hex.DecodeString(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode vault key: %v", err)
	}
	return crypto.NewCipher(key)
}

func (v *FileVault) load() (map[string]string, error) {
	data, err := os.ReadFile(v.vaultPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read vault file: %v", err)
	}

	entries := make(map[string]string)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse vault file: %v", err)
	}
	return entries, nil
}

func (v *FileVault) save(entries map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(v.vaultPath), 0700); err != nil {
		return fmt.Errorf("failed to create vault directory: %v", err)
	}

	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal vault: %v", err)
	}

	if err := os.WriteFile(v.vaultPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write vault file: %v", err)
	}
	return nil
}

// GetSecret zwraca odszyfrowany sekret albo ErrNotFound.
func (v *FileVault) GetSecret(service, alias string) (string, error) {
	entries, err := v.load()
	if err != nil {
		return "", err
	}

	sealed, ok := entries[entryKey(service, alias)]
	if !ok {
		return "", ErrNotFound
	}

	cipher, err := v.cipher(false)
	if err != nil {
		return "", err
	}
	return cipher.Decrypt(sealed)
}

// SetSecret zapisuje sekret, nadpisując poprzedni.
func (v *FileVault) SetSecret(service, alias, secret string) error {
	cipher, err := v.cipher(true)
	if err != nil {
		return err
	}

	sealed, err := cipher.Encrypt(secret)
	if err != nil {
		return err
	}

	entries, err := v.load()
	if err != nil {
		return err
	}
	entries[entryKey(service, alias)] = sealed

	return v.save(entries)
}

// DeleteSecret usuwa sekret; brak wpisu to cicha zgoda.
func (v *FileVault) DeleteSecret(service, alias string) error {
	entries, err := v.load()
	if err != nil {
		return err
	}

	key := entryKey(service, alias)
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)

	return v.save(entries)
}
