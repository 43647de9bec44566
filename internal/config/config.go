// internal/config/config.go

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"rssh/internal/apperr"
)

const (
	DefaultConfigFileName = "connections.json"
	DefaultConfigDir      = ".config/rssh"
	DefaultFilePerms      = 0600
)

// document jest formatem pliku konfiguracyjnego: alias -> user@host.
type document struct {
	Connections map[string]string `json:"connections"`
}

// Manager zarządza magazynem aliasów zapisanym jako dokument JSON.
type Manager struct {
	configPath string
	doc        document
}

// NewManager tworzy nowego menedżera magazynu aliasów.
func NewManager(configPath string) *Manager {
	if configPath == "" {
		defaultPath, err := GetDefaultConfigPath()
		if err == nil {
			configPath = defaultPath
		} else {
			// Fallback do bieżącego katalogu jeśli nie można uzyskać ścieżki domowej
			configPath = DefaultConfigFileName
		}
	}

	return &Manager{
		configPath: configPath,
		doc:        document{Connections: make(map[string]string)},
	}
}

// Load wczytuje magazyn z pliku. Brak pliku oznacza pusty magazyn.
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			m.doc = document{Connections: make(map[string]string)}
			return nil
		}
		return fmt.Errorf("failed to read config file: %v", err)
	}

	if err := json.Unmarshal(data, &m.doc); err != nil {
		return fmt.Errorf("failed to parse config file: %v", err)
	}
	if m.doc.Connections == nil {
		m.doc.Connections = make(map[string]string)
	}

	return nil
}

// Save zapisuje magazyn do pliku, tworząc wcześniej kopię poprzedniej wersji.
func (m *Manager) Save() error {
	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %v", err)
	}

	// Kopia zapasowa poprzedniego dokumentu, jeśli istnieje
	if content, err := os.ReadFile(m.configPath); err == nil {
		if err := os.WriteFile(m.configPath+".old", content, DefaultFilePerms); err != nil {
			return fmt.Errorf("failed to create backup file: %v", err)
		}
	}

	data, err := json.MarshalIndent(m.doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}

	if err := os.WriteFile(m.configPath, data, DefaultFilePerms); err != nil {
		return fmt.Errorf("failed to write config file: %v", err)
	}

	return nil
}

// Add dodaje lub nadpisuje alias.
func (m *Manager) Add(alias, connectionString string) {
	m.doc.Connections[alias] = connectionString
}

// Get zwraca connection string dla aliasu.
func (m *Manager) Get(alias string) (string, error) {
	conn, ok := m.doc.Connections[alias]
	if !ok {
		return "", apperr.Newf(apperr.AliasNotFound, nil, "alias '%s' not found", alias)
	}
	return conn, nil
}

// Remove usuwa alias; nieistniejący alias to błąd.
func (m *Manager) Remove(alias string) error {
	if _, ok := m.doc.Connections[alias]; !ok {
		return apperr.Newf(apperr.AliasNotFound, nil, "alias '%s' not found", alias)
	}
	delete(m.doc.Connections, alias)
	return nil
}

// Aliases zwraca posortowaną listę aliasów.
func (m *Manager) Aliases() []string {
	aliases := make([]string, 0, len(m.doc.Connections))
	for alias := range m.doc.Connections {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// Connections zwraca kopię mapy alias -> connection string.
func (m *Manager) Connections() map[string]string {
	out := make(map[string]string, len(m.doc.Connections))
	for alias, conn := range m.doc.Connections {
		out[alias] = conn
	}
	return out
}

// ConfigPath zwraca ścieżkę pliku magazynu.
func (m *Manager) ConfigPath() string {
	return m.configPath
}

// GetDefaultConfigPath zwraca domyślną ścieżkę pliku konfiguracyjnego.
func GetDefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get home directory: %v", err)
	}

	return filepath.Join(homeDir, DefaultConfigDir, DefaultConfigFileName), nil
}
