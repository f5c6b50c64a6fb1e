// Package config содержит функции для работы с локальной конфигурацией CLI-клиента.
//
// Конфигурация хранит токен сессии и размещается в домашней директории
// пользователя в файле:
//
//	~/.notekeeper/credentials.json
//
// Путь и адрес сервера можно переопределить переменными окружения
// NOTEKEEPER_CREDENTIALS и NOTEKEEPER_SERVER.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// DefaultServerURL адрес сервера по умолчанию.
const DefaultServerURL = "http://127.0.0.1:8080"

// Credentials содержит учётные данные, используемые CLI-клиентом.
type Credentials struct {
	// AuthToken токен сессии, отправляется в заголовке auth-token.
	AuthToken string `json:"authtoken"`
	// Email с которым выполнен вход, только для вывода.
	Email string `json:"email,omitempty"`
	// Server адрес сервера, выдавшего токен.
	Server string `json:"server,omitempty"`
}

// LoggedIn сообщает, есть ли сохранённый токен.
func (c *Credentials) LoggedIn() bool {
	return c != nil && c.AuthToken != ""
}

// Env настройки клиента из окружения.
type Env struct {
	Server     string `env:"NOTEKEEPER_SERVER"`
	CredsPath  string `env:"NOTEKEEPER_CREDENTIALS"`
	AuthHeader string `env:"NOTEKEEPER_AUTH_HEADER"`
}

// LoadEnv читает переменные окружения клиента. Отсутствующие остаются пустыми.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}

// DefaultPath возвращает путь к файлу учётных данных в домашней директории пользователя.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".notekeeper", "credentials.json"), nil
}

// Load загружает учётные данные из указанного файла.
//
// Если файл не существует, возвращает пустые данные без ошибки.
func Load(path string) (*Credentials, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Credentials{}, nil
		}
		return nil, err
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save сохраняет учётные данные в JSON.
//
// Директория создаётся с правами 0700, файл пишется с правами 0600.
func Save(path string, c *Credentials) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// Clear удаляет файл учётных данных. Отсутствие файла не ошибка.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
