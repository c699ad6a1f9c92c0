package flagstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/gasable-portal/internal/domain/repository"
)

var _ repository.FlagStore = (*FileStore)(nil)

// FileStore banderas persistidas en un archivo JSON local; sobreviven a reinicios del proceso.
// Cada escritura reescribe el archivo completo vía archivo temporal + rename.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore crea el directorio padre si no existe. El archivo se crea en la primera escritura.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("flagstore: crear directorio: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) load() (map[string]json.RawMessage, error) {
	data := make(map[string]json.RawMessage)
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("flagstore: leer %s: %w", s.path, err)
	}
	if len(b) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("flagstore: archivo corrupto %s: %w", s.path, err)
	}
	return data, nil
}

func (s *FileStore) save(data map[string]json.RawMessage) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("flagstore: escribir: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("flagstore: rename: %w", err)
	}
	return nil
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return nil, false, err
	}
	v, ok := data[key]
	if !ok {
		return nil, false, nil
	}
	var raw string
	if err := json.Unmarshal(v, &raw); err != nil {
		return nil, false, fmt.Errorf("flagstore: valor inválido para %s: %w", key, err)
	}
	return []byte(raw), true, nil
}

// Set guarda el valor como string JSON (los valores de sesión ya son JSON o "true").
func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(string(value))
	if err != nil {
		return err
	}
	data[key] = encoded
	return s.save(data)
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return s.save(data)
}
