package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/central-university-dev/go-bed-caller/internal/domain/models"
)

// ErrNotFound возвращается, когда файла состояния ещё нет.
var ErrNotFound = errors.New("состояние не найдено")

// Snapshotter сохраняет и загружает полный снимок состояния.
type Snapshotter interface {
	Load() (*models.State, error)
	Save(state *models.State) error
}

// FileSnapshot хранит снимок состояния в JSON-файле на диске.
type FileSnapshot struct {
	path string
}

func NewFileSnapshot(path string) *FileSnapshot {
	return &FileSnapshot{
		path: filepath.Clean(path),
	}
}

func (f *FileSnapshot) Load() (*models.State, error) {
	contents, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("ошибка чтения файла состояния: %w", err)
	}

	state := models.NewState()
	if err := json.Unmarshal(contents, state); err != nil {
		return nil, fmt.Errorf("ошибка разбора файла состояния: %w", err)
	}

	return state, nil
}

func (f *FileSnapshot) Save(state *models.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("ошибка сериализации состояния: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("ошибка записи файла состояния: %w", err)
	}

	return nil
}
