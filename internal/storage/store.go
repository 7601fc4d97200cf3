package storage

import (
	"errors"
	"log/slog"
	"sync"

	domainerrors "github.com/central-university-dev/go-bed-caller/internal/domain/errors"
	"github.com/central-university-dev/go-bed-caller/internal/domain/models"
)

// Store владеет всем состоянием процесса. Доступ сериализуется одним
// мьютексом: чтение, мутация и выбор ответа выполняются внутри одной
// критической секции, снимок пишется на диск после каждой мутации.
type Store struct {
	mu       sync.Mutex
	state    *models.State
	snapshot Snapshotter
	logger   *slog.Logger
}

func NewStore(snapshot Snapshotter, logger *slog.Logger) (*Store, error) {
	state, err := snapshot.Load()

	switch {
	case errors.Is(err, ErrNotFound):
		logger.Info("Файл состояния отсутствует, создано пустое состояние")

		state = models.NewState()
	case err != nil:
		return nil, err
	}

	store := &Store{
		state:    state,
		snapshot: snapshot,
		logger:   logger,
	}

	// Нормализует файл сразу после загрузки.
	if err := store.snapshot.Save(state); err != nil {
		return nil, &domainerrors.ErrPersistence{Err: err}
	}

	return store, nil
}

// View выполняет fn с доступом на чтение под блокировкой.
func (s *Store) View(fn func(state *models.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.state)
}

// Mutate выполняет fn под блокировкой и сохраняет снимок, если fn
// сообщила об изменении. Ошибка сохранения фатальна для вызывающего.
func (s *Store) Mutate(fn func(state *models.State) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !fn(s.state) {
		return nil
	}

	if err := s.snapshot.Save(s.state); err != nil {
		return &domainerrors.ErrPersistence{Err: err}
	}

	return nil
}
