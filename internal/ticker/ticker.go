package ticker

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/go-co-op/gocron"

	domainerrors "github.com/central-university-dev/go-bed-caller/internal/domain/errors"
)

// TickHandler получает границы окна тика: принимать решения нужно по
// полуинтервалу (lastTick, now].
type TickHandler interface {
	Tick(ctx context.Context, lastTick, now time.Time) error
}

// Ticker вызывает обработчик с фиксированным периодом и двигает lastTick
// только после успешной обработки тика.
type Ticker struct {
	scheduler *gocron.Scheduler
	handler   TickHandler
	logger    *slog.Logger
	interval  time.Duration
	lastTick  time.Time
}

func NewTicker(handler TickHandler, interval time.Duration, logger *slog.Logger) *Ticker {
	scheduler := gocron.NewScheduler(time.UTC)
	// Тики не должны накладываться друг на друга: lastTick общий.
	scheduler.SingletonModeAll()

	return &Ticker{
		scheduler: scheduler,
		handler:   handler,
		logger:    logger,
		interval:  interval,
		lastTick:  time.Now(),
	}
}

func (t *Ticker) Start() {
	t.logger.Info("Запуск планировщика будильников",
		"interval", t.interval.String(),
	)

	_, err := t.scheduler.Every(t.interval).Do(func() {
		now := time.Now()
		ctx := context.Background()

		if err := t.handler.Tick(ctx, t.lastTick, now); err != nil {
			if errors.Is(err, &domainerrors.ErrPersistence{}) {
				t.logger.Error("Не удалось сохранить состояние, завершение процесса",
					"error", err,
				)
				os.Exit(1)
			}

			t.logger.Error("Ошибка при обработке тика",
				"error", err,
			)

			return
		}

		t.lastTick = now
	})
	if err != nil {
		t.logger.Error("Ошибка при настройке планировщика",
			"error", err,
		)

		return
	}

	t.scheduler.StartAsync()
}

func (t *Ticker) Stop() {
	t.logger.Info("Остановка планировщика будильников")
	t.scheduler.Stop()
}
