package callgw

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	domainerrors "github.com/central-university-dev/go-bed-caller/internal/domain/errors"
	"github.com/central-university-dev/go-bed-caller/internal/domain/models"
)

type CallEventService interface {
	HandleCallEvent(ctx context.Context, event *models.CallEvent) error
}

// WebhookServer принимает от шлюза события смены состояния звонков.
type WebhookServer struct {
	server  *http.Server
	service CallEventService
	logger  *slog.Logger
	port    int
}

func NewWebhookServer(port int, service CallEventService, logger *slog.Logger) *WebhookServer {
	s := &WebhookServer{
		service: service,
		logger:  logger,
		port:    port,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/call-state", s.handleCallState)

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	return s
}

// Handler возвращает корневой обработчик сервера.
func (s *WebhookServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *WebhookServer) Start() {
	s.logger.Info("Запуск приёмника событий звонков",
		"port", s.port,
	)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Ошибка приёмника событий звонков",
				"error", err,
			)
		}
	}()
}

func (s *WebhookServer) Stop(ctx context.Context) error {
	s.logger.Info("Остановка приёмника событий звонков")

	return s.server.Shutdown(ctx)
}

func (s *WebhookServer) handleCallState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var event models.CallEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch event.Status {
	case models.CallPending, models.CallKeyExchanged, models.CallDiscarded:
	default:
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := s.service.HandleCallEvent(r.Context(), &event); err != nil {
		if errors.Is(err, &domainerrors.ErrPersistence{}) {
			s.logger.Error("Не удалось сохранить состояние, завершение процесса",
				"error", err,
			)
			os.Exit(1)
		}

		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusOK)
}
