package telegram

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	domainerrors "github.com/central-university-dev/go-bed-caller/internal/domain/errors"
	"github.com/central-university-dev/go-bed-caller/internal/domain/models"
)

type EventService interface {
	ProcessCommand(ctx context.Context, cmd *models.Command) (string, error)

	ProcessMessage(ctx context.Context, msg *models.IncomingText) (string, error)

	HandleUserProfile(ctx context.Context, profile *models.UserProfile) error
}

// Poller принимает входящие сообщения и переводит их в события сервиса.
type Poller struct {
	client      *Client
	service     EventService
	logger      *slog.Logger
	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
}

func NewPoller(client *Client, service EventService, logger *slog.Logger) *Poller {
	return &Poller{
		client:   client,
		service:  service,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

func (p *Poller) Start() {
	p.logger.Info("Запуск Telegram поллера")

	bot := p.client.GetBot()
	if bot == nil {
		p.logger.Error("Не удалось получить доступ к API бота")
		return
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	p.updatesChan = bot.GetUpdatesChan(u)

	go func() {
		for {
			select {
			case <-p.stopChan:
				p.logger.Info("Получен сигнал остановки поллера")
				return
			case update := <-p.updatesChan:
				p.processUpdate(&update)
			}
		}
	}()
}

func (p *Poller) Stop() {
	p.logger.Info("Остановка Telegram поллера")
	close(p.stopChan)
}

func (p *Poller) processUpdate(update *tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	message := update.Message
	chatID := message.Chat.ID
	userID := message.From.ID

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := p.service.HandleUserProfile(ctx, &models.UserProfile{
		UserID:      userID,
		DisplayName: message.From.FirstName,
	}); err != nil {
		p.fail(err)
		return
	}

	text := message.Text
	if text == "" {
		return
	}

	p.logger.Info("Получено сообщение",
		"chat_id", chatID,
		"user_id", userID,
		"text", text,
	)

	var (
		reply string
		err   error
	)

	switch {
	case p.isHelpRequest(text):
		reply, err = p.service.ProcessCommand(ctx, &models.Command{
			Type:      models.CommandHelp,
			ChatID:    chatID,
			UserID:    userID,
			MessageID: message.MessageID,
		})
	case strings.HasPrefix(text, "#"):
		cmdType, args := models.ParseCommand(text)
		reply, err = p.service.ProcessCommand(ctx, &models.Command{
			Type:      cmdType,
			ChatID:    chatID,
			UserID:    userID,
			MessageID: message.MessageID,
			Args:      args,
		})
	default:
		reply, err = p.service.ProcessMessage(ctx, &models.IncomingText{
			ChatID:    chatID,
			UserID:    userID,
			MessageID: message.MessageID,
			Text:      text,
		})
	}

	if err != nil {
		p.fail(err)

		p.logger.Warn("Команда отклонена",
			"chat_id", chatID,
			"error", err,
		)
	}

	if reply == "" {
		return
	}

	if err := p.client.SendText(ctx, chatID, reply, message.MessageID); err != nil {
		p.logger.Error("Ошибка при отправке ответа",
			"chat_id", chatID,
			"error", err,
		)
	}
}

func (p *Poller) isHelpRequest(text string) bool {
	if text == "/help" {
		return true
	}

	bot := p.client.GetBot()

	return bot != nil && text == "/help@"+bot.Self.UserName
}

// fail завершает процесс при ошибке сохранения состояния.
func (p *Poller) fail(err error) {
	if !errors.Is(err, &domainerrors.ErrPersistence{}) {
		return
	}

	p.logger.Error("Не удалось сохранить состояние, завершение процесса",
		"error", err,
	)
	os.Exit(1)
}
