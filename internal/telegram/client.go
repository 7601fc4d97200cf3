package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// Client — обёртка над Bot API: текстовые сообщения и ограничения участников
// групп. Исходящие запросы проходят через общий лимитер.
type Client struct {
	bot     *tgbotapi.BotAPI
	limiter *rate.Limiter
	logger  *slog.Logger
}

func NewClient(token string, sendRateLimit int, logger *slog.Logger) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к Bot API: %w", err)
	}

	logger.Info("Telegram клиент авторизован",
		"username", bot.Self.UserName,
	)

	return &Client{
		bot:     bot,
		limiter: rate.NewLimiter(rate.Limit(sendRateLimit), sendRateLimit),
		logger:  logger,
	}, nil
}

func (c *Client) GetBot() *tgbotapi.BotAPI {
	return c.bot
}

func (c *Client) SendText(ctx context.Context, chatID int64, text string, replyTo int) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if replyTo != 0 {
		msg.ReplyToMessageID = replyTo
	}

	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("ошибка при отправке сообщения: %w", err)
	}

	return nil
}

func (c *Client) RestrictMember(ctx context.Context, chatID, userID int64) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	cfg := tgbotapi.RestrictChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{
			ChatID: chatID,
			UserID: userID,
		},
		// Бессрочно: снимается явным RestoreMember.
		UntilDate: 0,
		Permissions: &tgbotapi.ChatPermissions{
			CanSendMessages: false,
		},
	}

	if _, err := c.bot.Request(cfg); err != nil {
		return fmt.Errorf("ошибка при ограничении участника: %w", err)
	}

	return nil
}

func (c *Client) RestoreMember(ctx context.Context, chatID, userID int64) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	cfg := tgbotapi.RestrictChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{
			ChatID: chatID,
			UserID: userID,
		},
		Permissions: &tgbotapi.ChatPermissions{
			CanSendMessages:       true,
			CanSendMediaMessages:  true,
			CanSendOtherMessages:  true,
			CanAddWebPagePreviews: true,
		},
	}

	if _, err := c.bot.Request(cfg); err != nil {
		return fmt.Errorf("ошибка при снятии ограничения: %w", err)
	}

	return nil
}
