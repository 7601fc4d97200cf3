package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/central-university-dev/go-bed-caller/internal/common/metrics"
	"github.com/central-university-dev/go-bed-caller/internal/domain/models"
)

type TextSender interface {
	SendText(ctx context.Context, chatID int64, text string, replyTo int) error
}

type MemberModerator interface {
	RestrictMember(ctx context.Context, chatID, userID int64) error

	RestoreMember(ctx context.Context, chatID, userID int64) error
}

type CallGateway interface {
	PlaceCall(ctx context.Context, userID int64) error

	DiscardCall(ctx context.Context, callID int64) error
}

// Dispatcher раскладывает закрытый набор исходящих действий по коллабораторам.
type Dispatcher struct {
	texts   TextSender
	members MemberModerator
	calls   CallGateway
	logger  *slog.Logger
}

func NewDispatcher(texts TextSender, members MemberModerator, calls CallGateway, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		texts:   texts,
		members: members,
		calls:   calls,
		logger:  logger,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, action models.Action) error {
	switch a := action.(type) {
	case *models.SendText:
		return d.texts.SendText(ctx, a.ChatID, a.Text, a.ReplyTo)
	case *models.PlaceCall:
		metrics.RecordCallPlaced()

		return d.calls.PlaceCall(ctx, a.UserID)
	case *models.DiscardCall:
		return d.calls.DiscardCall(ctx, a.CallID)
	case *models.RestrictMember:
		return d.members.RestrictMember(ctx, a.ChatID, a.UserID)
	case *models.RestoreMember:
		return d.members.RestoreMember(ctx, a.ChatID, a.UserID)
	default:
		return fmt.Errorf("неизвестное исходящее действие: %T", action)
	}
}
