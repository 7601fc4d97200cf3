package service

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/multierr"

	"github.com/central-university-dev/go-bed-caller/internal/challenge"
	"github.com/central-university-dev/go-bed-caller/internal/common/metrics"
	domainerrors "github.com/central-university-dev/go-bed-caller/internal/domain/errors"
	"github.com/central-university-dev/go-bed-caller/internal/domain/models"
	"github.com/central-university-dev/go-bed-caller/internal/schedule"
	"github.com/central-university-dev/go-bed-caller/internal/storage"
)

// ActionDispatcher отправляет исходящее действие внешнему коллаборатору.
type ActionDispatcher interface {
	Dispatch(ctx context.Context, action models.Action) error
}

// AlarmService — жизненный цикл будильников: команды пользователя, события
// звонков, проверочные ответы и решение о срабатывании на каждом тике.
// Мутации состояния выполняются под блокировкой Store, исходящие действия
// накапливаются и отправляются после выхода из критической секции.
type AlarmService struct {
	store        *storage.Store
	dispatcher   ActionDispatcher
	logger       *slog.Logger
	retryDelay   time.Duration
	cancelWindow time.Duration
	now          func() time.Time
}

func NewAlarmService(
	store *storage.Store,
	dispatcher ActionDispatcher,
	retryDelay time.Duration,
	cancelWindow time.Duration,
	logger *slog.Logger,
) *AlarmService {
	return &AlarmService{
		store:        store,
		dispatcher:   dispatcher,
		logger:       logger,
		retryDelay:   retryDelay,
		cancelWindow: cancelWindow,
		now:          time.Now,
	}
}

const timeLayout = "2006-01-02 15:04 -07:00"

// location возвращает часовой пояс пользователя; читается внутри
// критической секции вызывающего.
func (s *AlarmService) location(state *models.State, userID int64) *time.Location {
	name, ok := state.Timezones[userID]
	if !ok {
		return time.Local
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}

	return loc
}

// liftSleep снимает ограничения во всех чатах, где пользователь замолчал,
// и очищает его список. Вызывается внутри критической секции.
func liftSleep(state *models.State, userID int64) []models.Action {
	chats := state.Sleeping[userID]
	if len(chats) == 0 {
		return nil
	}

	actions := make([]models.Action, 0, len(chats))
	for _, chatID := range chats {
		actions = append(actions, &models.RestoreMember{ChatID: chatID, UserID: userID})
	}

	state.Sleeping[userID] = nil

	return actions
}

func (s *AlarmService) dispatchAll(ctx context.Context, actions []models.Action) {
	var errs error

	for _, action := range actions {
		errs = multierr.Append(errs, s.dispatcher.Dispatch(ctx, action))
	}

	if errs != nil {
		s.logger.Error("Ошибка при отправке исходящих действий",
			"error", errs,
		)
	}
}

// Tick — однократный проход планировщика по всем будильникам.
// Будильник срабатывает, когда его момент попадает в полуинтервал
// (lastTick, now]: каждый момент времени обрабатывается ровно один раз.
func (s *AlarmService) Tick(ctx context.Context, lastTick, now time.Time) error {
	metrics.RecordTick()

	var actions []models.Action

	err := s.store.Mutate(func(state *models.State) bool {
		changed := false

		for userID, alarms := range state.Alarms {
			loc := s.location(state, userID)

			for _, alarm := range alarms {
				if alarm.Disabled || alarm.Pending {
					continue
				}

				var due time.Time

				if alarm.Informing {
					if alarm.RetryAt == 0 {
						continue
					}

					due = time.Unix(alarm.RetryAt, 0)
				} else {
					next, ok := schedule.NextOccurrence(alarm.Cron, loc, lastTick)
					if !ok {
						continue
					}

					due = next
				}

				if !due.After(lastTick) || due.After(now) {
					continue
				}

				if alarm.Onceoff {
					alarm.Onceoff = false
					changed = true

					s.logger.Info("Будильник пропущен: отменён на один раз",
						"alarm", alarm.String(),
					)

					continue
				}

				alarm.Pending = true
				alarm.Informing = true
				alarm.RetryAt = now.Add(s.retryDelay).Unix()
				changed = true

				if alarm.Title != "" {
					actions = append(actions, &models.SendText{ChatID: alarm.ChatID, Text: alarm.Title})
				}

				actions = append(actions, &models.PlaceCall{UserID: alarm.UserID})

				metrics.RecordAlarmFired()

				s.logger.Info("Будильник звонит",
					"alarm", alarm.String(),
					"retry_at", alarm.RetryAt,
				)
			}
		}

		return changed
	})
	if err != nil {
		return err
	}

	s.dispatchAll(ctx, actions)

	return nil
}

// HandleCallEvent применяет событие звонка к ожидающим будильникам.
func (s *AlarmService) HandleCallEvent(ctx context.Context, event *models.CallEvent) error {
	metrics.RecordCallEvent(string(event.Status))

	// Непрошеные входящие звонки сбрасываются.
	if !event.IsOutgoing {
		if event.Status == models.CallPending {
			s.dispatchAll(ctx, []models.Action{&models.DiscardCall{CallID: event.CallID}})
		}

		return nil
	}

	var actions []models.Action

	err := s.store.Mutate(func(state *models.State) bool {
		switch event.Status {
		case models.CallKeyExchanged:
			return s.applyAnswered(state, event.UserID, &actions)
		case models.CallDiscarded:
			return s.applyDeclined(state, event.UserID, &actions)
		case models.CallPending:
			return false
		default:
			return false
		}
	})
	if err != nil {
		return err
	}

	s.dispatchAll(ctx, actions)

	return nil
}

// applyAnswered — звонок принят: нестрогий будильник снимается, строгий
// переходит в ожидание проверочного ответа.
func (s *AlarmService) applyAnswered(state *models.State, userID int64, actions *[]models.Action) bool {
	changed := false

	for _, alarm := range state.Alarms[userID] {
		if !alarm.Pending {
			continue
		}

		alarm.Pending = false
		changed = true

		if !alarm.Strict {
			alarm.Informing = false
			*actions = append(*actions, liftSleep(state, userID)...)

			metrics.RecordAlarmResolved("answer")

			s.logger.Info("Будильник снят: звонок принят",
				"alarm", alarm.String(),
			)

			continue
		}

		digits, answer, script := challenge.Generate()
		alarm.ChallengeAnswer = answer

		*actions = append(*actions, &models.SendText{
			ChatID: userID,
			Text:   "Чтобы отключить будильник, введите эти цифры символами «" + script + "»:\n" + digits,
		})

		metrics.RecordChallengeIssued()

		s.logger.Info("Выдано проверочное задание",
			"alarm", alarm.String(),
		)
	}

	return changed
}

// applyDeclined — звонок сброшен: будильник остаётся активным и зазвонит
// снова по retryAt. В групповом чате просим разбудить соню.
func (s *AlarmService) applyDeclined(state *models.State, userID int64, actions *[]models.Action) bool {
	changed := false

	for _, alarm := range state.Alarms[userID] {
		if !alarm.Pending {
			continue
		}

		alarm.Pending = false
		changed = true

		s.logger.Info("Звонок сброшен, будет повтор",
			"alarm", alarm.String(),
			"retry_at", alarm.RetryAt,
		)

		if alarm.ChatID < 0 {
			name, ok := state.Users[userID]
			if !ok {
				name = "соня"
			}

			*actions = append(*actions, &models.SendText{
				ChatID: alarm.ChatID,
				Text:   name + " не берёт трубку! Разбудите его каким-нибудь другим способом!",
			})
		}
	}

	return changed
}

// ProcessMessage обрабатывает обычный текст: пока строгий будильник активен,
// точное совпадение с ответом на задание снимает его. Сравнение побайтовое,
// без обрезки пробелов.
func (s *AlarmService) ProcessMessage(ctx context.Context, msg *models.IncomingText) (string, error) {
	var (
		reply   string
		actions []models.Action
	)

	err := s.store.Mutate(func(state *models.State) bool {
		for _, alarm := range state.Alarms[msg.UserID] {
			if !alarm.Strict || !alarm.Informing {
				continue
			}

			if msg.Text != alarm.ChallengeAnswer {
				continue
			}

			alarm.Informing = false
			actions = append(actions, liftSleep(state, msg.UserID)...)

			if alarm.Title == "" {
				reply = "Будильник отключён."
			} else {
				reply = "Будильник «" + alarm.Title + "» отключён."
			}

			metrics.RecordAlarmResolved("challenge")

			s.logger.Info("Будильник снят: задание выполнено",
				"alarm", alarm.String(),
			)

			return true
		}

		return false
	})
	if err != nil {
		return "", err
	}

	s.dispatchAll(ctx, actions)

	return reply, nil
}

// HandleUserProfile запоминает отображаемое имя для упоминаний в группах.
func (s *AlarmService) HandleUserProfile(_ context.Context, profile *models.UserProfile) error {
	return s.store.Mutate(func(state *models.State) bool {
		if state.Users[profile.UserID] == profile.DisplayName {
			return false
		}

		state.Users[profile.UserID] = profile.DisplayName

		return true
	})
}

func (s *AlarmService) ProcessCommand(ctx context.Context, cmd *models.Command) (string, error) {
	metrics.RecordCommand(string(cmd.Type))

	switch cmd.Type {
	case models.CommandHelp:
		return helpText, nil
	case models.CommandTimezone:
		return s.handleTimezone(cmd)
	case models.CommandAlarm:
		return s.handleAlarm(cmd, false)
	case models.CommandStrictAlarm:
		return s.handleAlarm(cmd, true)
	case models.CommandList:
		return s.handleList(cmd)
	case models.CommandDisalarm:
		return s.handleDisalarm(ctx, cmd)
	case models.CommandDisable:
		return s.applyAlarmOp(cmd, opDisable)
	case models.CommandEnable:
		return s.applyAlarmOp(cmd, opEnable)
	case models.CommandStrict:
		return s.applyAlarmOp(cmd, opToggleStrict)
	case models.CommandNext:
		return s.handleNext(cmd)
	case models.CommandPurge:
		return s.handlePurge(cmd)
	case models.CommandSleep:
		return "Нет такой команды. Наверное, вы имели в виду #sleep!", nil
	case models.CommandSleepConfirm:
		return s.handleSleep(ctx, cmd)
	default:
		return "Неизвестная команда. Введите #help для просмотра доступных команд.",
			&domainerrors.ErrUnknownCommand{Command: string(cmd.Type)}
	}
}

const helpText = `Доступные команды:
#help - список команд
#timezone [зона] - показать или установить часовой пояс (например, Europe/Moscow)
#alarm ЧЧ:ММ [день недели|once] [#название] - поставить будильник
#alarm! ... - то же самое, но в строгом режиме
#list - список будильников
#disalarm [номер] - отменить ближайший звонок или удалить будильник по номеру
#disable <номер> - отключить будильник
#enable <номер> - включить будильник
#strict <номер> - переключить строгий режим
#next - ближайший будильник
#purge - удалить будильники, которые больше не прозвенят
#sleep! - замолчать в этом чате до следующего звонка`
