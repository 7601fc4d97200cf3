package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	domainerrors "github.com/central-university-dev/go-bed-caller/internal/domain/errors"
	"github.com/central-university-dev/go-bed-caller/internal/domain/models"
	"github.com/central-university-dev/go-bed-caller/internal/schedule"
)

func (s *AlarmService) handleTimezone(cmd *models.Command) (string, error) {
	if cmd.Args == "" {
		var current string

		s.store.View(func(state *models.State) {
			current = state.Timezones[cmd.UserID]
		})

		if current == "" {
			current = s.now().Format("MST")
		}

		return "Текущий часовой пояс: " + current, nil
	}

	if _, err := time.LoadLocation(cmd.Args); err != nil {
		return "Нет такого часового пояса.", &domainerrors.ErrBadTimezone{Name: cmd.Args}
	}

	err := s.store.Mutate(func(state *models.State) bool {
		state.Timezones[cmd.UserID] = cmd.Args
		return true
	})
	if err != nil {
		return "", err
	}

	return "Часовой пояс изменён на " + cmd.Args + ".", nil
}

func (s *AlarmService) handleAlarm(cmd *models.Command, strict bool) (string, error) {
	var (
		reply  string
		cmdErr error
	)

	err := s.store.Mutate(func(state *models.State) bool {
		loc := s.location(state, cmd.UserID)

		cronExpr, title, parseErr := schedule.ParseAlarmSpec(cmd.Args, loc, s.now())
		if parseErr != nil {
			reply = "Не получилось понять расписание."
			cmdErr = parseErr

			return false
		}

		alarm := models.NewAlarm(cmd.UserID, cmd.ChatID, cronExpr, title, strict)
		state.Alarms[cmd.UserID] = append(state.Alarms[cmd.UserID], alarm)

		var when string
		if next, ok := schedule.NextOccurrence(cronExpr, loc, s.now()); ok {
			when = " Следующий звонок: " + next.Format(timeLayout) + "."
		} else {
			when = " Но он, похоже, никогда не прозвенит."
		}

		if title == "" {
			reply = "Будильник установлен." + when
		} else {
			reply = "Будильник «" + title + "» установлен." + when
		}

		return true
	})
	if err != nil {
		return "", err
	}

	return reply, cmdErr
}

func (s *AlarmService) handleList(cmd *models.Command) (string, error) {
	var lines []string

	haveAny := false
	haveExpired := false

	s.store.View(func(state *models.State) {
		alarms := state.Alarms[cmd.UserID]
		haveAny = len(alarms) > 0
		loc := s.location(state, cmd.UserID)

		for i, alarm := range alarms {
			if cmd.ChatID < 0 && alarm.ChatID != cmd.ChatID {
				continue
			}

			var tags []string

			if alarm.Informing {
				tags = append(tags, "#активен")
			} else if _, ok := schedule.NextOccurrence(alarm.Cron, loc, s.now()); !ok {
				tags = append(tags, "#истёк")

				haveExpired = true
			}

			if alarm.Disabled {
				tags = append(tags, "#отключён")
			}

			if alarm.Title != "" {
				tags = append(tags, alarm.Title)
			}

			if alarm.Strict {
				tags = append(tags, "#строгий")
			}

			tags = append(tags, alarm.Cron)
			lines = append(lines, fmt.Sprintf("[%d]  %s", i, strings.Join(tags, "  ")))
		}
	})

	if len(lines) == 0 {
		if haveAny {
			return "В этом чате будильников нет. Попробуйте в личных сообщениях.", nil
		}

		return "У вас ещё нет ни одного будильника.", nil
	}

	text := strings.Join(lines, "\n")
	if haveExpired {
		text += "\n\nПодсказка: команда #purge удалит все истёкшие будильники."
	}

	return text, nil
}

// alarmOp — операция над будильником по номеру из списка.
type alarmOp int

const (
	opDisable alarmOp = iota
	opEnable
	opToggleStrict
	opRemove
)

// applyAlarmOp находит будильник по номеру, проверяет допустимость
// перехода и применяет операцию внутри одной критической секции.
func (s *AlarmService) applyAlarmOp(cmd *models.Command, op alarmOp) (string, error) {
	id, err := strconv.Atoi(cmd.Args)
	if err != nil {
		return "Неверный формат номера будильника.", &domainerrors.ErrBadAlarmID{Raw: cmd.Args}
	}

	var (
		reply  string
		cmdErr error
	)

	err = s.store.Mutate(func(state *models.State) bool {
		alarms := state.Alarms[cmd.UserID]
		if id < 0 || id >= len(alarms) {
			reply = "Нет будильника с таким номером."
			cmdErr = &domainerrors.ErrAlarmNotFound{ID: id}

			return false
		}

		alarm := alarms[id]

		switch op {
		case opDisable:
			if alarm.Strict && alarm.Informing {
				reply = "Нельзя отключить будильник в строгом режиме, пока он активен. Сначала выполните задание."
				cmdErr = &domainerrors.ErrAlarmInforming{ID: id}

				return false
			}

			if alarm.Disabled {
				reply = "Будильник уже отключён."
				return false
			}

			alarm.Informing = false
			alarm.Disabled = true
			reply = alarmReply("Будильник %s отключён.", alarm.Title)

			return true
		case opEnable:
			if !alarm.Disabled {
				reply = "Будильник уже включён."
				return false
			}

			alarm.Disabled = false
			reply = alarmReply("Будильник %s включён.", alarm.Title)

			return true
		case opToggleStrict:
			if alarm.Informing {
				reply = "Нельзя менять режим будильника, пока он активен."
				cmdErr = &domainerrors.ErrAlarmInforming{ID: id}

				return false
			}

			alarm.Strict = !alarm.Strict
			if alarm.Strict {
				reply = fmt.Sprintf("Будильник [%d] переведён в строгий режим.", id)
			} else {
				reply = fmt.Sprintf("Строгий режим будильника [%d] выключен.", id)
			}

			return true
		case opRemove:
			if alarm.Strict && alarm.Informing {
				reply = "Нельзя удалить будильник в строгом режиме, пока он активен. Сначала выполните задание."
				cmdErr = &domainerrors.ErrAlarmInforming{ID: id}

				return false
			}

			state.Alarms[cmd.UserID] = append(alarms[:id], alarms[id+1:]...)
			reply = "Будильник удалён."

			return true
		default:
			return false
		}
	})
	if err != nil {
		return "", err
	}

	return reply, cmdErr
}

// handleDisalarm без аргумента отменяет ближайшее срабатывание, с номером —
// удаляет будильник.
func (s *AlarmService) handleDisalarm(ctx context.Context, cmd *models.Command) (string, error) {
	if cmd.Args != "" {
		return s.applyAlarmOp(cmd, opRemove)
	}

	var (
		reply   string
		cmdErr  error
		actions []models.Action
	)

	now := s.now()

	err := s.store.Mutate(func(state *models.State) bool {
		loc := s.location(state, cmd.UserID)

		idx, at, ok := schedule.Nearest(state.Alarms[cmd.UserID], loc, cmd.ChatID, now)
		if !ok {
			reply = s.nothingUpcomingReply(cmd.ChatID)
			return false
		}

		alarm := state.Alarms[cmd.UserID][idx]

		if alarm.Pending {
			reply = "Нельзя отменить будильник, который звонит прямо сейчас. Сначала закройте его."
			cmdErr = &domainerrors.ErrAlarmRinging{ID: idx}

			return false
		}

		if alarm.Informing && alarm.Strict {
			reply = "Нельзя отменить будильник в строгом режиме, пока он активен. Сначала выполните задание."
			cmdErr = &domainerrors.ErrAlarmInforming{ID: idx}

			return false
		}

		if alarm.Informing {
			alarm.Informing = false
			actions = append(actions, liftSleep(state, cmd.UserID)...)
			reply = alarmReply("Активный будильник %s отключён.", alarm.Title)

			s.logger.Info("Будильник снят: отменён вручную",
				"alarm", alarm.String(),
			)

			return true
		}

		if at.Before(now.Add(s.cancelWindow)) {
			alarm.Onceoff = true
			reply = alarmReply(
				"Будильник %s на "+at.Format(timeLayout)+" отменён. Следующие срабатывания остаются в силе.",
				alarm.Title,
			)

			return true
		}

		if cmd.ChatID < 0 {
			reply = "В этом чате в ближайший час звонков нет."
		} else {
			reply = "В ближайший час звонков нет, отменять нечего."
		}

		return false
	})
	if err != nil {
		return "", err
	}

	s.dispatchAll(ctx, actions)

	return reply, cmdErr
}

func (s *AlarmService) handleNext(cmd *models.Command) (string, error) {
	var (
		at    time.Time
		title string
		ok    bool
	)

	s.store.View(func(state *models.State) {
		loc := s.location(state, cmd.UserID)

		var idx int

		idx, at, ok = schedule.Nearest(state.Alarms[cmd.UserID], loc, cmd.ChatID, s.now())
		if ok {
			title = state.Alarms[cmd.UserID][idx].Title
		}
	})

	if !ok {
		return s.nothingUpcomingReply(cmd.ChatID), nil
	}

	reply := "Следующий звонок: " + at.Format(timeLayout)
	if title != "" {
		reply += " " + title
	}

	return reply, nil
}

func (s *AlarmService) handlePurge(cmd *models.Command) (string, error) {
	purged := 0
	haveAny := false

	err := s.store.Mutate(func(state *models.State) bool {
		alarms := state.Alarms[cmd.UserID]
		haveAny = len(alarms) > 0
		loc := s.location(state, cmd.UserID)
		now := s.now()

		kept := alarms[:0]

		for _, alarm := range alarms {
			if alarm.Informing {
				kept = append(kept, alarm)
				continue
			}

			if _, ok := schedule.NextOccurrence(alarm.Cron, loc, now); !ok {
				purged++
				continue
			}

			kept = append(kept, alarm)
		}

		state.Alarms[cmd.UserID] = kept

		return purged > 0
	})
	if err != nil {
		return "", err
	}

	switch {
	case !haveAny:
		return "У вас ещё нет ни одного будильника.", nil
	case purged == 0:
		return "Истёкших будильников нет.", nil
	default:
		return fmt.Sprintf("Удалено истёкших будильников: %d.", purged), nil
	}
}

// handleSleep записывает чат в список замолчавших и ограничивает пользователя
// до звонка будильника.
func (s *AlarmService) handleSleep(ctx context.Context, cmd *models.Command) (string, error) {
	err := s.store.Mutate(func(state *models.State) bool {
		state.Sleeping[cmd.UserID] = append(state.Sleeping[cmd.UserID], cmd.ChatID)
		return true
	})
	if err != nil {
		return "", err
	}

	s.dispatchAll(ctx, []models.Action{
		&models.RestrictMember{ChatID: cmd.ChatID, UserID: cmd.UserID},
	})

	return "Спокойной ночи! Вернётесь со звонком будильника.", nil
}

func (s *AlarmService) nothingUpcomingReply(chatID int64) string {
	if chatID < 0 {
		return "В этом чате будильников не видно. Попробуйте в личных сообщениях."
	}

	return "Будильников с будущими звонками нет, поставьте какой-нибудь."
}

// alarmReply подставляет название будильника в ответ; без названия
// подстановка убирается вместе с пробелом перед ней.
func alarmReply(format, title string) string {
	if title == "" {
		return fmt.Sprintf(strings.ReplaceAll(format, " %s", "%s"), "")
	}

	return fmt.Sprintf(format, "«"+title+"»")
}
