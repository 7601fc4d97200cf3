package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/central-university-dev/go-bed-caller/internal/domain/errors"
)

// ParseAlarmSpec разбирает аргумент команды установки будильника:
// "ЧЧ:ММ [день недели|once] [#название]". Без дня недели будильник разовый.
// Если время не распознано, аргумент трактуется как готовое cron-выражение.
func ParseAlarmSpec(input string, loc *time.Location, now time.Time) (cronExpr, title string, err error) {
	if loc == nil {
		loc = time.Local
	}

	timePart := input
	if idx := strings.Index(input, "#"); idx >= 0 {
		title = strings.TrimSpace(input[idx:])
		timePart = input[:idx]
	}

	timePart = strings.TrimSpace(timePart)

	if expr, ok := parseTimeSpec(timePart, loc, now); ok {
		return expr, title, nil
	}

	if err := Validate(timePart); err != nil {
		return "", "", &errors.ErrBadSchedule{Spec: input}
	}

	return timePart, title, nil
}

// parseTimeSpec переводит "ЧЧ:ММ [день|once]" в cron-выражение.
func parseTimeSpec(input string, loc *time.Location, now time.Time) (string, bool) {
	clock := input
	day := "once"

	if idx := strings.IndexFunc(input, unicode.IsSpace); idx >= 0 {
		clock = input[:idx]
		day = strings.TrimSpace(input[idx+1:])
	}

	hourStr, minuteStr, found := strings.Cut(clock, ":")
	if !found {
		return "", false
	}

	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > 23 {
		return "", false
	}

	minute, err := strconv.Atoi(minuteStr)
	if err != nil || minute < 0 || minute > 59 {
		return "", false
	}

	if day != "once" {
		expr := fmt.Sprintf("%d %d * * %s", minute, hour, day)
		if Validate(expr) != nil {
			return "", false
		}

		return expr, true
	}

	// Разовый будильник: сегодня, если время ещё впереди, иначе завтра.
	local := now.In(loc)

	at := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !at.After(local) {
		at = at.AddDate(0, 0, 1)
	}

	return fmt.Sprintf("%d %d %d %d * %d", minute, hour, at.Day(), int(at.Month()), at.Year()), true
}
