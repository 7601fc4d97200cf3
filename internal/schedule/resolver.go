package schedule

import (
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/central-university-dev/go-bed-caller/internal/domain/errors"
)

// Выражение состоит из пяти полей (минута час день месяц день_недели),
// секунды всегда равны нулю. Шестое поле — год — закрепляет разовую дату.
var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// NextOccurrence возвращает ближайший момент срабатывания строго после after
// в заданном часовом поясе. Второе значение false означает, что выражение
// больше никогда не совпадёт.
func NextOccurrence(expr string, loc *time.Location, after time.Time) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}

	fields := strings.Fields(expr)

	year := 0

	if len(fields) == 6 {
		y, err := strconv.Atoi(fields[5])
		if err != nil {
			return time.Time{}, false
		}

		year = y
		expr = strings.Join(fields[:5], " ")
	}

	sched, err := parser.Parse(expr)
	if err != nil {
		return time.Time{}, false
	}

	cursor := after.In(loc)

	if year != 0 {
		yearStart := time.Date(year-1, time.December, 31, 23, 59, 59, 0, loc)
		if cursor.Before(yearStart) {
			cursor = yearStart
		}
	}

	next := sched.Next(cursor)
	if next.IsZero() {
		return time.Time{}, false
	}

	if year != 0 && next.Year() != year {
		return time.Time{}, false
	}

	return next, true
}

// Validate проверяет синтаксис cron-выражения, не вычисляя срабатываний.
func Validate(expr string) error {
	fields := strings.Fields(expr)

	if len(fields) == 6 {
		if _, err := strconv.Atoi(fields[5]); err != nil {
			return &errors.ErrBadSchedule{Spec: expr}
		}

		fields = fields[:5]
	}

	if len(fields) != 5 {
		return &errors.ErrBadSchedule{Spec: expr}
	}

	if _, err := parser.Parse(strings.Join(fields, " ")); err != nil {
		return &errors.ErrBadSchedule{Spec: expr}
	}

	return nil
}
