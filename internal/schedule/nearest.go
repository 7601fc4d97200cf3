package schedule

import (
	"time"

	"github.com/central-university-dev/go-bed-caller/internal/domain/models"
)

// Nearest возвращает индекс будильника с самым ранним будущим срабатыванием
// и сам момент срабатывания. В групповом чате (chatID < 0) учитываются только
// будильники этого чата. При равенстве времён побеждает меньший индекс.
func Nearest(alarms []*models.Alarm, loc *time.Location, chatID int64, now time.Time) (int, time.Time, bool) {
	bestIdx := -1

	var bestAt time.Time

	for i, alarm := range alarms {
		if chatID < 0 && alarm.ChatID != chatID {
			continue
		}

		at, ok := NextOccurrence(alarm.Cron, loc, now)
		if !ok {
			continue
		}

		if bestIdx < 0 || at.Before(bestAt) {
			bestIdx = i
			bestAt = at
		}
	}

	if bestIdx < 0 {
		return -1, time.Time{}, false
	}

	return bestIdx, bestAt, true
}
