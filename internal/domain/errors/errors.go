package errors

import (
	"fmt"
)

type ErrBadSchedule struct {
	Spec string
}

func (e *ErrBadSchedule) Error() string {
	return "неверное расписание: " + e.Spec
}

func (e *ErrBadSchedule) Is(target error) bool {
	_, ok := target.(*ErrBadSchedule)
	return ok
}

type ErrBadTimezone struct {
	Name string
}

func (e *ErrBadTimezone) Error() string {
	return "неизвестный часовой пояс: " + e.Name
}

func (e *ErrBadTimezone) Is(target error) bool {
	_, ok := target.(*ErrBadTimezone)
	return ok
}

type ErrBadAlarmID struct {
	Raw string
}

func (e *ErrBadAlarmID) Error() string {
	return "неверный номер будильника: " + e.Raw
}

type ErrAlarmNotFound struct {
	ID int
}

func (e *ErrAlarmNotFound) Error() string {
	return fmt.Sprintf("будильник не найден: %d", e.ID)
}

func (e *ErrAlarmNotFound) Is(target error) bool {
	_, ok := target.(*ErrAlarmNotFound)
	return ok
}

// ErrAlarmRinging — по будильнику прямо сейчас идёт звонок.
type ErrAlarmRinging struct {
	ID int
}

func (e *ErrAlarmRinging) Error() string {
	return fmt.Sprintf("будильник звонит: %d", e.ID)
}

func (e *ErrAlarmRinging) Is(target error) bool {
	_, ok := target.(*ErrAlarmRinging)
	return ok
}

// ErrAlarmInforming — будильник в активном цикле и операция над ним запрещена.
type ErrAlarmInforming struct {
	ID int
}

func (e *ErrAlarmInforming) Error() string {
	return fmt.Sprintf("будильник в активном цикле: %d", e.ID)
}

func (e *ErrAlarmInforming) Is(target error) bool {
	_, ok := target.(*ErrAlarmInforming)
	return ok
}

type ErrUnknownCommand struct {
	Command string
}

func (e *ErrUnknownCommand) Error() string {
	return "неизвестная команда: " + e.Command
}

// ErrPersistence — ошибка записи снимка состояния; процесс обязан завершиться.
type ErrPersistence struct {
	Err error
}

func (e *ErrPersistence) Error() string {
	return "ошибка сохранения состояния: " + e.Err.Error()
}

func (e *ErrPersistence) Unwrap() error {
	return e.Err
}

func (e *ErrPersistence) Is(target error) bool {
	_, ok := target.(*ErrPersistence)
	return ok
}

type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("сервер вернул статус %d", e.StatusCode)
}
