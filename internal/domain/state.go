package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownState возвращается для неизвестного фильтра выборки
var ErrUnknownState = errors.New("domain: unknown booking state")

// BookingState фильтр выборки бронирований. Не хранится в БД:
// временные состояния вычисляются относительно момента запроса.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// StateCondition условие выборки. Заполненные поля объединяются через AND,
// все сравнения строгие.
type StateCondition struct {
	StartBefore *time.Time // start < t
	StartAfter  *time.Time // start > t
	EndBefore   *time.Time // end < t
	EndAfter    *time.Time // end > t
	Status      *BookingStatus
}

// stateConditions по одному условию на каждое состояние.
// Новое состояние без записи здесь не пройдёт ParseBookingState.
var stateConditions = map[BookingState]func(now time.Time) StateCondition{
	StateAll: func(time.Time) StateCondition {
		return StateCondition{}
	},
	StatePast: func(now time.Time) StateCondition {
		return StateCondition{EndBefore: &now}
	},
	StateFuture: func(now time.Time) StateCondition {
		return StateCondition{StartAfter: &now}
	},
	StateCurrent: func(now time.Time) StateCondition {
		return StateCondition{StartBefore: &now, EndAfter: &now}
	},
	StateWaiting: func(time.Time) StateCondition {
		status := StatusWaiting
		return StateCondition{Status: &status}
	},
	StateRejected: func(time.Time) StateCondition {
		status := StatusRejected
		return StateCondition{Status: &status}
	},
}

// ParseBookingState разбирает фильтр без учёта регистра. Пустая строка означает ALL.
func ParseBookingState(raw string) (BookingState, error) {
	if strings.TrimSpace(raw) == "" {
		return StateAll, nil
	}
	state := BookingState(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := stateConditions[state]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownState, raw)
	}
	return state, nil
}

// Condition условие выборки для момента now
func (s BookingState) Condition(now time.Time) (StateCondition, error) {
	build, ok := stateConditions[s]
	if !ok {
		return StateCondition{}, fmt.Errorf("%w: %s", ErrUnknownState, s)
	}
	return build(now), nil
}

// Matches проверяет бронирование на соответствие условию
func (c StateCondition) Matches(b *Booking) bool {
	if c.StartBefore != nil && !b.Start.Before(*c.StartBefore) {
		return false
	}
	if c.StartAfter != nil && !b.Start.After(*c.StartAfter) {
		return false
	}
	if c.EndBefore != nil && !b.End.Before(*c.EndBefore) {
		return false
	}
	if c.EndAfter != nil && !b.End.After(*c.EndAfter) {
		return false
	}
	if c.Status != nil && b.Status != *c.Status {
		return false
	}
	return true
}
