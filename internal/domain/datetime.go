package domain

import (
	"fmt"
	"time"
)

// DateTimeFormat формат даты и времени в API, всегда UTC без зоны
const DateTimeFormat = "2006-01-02T15:04:05"

// FormatDateTime форматирует время для ответа API
func FormatDateTime(t time.Time) string {
	return t.UTC().Format(DateTimeFormat)
}

// ParseDateTime разбирает DateTimeFormat (как UTC) или RFC 3339
func ParseDateTime(raw string) (time.Time, error) {
	if t, err := time.ParseInLocation(DateTimeFormat, raw, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid datetime %q: expected %s or RFC 3339", raw, DateTimeFormat)
	}
	return t.UTC(), nil
}

// NormalizeDateTime приводит время к точности хранения: UTC, целые секунды
func NormalizeDateTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
