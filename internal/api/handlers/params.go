package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/m04kA/barberflow/internal/domain"
)

// ErrInvalidDateTime строка не похожа ни на один поддерживаемый формат
var ErrInvalidDateTime = errors.New("invalid date/time")

// ParseDateTime принимает RFC3339, "YYYY-MM-DDTHH:MM:SS" или "YYYY-MM-DD".
// Значения без смещения трактуются в часовом поясе loc.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.ParseInLocation(domain.LocalDateTimeFormat, s, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(domain.DateFormat, s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDateTime
}

// ParseOptionalInt64 пустая строка -> nil
func ParseOptionalInt64(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
