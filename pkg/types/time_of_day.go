package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	// MinutesPerDay количество минут в сутках
	MinutesPerDay = 24 * 60

	timeOfDayLayout = "HH:MM"
)

var (
	// ErrInvalidTimeOfDay возвращается при некорректном формате времени
	ErrInvalidTimeOfDay = errors.New("invalid time of day format, expected HH:MM")

	// ErrTimeOfDayOutOfRange возвращается, когда значение выходит за пределы суток
	ErrTimeOfDayOutOfRange = errors.New("time of day out of range")
)

// TimeOfDay время суток в минутах от полуночи (0..1439)
// Внутри хранится как число, строка "HH:MM" используется только на границах (JSON, БД)
type TimeOfDay int

// NewTimeOfDay создает TimeOfDay из часов и минут
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrTimeOfDayOutOfRange, hour, minute)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// MustTimeOfDay как ParseTimeOfDay, но паникует при ошибке. Только для констант и тестов
func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTimeOfDay парсит строку строго в формате HH:MM (24 часа, с ведущими нулями)
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != len(timeOfDayLayout) || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	hour, ok := parseTwoDigits(s[0:2])
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	minute, ok := parseTwoDigits(s[3:5])
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	return NewTimeOfDay(hour, minute)
}

// TimeOfDayFromInstant переводит момент времени в локальное время суток в зоне loc
// Секунды и доли секунд отбрасываются
func TimeOfDayFromInstant(t time.Time, loc *time.Location) TimeOfDay {
	local := t.In(loc)
	return TimeOfDay(local.Hour()*60 + local.Minute())
}

// Hour возвращает часы
func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

// Minute возвращает минуты
func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

// String возвращает время в формате HH:MM
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Validate проверяет, что значение находится в пределах суток
func (t TimeOfDay) Validate() error {
	if t < 0 || int(t) >= MinutesPerDay {
		return fmt.Errorf("%w: %d", ErrTimeOfDayOutOfRange, int(t))
	}
	return nil
}

// IsBefore проверяет, что t строго раньше other
func (t TimeOfDay) IsBefore(other TimeOfDay) bool {
	return t < other
}

// IsAfter проверяет, что t строго позже other
func (t TimeOfDay) IsAfter(other TimeOfDay) bool {
	return t > other
}

// MarshalJSON сериализует время как строку "HH:MM"
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON разбирает строку "HH:MM"
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeOfDay, err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer, в БД время хранится строкой "HH:MM"
func (t TimeOfDay) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t.String(), nil
}

// Scan реализует sql.Scanner
func (t *TimeOfDay) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		return fmt.Errorf("%w: NULL", ErrInvalidTimeOfDay)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeOfDay, src)
	}

	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func parseTwoDigits(s string) (int, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}
