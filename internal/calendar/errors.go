package calendar

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors matched with errors.Is.
var (
	ErrDateRange   = errors.New("date outside supported range")
	ErrInvalidDate = errors.New("invalid date")
)

// DateRangeError is returned when navigation or grid generation would leave
// the supported year range. The calendar is left unchanged.
type DateRangeError struct {
	Op   string // operation that was refused, e.g. "next month"
	Year int    // year the operation would have reached
	Min  int
	Max  int
}

func (e *DateRangeError) Error() string {
	return fmt.Sprintf("%s: year %d outside supported range %d-%d", e.Op, e.Year, e.Min, e.Max)
}

// Is makes errors.Is(err, ErrDateRange) succeed.
func (e *DateRangeError) Is(target error) bool {
	return target == ErrDateRange
}

// InvalidDateError is returned when a day does not exist in its month.
type InvalidDateError struct {
	Year  int
	Month time.Month
	Day   int
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %04d-%02d-%02d", e.Year, int(e.Month), e.Day)
}

// Is makes errors.Is(err, ErrInvalidDate) succeed.
func (e *InvalidDateError) Is(target error) bool {
	return target == ErrInvalidDate
}
