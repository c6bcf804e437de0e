package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDate(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   time.Month
		day     int
		wantErr bool
	}{
		{"regular", 2024, time.May, 17, false},
		{"leap_day", 2024, time.February, 29, false},
		{"leap_day_common_year", 2023, time.February, 29, true},
		{"feb_30", 2024, time.February, 30, true},
		{"april_31", 2024, time.April, 31, true},
		{"day_zero", 2024, time.April, 0, true},
		{"month_13", 2024, time.Month(13), 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDate(tt.year, tt.month, tt.day)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Date{tt.year, tt.month, tt.day}, d)
		})
	}
}

func TestClampDate(t *testing.T) {
	assert.Equal(t, Date{2024, time.February, 29}, ClampDate(2024, time.February, 30))
	assert.Equal(t, Date{2023, time.February, 28}, ClampDate(2023, time.February, 29))
	assert.Equal(t, Date{2024, time.April, 30}, ClampDate(2024, time.April, 31))
	assert.Equal(t, Date{2024, time.April, 1}, ClampDate(2024, time.April, -3))
	assert.Equal(t, Date{2024, time.April, 12}, ClampDate(2024, time.April, 12))
}

func TestDaysIn(t *testing.T) {
	want := map[time.Month]int{
		time.January: 31, time.February: 28, time.March: 31, time.April: 30,
		time.May: 31, time.June: 30, time.July: 31, time.August: 31,
		time.September: 30, time.October: 31, time.November: 30, time.December: 31,
	}
	for month, days := range want {
		assert.Equal(t, days, DaysIn(2023, month), month.String())
	}
	assert.Equal(t, 29, DaysIn(2024, time.February))
}

func TestDate_AddDays(t *testing.T) {
	d := Date{2023, time.December, 31}
	assert.Equal(t, Date{2024, time.January, 1}, d.AddDays(1))
	assert.Equal(t, Date{2023, time.December, 1}, d.AddDays(-30))
	assert.Equal(t, Date{2024, time.March, 1}, Date{2024, time.February, 28}.AddDays(2))
}

func TestDate_Compare(t *testing.T) {
	a := Date{2024, time.May, 1}
	b := Date{2024, time.May, 2}

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, Date{2023, time.December, 31}.Before(a))
}

func TestDate_String(t *testing.T) {
	assert.Equal(t, "2024-01-05", Date{2024, time.January, 5}.String())
	assert.Equal(t, "0042-11-30", Date{42, time.November, 30}.String())
	assert.Equal(t, "2024-01", Date{2024, time.January, 5}.MonthString())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, Date{2024, time.February, 29}, d)

	_, err = ParseDate("2023-02-29")
	assert.Error(t, err)

	_, err = ParseDate("yesterday")
	assert.Error(t, err)
}

func TestParseMonth(t *testing.T) {
	d, err := ParseMonth("2024-07")
	require.NoError(t, err)
	assert.Equal(t, Date{2024, time.July, 1}, d)

	_, err = ParseMonth("2024-13")
	assert.Error(t, err)
}

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		When Date `json:"when"`
	}

	data, err := json.Marshal(wrapper{When: Date{2024, time.March, 9}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"when":"2024-03-09"}`, string(data))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"when":"2020-12-31"}`), &w))
	assert.Equal(t, Date{2020, time.December, 31}, w.When)
}
