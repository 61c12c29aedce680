package request

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateAcceptsCalendarDateAndTimestamp(t *testing.T) {
	var req struct {
		Date    *Date `json:"date"`
		DueDate *Date `json:"due_date"`
		Missing *Date `json:"missing"`
	}
	err := json.Unmarshal([]byte(`{"date":"2026-03-14","due_date":"2026-04-13T10:00:00+02:00"}`), &req)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), *req.Date.Ptr())
	assert.Equal(t, time.Date(2026, 4, 13, 8, 0, 0, 0, time.UTC), *req.DueDate.Ptr())
	assert.Nil(t, req.Missing.Ptr())
}

func TestDateRejectsOtherFormats(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"14/03/2026"`), &d))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseDate("2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, 31, got.Day())

	_, err = ParseDate("yesterday")
	assert.Error(t, err)
}
