package request

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date accepts either a plain calendar date or a full RFC 3339 timestamp
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	d.Time = t.UTC()
	return nil
}

// Ptr returns nil for an absent date
func (d *Date) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// ParseDate parses a query parameter in the same formats as Date
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	var d Date
	if err := d.UnmarshalJSON([]byte(s)); err != nil {
		return nil, err
	}
	return d.Ptr(), nil
}
