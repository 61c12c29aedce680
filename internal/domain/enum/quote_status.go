package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// QuoteStatus is the manual quote/order marker of a quote
type QuoteStatus int

const (
	QuoteStatusQuote QuoteStatus = 0
	QuoteStatusOrder QuoteStatus = 1
)

var quoteStatusNames = [...]string{"QUOTE", "ORDER"}

func (s QuoteStatus) String() string {
	if int(s) < 0 || int(s) >= len(quoteStatusNames) {
		return "UNKNOWN"
	}
	return quoteStatusNames[s]
}

// IsValid reports whether s is a known quote status
func (s QuoteStatus) IsValid() bool {
	return s == QuoteStatusQuote || s == QuoteStatusOrder
}

func (s QuoteStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *QuoteStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = QuoteStatus(i)
		return nil
	}
	for i, name := range quoteStatusNames {
		if name == str {
			*s = QuoteStatus(i)
			return nil
		}
	}
	return fmt.Errorf("unknown quote status %q", str)
}

func (s QuoteStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *QuoteStatus) Scan(value interface{}) error {
	if value == nil {
		*s = QuoteStatusQuote
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = QuoteStatus(v)
	case int:
		*s = QuoteStatus(v)
	}
	return nil
}
