package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ValidationStatus is the editability axis of an invoice
type ValidationStatus int

const (
	ValidationStatusDraft     ValidationStatus = 0
	ValidationStatusValidated ValidationStatus = 1
)

var validationStatusNames = [...]string{"DRAFT", "VALIDATED"}

func (s ValidationStatus) String() string {
	if int(s) < 0 || int(s) >= len(validationStatusNames) {
		return "UNKNOWN"
	}
	return validationStatusNames[s]
}

func (s ValidationStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ValidationStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ValidationStatus(i)
		return nil
	}
	for i, name := range validationStatusNames {
		if name == str {
			*s = ValidationStatus(i)
			return nil
		}
	}
	return fmt.Errorf("unknown validation status %q", str)
}

func (s ValidationStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ValidationStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ValidationStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ValidationStatus(v)
	case int:
		*s = ValidationStatus(v)
	}
	return nil
}
