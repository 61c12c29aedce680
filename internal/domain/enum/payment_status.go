package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentStatus is the payment axis of an invoice, independent of validation
type PaymentStatus int

const (
	PaymentStatusUnpaid PaymentStatus = 0
	PaymentStatusPaid   PaymentStatus = 1
)

var paymentStatusNames = [...]string{"UNPAID", "PAID"}

func (s PaymentStatus) String() string {
	if int(s) < 0 || int(s) >= len(paymentStatusNames) {
		return "UNKNOWN"
	}
	return paymentStatusNames[s]
}

// IsValid reports whether s is a known payment status
func (s PaymentStatus) IsValid() bool {
	return s == PaymentStatusUnpaid || s == PaymentStatusPaid
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	for i, name := range paymentStatusNames {
		if name == str {
			*s = PaymentStatus(i)
			return nil
		}
	}
	return fmt.Errorf("unknown payment status %q", str)
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusUnpaid
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentStatus(v)
	case int:
		*s = PaymentStatus(v)
	}
	return nil
}
