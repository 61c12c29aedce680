package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ApprovalStatus is the client-approval sub-state of a quote
type ApprovalStatus int

const (
	ApprovalStatusPending  ApprovalStatus = 0
	ApprovalStatusApproved ApprovalStatus = 1
	ApprovalStatusRejected ApprovalStatus = 2
)

var approvalStatusNames = [...]string{"PENDING", "APPROVED", "REJECTED"}

func (s ApprovalStatus) String() string {
	if int(s) < 0 || int(s) >= len(approvalStatusNames) {
		return "UNKNOWN"
	}
	return approvalStatusNames[s]
}

// IsTerminal reports whether no further approval decision can be recorded
func (s ApprovalStatus) IsTerminal() bool {
	return s == ApprovalStatusApproved || s == ApprovalStatusRejected
}

func (s ApprovalStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ApprovalStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ApprovalStatus(i)
		return nil
	}
	for i, name := range approvalStatusNames {
		if name == str {
			*s = ApprovalStatus(i)
			return nil
		}
	}
	return fmt.Errorf("unknown approval status %q", str)
}

func (s ApprovalStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ApprovalStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ApprovalStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ApprovalStatus(v)
	case int:
		*s = ApprovalStatus(v)
	}
	return nil
}

// ApprovalAction is what the public approval page may request
type ApprovalAction string

const (
	ApprovalActionApprove ApprovalAction = "approve"
	ApprovalActionReject  ApprovalAction = "reject"
)
