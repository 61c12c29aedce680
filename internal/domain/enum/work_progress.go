package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// WorkProgress is the progress of a single work order item, and the derived
// progress of a work order as a whole
type WorkProgress int

const (
	WorkProgressPending    WorkProgress = 0
	WorkProgressInProgress WorkProgress = 1
	WorkProgressCompleted  WorkProgress = 2
)

var workProgressNames = [...]string{"PENDING", "IN_PROGRESS", "COMPLETED"}

func (p WorkProgress) String() string {
	if int(p) < 0 || int(p) >= len(workProgressNames) {
		return "UNKNOWN"
	}
	return workProgressNames[p]
}

// IsValid reports whether p is a known progress value
func (p WorkProgress) IsValid() bool {
	return p >= WorkProgressPending && p <= WorkProgressCompleted
}

func (p WorkProgress) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *WorkProgress) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*p = WorkProgress(i)
		return nil
	}
	for i, name := range workProgressNames {
		if name == str {
			*p = WorkProgress(i)
			return nil
		}
	}
	return fmt.Errorf("unknown work progress %q", str)
}

func (p WorkProgress) Value() (driver.Value, error) {
	return int64(p), nil
}

func (p *WorkProgress) Scan(value interface{}) error {
	if value == nil {
		*p = WorkProgressPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*p = WorkProgress(v)
	case int:
		*p = WorkProgress(v)
	}
	return nil
}
