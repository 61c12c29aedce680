package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DocumentType identifies a numbered document kind within a company
type DocumentType string

const (
	DocumentTypeInvoice   DocumentType = "invoice"
	DocumentTypeQuote     DocumentType = "quote"
	DocumentTypeWorkOrder DocumentType = "work_order"
	DocumentTypeTracking  DocumentType = "tracking"
)

// DocumentTypes lists every numbered document kind
var DocumentTypes = []DocumentType{
	DocumentTypeInvoice,
	DocumentTypeQuote,
	DocumentTypeWorkOrder,
	DocumentTypeTracking,
}

func (t DocumentType) String() string {
	return string(t)
}

// IsValid reports whether t is a known document type
func (t DocumentType) IsValid() bool {
	for _, known := range DocumentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseDocumentType parses a document type from its string form
func ParseDocumentType(s string) (DocumentType, error) {
	t := DocumentType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown document type %q", s)
	}
	return t, nil
}

func (t DocumentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *DocumentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseDocumentType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t DocumentType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *DocumentType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = DocumentType(v)
	case []byte:
		*t = DocumentType(string(v))
	}
	return nil
}
