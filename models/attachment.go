package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Attachment is a stable reference to a stored file, produced at upload time.
type Attachment struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Mime string `json:"mime"`
	Size int64  `json:"size"`
}

// AttachmentList is stored as a JSON text column.
type AttachmentList []Attachment

func (l AttachmentList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *AttachmentList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("unsupported attachment list column type")
}
