package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// JSON is a custom type for handling JSON/JSONB fields in GORM
type JSON map[string]interface{}

// Value implements the driver.Valuer interface. The serialized form is
// returned as a string so SQLite stores the column with TEXT storage class;
// a []byte would get BLOB storage class and defeat LIKE filters on the
// column.
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return "{}", nil
	}
	data, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}

	bytes, err := rawBytes(value)
	if err != nil {
		return err
	}
	if len(bytes) == 0 {
		*j = make(JSON)
		return nil
	}

	var result map[string]interface{}
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*j = JSON(result)
	return nil
}

// StringList is a JSON-serialized []string column, used for tags and
// declared variables.
type StringList []string

// Value implements the driver.Valuer interface. Stored as a string for the
// same TEXT storage class reason as JSON.Value: the tag membership filter
// runs LIKE against this column.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = StringList{}
		return nil
	}

	bytes, err := rawBytes(value)
	if err != nil {
		return err
	}
	if len(bytes) == 0 {
		*s = StringList{}
		return nil
	}

	var result []string
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*s = StringList(result)
	return nil
}

func rawBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New(fmt.Sprint("Failed to unmarshal JSON value:", value))
	}
}
