// Package tags provides an ordered string list stored as a JSON text column.
package tags

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// List is an ordered sequence of strings persisted as a JSON array.
// A nil list round-trips as "[]".
type List []string

// Value implements driver.Valuer.
func (l List) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal tag list: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (l *List) Scan(src any) error {
	if src == nil {
		*l = List{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into tag list", src)
	}

	if len(data) == 0 {
		*l = List{}
		return nil
	}
	if err := json.Unmarshal(data, l); err != nil {
		return fmt.Errorf("unmarshal tag list: %w", err)
	}
	if *l == nil {
		*l = List{}
	}
	return nil
}
