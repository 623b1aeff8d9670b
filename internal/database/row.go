package database

import (
	"fmt"
	"strconv"
	"time"
)

// Driver values differ between MySQL ([]byte text, int64, time.Time with
// parseTime) and SQLite (string text, int64, time.Time for DATETIME
// columns).  The accessors below normalise both.

// Uint64 reads an integer column.
func (r Row) Uint64(key string) (uint64, error) {
	v, err := r.Int64(key)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("column %s: negative value %d", key, v)
	}
	return uint64(v), nil
}

// Int64 reads an integer column.
func (r Row) Int64(key string) (int64, error) {
	v, ok := r[key]
	if !ok {
		return 0, missing(key)
	}
	switch t := v.(type) {
	case int64:
		return t, nil
	case int32:
		return int64(t), nil
	case int:
		return int64(t), nil
	case uint64:
		return int64(t), nil
	case float64:
		return int64(t), nil
	case []byte:
		return strconv.ParseInt(string(t), 10, 64)
	case string:
		return strconv.ParseInt(t, 10, 64)
	case nil:
		return 0, fmt.Errorf("column %s: unexpected NULL", key)
	}
	return 0, fmt.Errorf("column %s: unsupported type %T", key, v)
}

// String reads a NOT NULL text column.
func (r Row) String(key string) (string, error) {
	s, err := r.NullString(key)
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", fmt.Errorf("column %s: unexpected NULL", key)
	}
	return *s, nil
}

// NullString reads a nullable text column; NULL yields nil.
func (r Row) NullString(key string) (*string, error) {
	v, ok := r[key]
	if !ok {
		return nil, missing(key)
	}
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return &t, nil
	case []byte:
		s := string(t)
		return &s, nil
	}
	return nil, fmt.Errorf("column %s: unsupported type %T", key, v)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Time reads a DATETIME column and returns it in UTC.
func (r Row) Time(key string) (time.Time, error) {
	v, ok := r[key]
	if !ok {
		return time.Time{}, missing(key)
	}
	var s string
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		return time.Time{}, fmt.Errorf("column %s: unsupported type %T", key, v)
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("column %s: unparseable time %q", key, s)
}

func missing(key string) error {
	return fmt.Errorf("column %s missing from row", key)
}
