// Package timex provides a time type with unified database and JSON formatting
// Package timex 提供统一数据库与 JSON 格式化的时间类型
package timex

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const timeFormat = "2006-01-02 15:04:05"

// Time wraps time.Time with a fixed serialization format
// Time 包装 time.Time，使用固定的序列化格式
type Time time.Time

// Now returns the current time as timex.Time
// Now 返回当前时间的 timex.Time
func Now() Time {
	return Time(time.Now())
}

// IsZero reports whether the time is the zero instant
// IsZero 判断时间是否为零值
func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

// UnixMilli returns the time as milliseconds since the Unix epoch
// UnixMilli 返回 Unix 毫秒时间戳
func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

func (t Time) String() string {
	return time.Time(t).Format(timeFormat)
}

// MarshalJSON implements json.Marshaler
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == `""` || s == "null" {
		*t = Time(time.Time{})
		return nil
	}
	parsed, err := time.ParseInLocation(`"`+timeFormat+`"`, s, time.Local)
	if err != nil {
		return err
	}
	*t = Time(parsed)
	return nil
}

// Value implements driver.Valuer so gorm can persist the type
// Value 实现 driver.Valuer，便于 gorm 持久化
func (t Time) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return time.Time(t), nil
}

// Scan implements sql.Scanner
// Scan 实现 sql.Scanner
func (t *Time) Scan(v interface{}) error {
	switch value := v.(type) {
	case time.Time:
		*t = Time(value)
		return nil
	case []byte:
		parsed, err := time.ParseInLocation(timeFormat, string(value), time.Local)
		if err != nil {
			return err
		}
		*t = Time(parsed)
		return nil
	case string:
		parsed, err := time.ParseInLocation(timeFormat, value, time.Local)
		if err != nil {
			return err
		}
		*t = Time(parsed)
		return nil
	case nil:
		*t = Time(time.Time{})
		return nil
	default:
		return fmt.Errorf("cannot scan type %T into timex.Time", v)
	}
}
