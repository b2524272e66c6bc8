package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Base 基础模型，主键为带前缀的字符串ID
type Base struct {
	ID        string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StringList 以JSON数组文本形式存储的字符串列表
type StringList []string

// Value 实现 driver.Valuer，nil 存为 "[]"
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner
func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("StringList: 不支持的类型 %T", src)
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return errors.Join(errors.New("StringList: 解析失败"), err)
	}
	if out == nil {
		out = []string{}
	}
	*l = out
	return nil
}

// GormDataType 存储类型
func (StringList) GormDataType() string {
	return "text"
}

// MarshalJSON 空列表序列化为 []
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Strings 返回非nil的切片
func (l StringList) Strings() []string {
	if l == nil {
		return []string{}
	}
	return []string(l)
}
