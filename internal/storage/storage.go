package storage

import (
	"encoding/json"
	"fmt"
)

// Record 通用记录，顶层必须带字符串 id 字段
type Record map[string]any

// Store 记录存储契约：按集合名做 CRUD 和等值过滤。
// Query 的语义是对所有给定字段做 AND 等值匹配的线性扫描，
// 过滤值只支持标量（字符串、数字、布尔）。
type Store interface {
	GetAll(collection string) ([]Record, error)
	GetByID(collection, id string) (Record, error)
	Create(collection string, rec Record) error
	Update(collection, id string, rec Record) (bool, error)
	Delete(collection, id string) (bool, error)
	Query(collection string, filters map[string]any) ([]Record, error)
}

// RecordID 读取记录的 id 字段
func RecordID(rec Record) string {
	id, _ := rec["id"].(string)
	return id
}

// ToRecord 将任意模型序列化为通用记录
func ToRecord(v any) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("序列化记录失败: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("记录不是 JSON 对象: %w", err)
	}
	return rec, nil
}

// DecodeRecord 将通用记录反序列化到模型
func DecodeRecord(rec Record, out any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("序列化记录失败: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("解析记录失败: %w", err)
	}
	return nil
}

// matches 判断记录是否满足所有过滤条件
func matches(rec Record, filters map[string]any) bool {
	for key, want := range filters {
		if rec[key] != want {
			return false
		}
	}
	return true
}

// cloneRecords 深拷贝记录列表，避免调用方修改内部状态
func cloneRecords(recs []Record) []Record {
	out := make([]Record, 0, len(recs))
	for _, rec := range recs {
		out = append(out, cloneRecord(rec))
	}
	return out
}

func cloneRecord(rec Record) Record {
	data, _ := json.Marshal(rec)
	var clone Record
	_ = json.Unmarshal(data, &clone)
	return clone
}
