package storage

import (
	"sync"
)

// MemStore 内存实现，主要用于测试
type MemStore struct {
	mu          sync.RWMutex
	collections map[string][]Record
}

// NewMemStore 创建内存存储
func NewMemStore() *MemStore {
	return &MemStore{collections: make(map[string][]Record)}
}

// GetAll 返回集合全部记录
func (s *MemStore) GetAll(collection string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecords(s.collections[collection]), nil
}

// GetByID 按 id 查找记录，未找到返回 nil
func (s *MemStore) GetByID(collection, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.collections[collection] {
		if RecordID(rec) == id {
			return cloneRecord(rec), nil
		}
	}
	return nil, nil
}

// Create 追加记录
func (s *MemStore) Create(collection string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = append(s.collections[collection], cloneRecord(rec))
	return nil
}

// Update 按 id 整体替换记录，返回是否找到
func (s *MemStore) Update(collection, id string, rec Record) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := s.collections[collection]
	for i := range recs {
		if RecordID(recs[i]) == id {
			recs[i] = cloneRecord(rec)
			return true, nil
		}
	}
	return false, nil
}

// Delete 按 id 删除记录，返回是否找到
func (s *MemStore) Delete(collection, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := s.collections[collection]
	kept := make([]Record, 0, len(recs))
	for _, rec := range recs {
		if RecordID(rec) != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(recs) {
		return false, nil
	}
	s.collections[collection] = kept
	return true, nil
}

// Query 线性扫描，对所有过滤字段做 AND 等值匹配
func (s *MemStore) Query(collection string, filters map[string]any) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []Record{}
	for _, rec := range s.collections[collection] {
		if matches(rec, filters) {
			result = append(result, cloneRecord(rec))
		}
	}
	return result, nil
}
