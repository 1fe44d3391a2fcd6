package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JSONStore 以每个集合一个 JSON 数组文件的方式持久化记录。
// 每次写入都整体重写文件；损坏或缺失的文件按空集合处理，
// 下一次写入时自动恢复为合法内容。
// 互斥锁只防止同进程内的写入撕裂，跨请求的读-改-写仍是
// 最后写入者胜出。
type JSONStore struct {
	dir string
	mu  sync.RWMutex
}

// NewJSONStore 创建文件存储，预先把给定集合的文件初始化为 []
func NewJSONStore(dir string, collections ...string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}
	s := &JSONStore{dir: dir}
	for _, collection := range collections {
		path := s.filePath(collection)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
				return nil, fmt.Errorf("初始化集合文件失败: %w", err)
			}
		}
	}
	return s, nil
}

func (s *JSONStore) filePath(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// readFile 读取集合文件，缺失或损坏时返回空集合
func (s *JSONStore) readFile(collection string) []Record {
	data, err := os.ReadFile(s.filePath(collection))
	if err != nil {
		return []Record{}
	}
	var recs []Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return []Record{}
	}
	return recs
}

func (s *JSONStore) writeFile(collection string, recs []Record) error {
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化集合失败: %w", err)
	}
	if err := os.WriteFile(s.filePath(collection), data, 0o644); err != nil {
		return fmt.Errorf("写入集合文件失败: %w", err)
	}
	return nil
}

// GetAll 返回集合全部记录
func (s *JSONStore) GetAll(collection string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readFile(collection), nil
}

// GetByID 按 id 查找记录，未找到返回 nil
func (s *JSONStore) GetByID(collection, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.readFile(collection) {
		if RecordID(rec) == id {
			return rec, nil
		}
	}
	return nil, nil
}

// Create 追加记录并重写集合文件
func (s *JSONStore) Create(collection string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := s.readFile(collection)
	recs = append(recs, rec)
	return s.writeFile(collection, recs)
}

// Update 按 id 整体替换记录，返回是否找到
func (s *JSONStore) Update(collection, id string, rec Record) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := s.readFile(collection)
	for i := range recs {
		if RecordID(recs[i]) == id {
			recs[i] = rec
			return true, s.writeFile(collection, recs)
		}
	}
	return false, nil
}

// Delete 按 id 删除记录，返回是否找到
func (s *JSONStore) Delete(collection, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := s.readFile(collection)
	kept := make([]Record, 0, len(recs))
	for _, rec := range recs {
		if RecordID(rec) != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(recs) {
		return false, nil
	}
	return true, s.writeFile(collection, kept)
}

// Query 全量线性扫描，对所有过滤字段做 AND 等值匹配
func (s *JSONStore) Query(collection string, filters map[string]any) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []Record{}
	for _, rec := range s.readFile(collection) {
		if matches(rec, filters) {
			result = append(result, rec)
		}
	}
	return result, nil
}
