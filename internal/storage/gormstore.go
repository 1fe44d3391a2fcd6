package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// recordRow 通用记录在 Postgres 中的存储形态
type recordRow struct {
	ID         uint   `gorm:"primaryKey"`
	Collection string `gorm:"size:64;uniqueIndex:idx_collection_record"`
	RecordID   string `gorm:"size:64;uniqueIndex:idx_collection_record"`
	Data       []byte `gorm:"type:jsonb"`
}

func (recordRow) TableName() string {
	return "records"
}

// GormStore Postgres 实现，每条记录存为一行 jsonb。
// 过滤仍在应用侧做线性扫描，与文件实现保持同一语义。
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 连接 Postgres 并迁移记录表
func NewGormStore(databaseURL string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}
	if err := db.AutoMigrate(&recordRow{}); err != nil {
		return nil, fmt.Errorf("迁移记录表失败: %w", err)
	}
	return &GormStore{db: db}, nil
}

func decodeRow(row recordRow) Record {
	var rec Record
	if err := json.Unmarshal(row.Data, &rec); err != nil {
		return Record{}
	}
	return rec
}

// GetAll 返回集合全部记录，按插入顺序
func (s *GormStore) GetAll(collection string) ([]Record, error) {
	var rows []recordRow
	err := s.db.Where("collection = ?", collection).Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	recs := make([]Record, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, decodeRow(row))
	}
	return recs, nil
}

// GetByID 按 id 查找记录，未找到返回 nil
func (s *GormStore) GetByID(collection, id string) (Record, error) {
	var row recordRow
	err := s.db.Where("collection = ? AND record_id = ?", collection, id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeRow(row), nil
}

// Create 插入记录
func (s *GormStore) Create(collection string, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("序列化记录失败: %w", err)
	}
	return s.db.Create(&recordRow{
		Collection: collection,
		RecordID:   RecordID(rec),
		Data:       data,
	}).Error
}

// Update 按 id 整体替换记录，返回是否找到
func (s *GormStore) Update(collection, id string, rec Record) (bool, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return false, fmt.Errorf("序列化记录失败: %w", err)
	}
	result := s.db.Model(&recordRow{}).
		Where("collection = ? AND record_id = ?", collection, id).
		Update("data", data)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete 按 id 删除记录，返回是否找到
func (s *GormStore) Delete(collection, id string) (bool, error) {
	result := s.db.Where("collection = ? AND record_id = ?", collection, id).Delete(&recordRow{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Query 加载集合后在应用侧做 AND 等值匹配
func (s *GormStore) Query(collection string, filters map[string]any) ([]Record, error) {
	recs, err := s.GetAll(collection)
	if err != nil {
		return nil, err
	}
	result := []Record{}
	for _, rec := range recs {
		if matches(rec, filters) {
			result = append(result, rec)
		}
	}
	return result, nil
}
