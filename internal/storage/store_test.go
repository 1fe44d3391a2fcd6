package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// 契约测试同时跑在内存实现和文件实现上
func testBackends(t *testing.T) map[string]Store {
	jsonStore, err := NewJSONStore(t.TempDir(), "users", "movies", "user_movies")
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	return map[string]Store{
		"mem":  NewMemStore(),
		"json": jsonStore,
	}
}

func TestStoreCreateAndGetByID(t *testing.T) {
	for name, store := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			rec := Record{
				"id":       "u1",
				"username": "alice",
				"count":    float64(3),
				"active":   true,
			}
			if err := store.Create("users", rec); err != nil {
				t.Fatalf("Create: %v", err)
			}

			got, err := store.GetByID("users", "u1")
			if err != nil {
				t.Fatalf("GetByID: %v", err)
			}
			// 写入再读出必须深度相等
			if !reflect.DeepEqual(got, rec) {
				t.Errorf("记录往返不一致: got %v, want %v", got, rec)
			}

			missing, err := store.GetByID("users", "nope")
			if err != nil {
				t.Fatalf("GetByID: %v", err)
			}
			if missing != nil {
				t.Errorf("不存在的 id 应返回 nil, got %v", missing)
			}
		})
	}
}

func TestStoreQuery(t *testing.T) {
	for name, store := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			records := []Record{
				{"id": "1", "user_id": "u1", "status": "wish"},
				{"id": "2", "user_id": "u1", "status": "watched"},
				{"id": "3", "user_id": "u2", "status": "wish"},
			}
			for _, rec := range records {
				if err := store.Create("user_movies", rec); err != nil {
					t.Fatalf("Create: %v", err)
				}
			}

			tests := []struct {
				name    string
				filters map[string]any
				wantIDs []string
			}{
				{"单字段", map[string]any{"user_id": "u1"}, []string{"1", "2"}},
				{"多字段 AND", map[string]any{"user_id": "u1", "status": "wish"}, []string{"1"}},
				{"无匹配", map[string]any{"user_id": "u3"}, []string{}},
				{"空过滤返回全部", map[string]any{}, []string{"1", "2", "3"}},
			}
			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					got, err := store.Query("user_movies", tt.filters)
					if err != nil {
						t.Fatalf("Query: %v", err)
					}
					ids := make([]string, 0, len(got))
					for _, rec := range got {
						ids = append(ids, RecordID(rec))
					}
					if !reflect.DeepEqual(ids, tt.wantIDs) {
						t.Errorf("查询结果 = %v, want %v", ids, tt.wantIDs)
					}
				})
			}
		})
	}
}

func TestStoreUpdate(t *testing.T) {
	for name, store := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Create("movies", Record{"id": "m1", "title": "before"}); err != nil {
				t.Fatalf("Create: %v", err)
			}

			found, err := store.Update("movies", "m1", Record{"id": "m1", "title": "after"})
			if err != nil {
				t.Fatalf("Update: %v", err)
			}
			if !found {
				t.Error("已存在的记录更新应返回 true")
			}

			got, _ := store.GetByID("movies", "m1")
			if got["title"] != "after" {
				t.Errorf("title = %v, want after", got["title"])
			}

			found, err = store.Update("movies", "nope", Record{"id": "nope"})
			if err != nil {
				t.Fatalf("Update: %v", err)
			}
			if found {
				t.Error("不存在的记录更新应返回 false")
			}
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for name, store := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Create("movies", Record{"id": "m1"}); err != nil {
				t.Fatalf("Create: %v", err)
			}

			found, err := store.Delete("movies", "m1")
			if err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if !found {
				t.Error("删除已存在的记录应返回 true")
			}

			all, _ := store.GetAll("movies")
			if len(all) != 0 {
				t.Errorf("删除后集合应为空, got %d 条", len(all))
			}

			found, _ = store.Delete("movies", "m1")
			if found {
				t.Error("重复删除应返回 false")
			}
		})
	}
}

func TestJSONStoreInitializesFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewJSONStore(dir, "users", "movies"); err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	for _, name := range []string{"users.json", "movies.json"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("集合文件未创建: %v", err)
		}
		if string(data) != "[]" {
			t.Errorf("%s 初始内容 = %q, want []", name, data)
		}
	}
}

func TestJSONStoreHealsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewJSONStore(dir, "users")
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	// 损坏的文件按空集合处理
	path := filepath.Join(dir, "users.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	all, err := store.GetAll("users")
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("损坏文件应读作空集合, got %d 条", len(all))
	}

	// 下一次写入自动恢复为合法内容
	if err := store.Create("users", Record{"id": "u1"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	all, _ = store.GetAll("users")
	if len(all) != 1 || RecordID(all[0]) != "u1" {
		t.Errorf("写入后应只有恢复的记录, got %v", all)
	}
}

func TestMemStoreIsolation(t *testing.T) {
	store := NewMemStore()
	rec := Record{"id": "u1", "tags": []any{"a"}}
	if err := store.Create("users", rec); err != nil {
		t.Fatal(err)
	}

	// 调用方修改取出的记录不应影响存储内部状态
	got, _ := store.GetByID("users", "u1")
	got["id"] = "mutated"

	again, _ := store.GetByID("users", "u1")
	if again == nil || RecordID(again) != "u1" {
		t.Errorf("内部状态被外部修改污染: %v", again)
	}
}
