package storage

import (
	"path/filepath"
	"testing"
)

func TestSQLitePutAndGet(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test_kv.db")

	s, err := NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	if err := s.Put("user_location", []byte(`{"lat":1.3521,"lng":103.8198}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	data, ok, err := s.Get("user_location")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("expected key to exist")
	}
	if string(data) != `{"lat":1.3521,"lng":103.8198}` {
		t.Fatalf("unexpected value: %s", data)
	}

	// Upsert replaces the previous value.
	if err := s.Put("user_location", []byte(`{"lat":1.3811,"lng":103.955}`)); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}
	data, ok, err = s.Get("user_location")
	if err != nil || !ok {
		t.Fatalf("Get after upsert failed: ok=%v err=%v", ok, err)
	}
	if string(data) != `{"lat":1.3811,"lng":103.955}` {
		t.Fatalf("upsert did not replace value: %s", data)
	}
}

func TestSQLiteMissingKey(t *testing.T) {
	dir := t.TempDir()
	s, err := NewSQLite(filepath.Join(dir, "test_kv.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	_, ok, err := s.Get("no_such_key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Fatal("expected missing key")
	}
}

func TestSQLiteDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewSQLite(filepath.Join(dir, "test_kv.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	if err := s.Put("user_preferences", []byte(`{"units":"metric"}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Delete("user_preferences"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, err := s.Get("user_preferences"); err != nil || ok {
		t.Fatalf("expected key gone after delete: ok=%v err=%v", ok, err)
	}

	// Deleting an absent key is not an error.
	if err := s.Delete("user_preferences"); err != nil {
		t.Fatalf("Delete of absent key failed: %v", err)
	}
}

func TestSQLiteJSONHelpers(t *testing.T) {
	dir := t.TempDir()
	s, err := NewSQLite(filepath.Join(dir, "test_kv.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	type prefs struct {
		Units string `json:"units"`
	}
	if err := PutJSON(s, "user_preferences", prefs{Units: "metric"}); err != nil {
		t.Fatalf("PutJSON failed: %v", err)
	}

	var got prefs
	ok, err := GetJSON(s, "user_preferences", &got)
	if err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if !ok || got.Units != "metric" {
		t.Fatalf("unexpected round trip: ok=%v got=%+v", ok, got)
	}

	var missing prefs
	ok, err = GetJSON(s, "absent", &missing)
	if err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}
}
