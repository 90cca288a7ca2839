package internal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func exerciseKVStore(t *testing.T, kv KVStore) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, "missing"); err != nil || ok {
		t.Errorf("Get(missing) = ok %v, err %v", ok, err)
	}

	if err := kv.Put(ctx, "chat:a", "1"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := kv.Put(ctx, "chat:a", "2"); err != nil {
		t.Fatalf("Put() overwrite error = %v", err)
	}
	if err := kv.Put(ctx, "chat:b", "3"); err != nil {
		t.Fatal(err)
	}
	if err := kv.Put(ctx, "other", "4"); err != nil {
		t.Fatal(err)
	}

	value, ok, err := kv.Get(ctx, "chat:a")
	if err != nil || !ok || value != "2" {
		t.Errorf("Get(chat:a) = %q, %v, %v", value, ok, err)
	}

	keys, err := kv.Keys(ctx, "chat:")
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "chat:a" || keys[1] != "chat:b" {
		t.Errorf("Keys() = %v", keys)
	}

	if err := kv.Delete(ctx, "chat:a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "chat:a"); ok {
		t.Error("key still present after Delete()")
	}
}

func TestSQLiteStore(t *testing.T) {
	kv, err := NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "state.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer kv.Close()
	exerciseKVStore(t, kv)
}

func TestSQLiteStore_KeysPrefixIsLiteral(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()
	for _, key := range []string{"workspace", "work_space", "workXspace", "Workspace", "100%done", "100xdone"} {
		if err := kv.Put(ctx, key, "v"); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		prefix string
		want   []string
	}{
		{"work_", []string{"work_space"}},
		{"Work", []string{"Workspace"}},
		{"work", []string{"workXspace", "work_space", "workspace"}},
		{"100%", []string{"100%done"}},
		{"none", nil},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			keys, err := kv.Keys(ctx, tt.prefix)
			if err != nil {
				t.Fatalf("Keys() error = %v", err)
			}
			sort.Strings(keys)
			if len(keys) != len(tt.want) {
				t.Fatalf("Keys(%q) = %v, want %v", tt.prefix, keys, tt.want)
			}
			for i := range keys {
				if keys[i] != tt.want[i] {
					t.Errorf("Keys(%q) = %v, want %v", tt.prefix, keys, tt.want)
				}
			}
		})
	}
}

func TestGlobEscaper(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"chat:", "chat:"},
		{"a*b?c", `a\*b\?c`},
		{"[x]", `\[x\]`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := globEscaper.Replace(tt.in); got != tt.want {
			t.Errorf("globEscaper.Replace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSQLiteStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	first, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Put(ctx, ChatStorageKey, "[]"); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()
	if _, ok, err := second.Get(ctx, ChatStorageKey); err != nil || !ok {
		t.Errorf("value not persisted: ok %v, err %v", ok, err)
	}
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("NOTELOOMS_TEST_REDIS")
	if url == "" {
		t.Skip("NOTELOOMS_TEST_REDIS not set")
	}
	kv, err := OpenStore(context.Background(), url)
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	defer kv.Close()
	if _, ok := kv.(*RedisStore); !ok {
		t.Fatalf("OpenStore() = %T, want *RedisStore", kv)
	}
	ctx := context.Background()
	for _, key := range []string{"chat:a", "chat:b", "other"} {
		_ = kv.Delete(ctx, key)
	}
	exerciseKVStore(t, kv)
}

func TestOpenStore_BadRedisURL(t *testing.T) {
	_, err := OpenStore(context.Background(), "redis://localhost:6379/notadb")
	var storageErr *StorageError
	if !errors.As(err, &storageErr) || storageErr.Op != "open" {
		t.Errorf("OpenStore() error = %v, want open StorageError", err)
	}
}

func TestJSONHelpers(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	in := []ChatMessage{{Sender: SenderUser, Text: "hi"}}
	if err := PutJSON(ctx, kv, "k", in); err != nil {
		t.Fatal(err)
	}
	var out []ChatMessage
	ok, err := GetJSON(ctx, kv, "k", &out)
	if err != nil || !ok || len(out) != 1 || out[0].Text != "hi" {
		t.Errorf("GetJSON() = %+v, %v, %v", out, ok, err)
	}

	if err := kv.Put(ctx, "bad", "{"); err != nil {
		t.Fatal(err)
	}
	_, err = GetJSON(ctx, kv, "bad", &out)
	var storageErr *StorageError
	if !errors.As(err, &storageErr) || storageErr.Op != "parse" {
		t.Errorf("GetJSON(bad) error = %v, want parse StorageError", err)
	}
}
