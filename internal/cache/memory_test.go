package cache

import (
	"strings"
	"testing"
	"time"
)

func TestMemoryCache_GetSet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("Expected miss on empty cache")
	}

	c.Set("doc", []string{"Part 0", "Part 1"}, 0)
	got, ok := c.Get("doc")
	if !ok {
		t.Fatal("Expected hit after Set")
	}
	if strings.Join(got, "|") != "Part 0|Part 1" {
		t.Errorf("Unexpected paragraphs: %v", got)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", c.Len())
	}
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	src := []string{"a", "b"}
	c.Set("doc", src, 0)
	src[0] = "mutated"

	got, _ := c.Get("doc")
	got[1] = "mutated"

	again, _ := c.Get("doc")
	if again[0] != "a" || again[1] != "b" {
		t.Errorf("Cached value was mutated: %v", again)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	c.Set("short", []string{"x"}, time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("Expected entry to expire")
	}
}

func TestMemoryCache_DeleteClear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	c.Set("a", []string{"1"}, 0)
	c.Set("b", []string{"2"}, 0)

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("Expected a to be deleted")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Expected empty cache after Clear, got %d", c.Len())
	}
}

func TestKey(t *testing.T) {
	k1 := Key("docx", []byte("same"))
	k2 := Key("docx", []byte("same"))
	k3 := Key("txt", []byte("same"))
	k4 := Key("docx", []byte("other"))

	if k1 != k2 {
		t.Error("Expected identical content to produce identical keys")
	}
	if k1 == k3 || k1 == k4 {
		t.Error("Expected format and content to change the key")
	}
	if !strings.HasPrefix(k1, "irec:doc:v1:docx:") {
		t.Errorf("Unexpected key prefix: %s", k1)
	}
}
