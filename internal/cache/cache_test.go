package cache

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestKeyDeterministic(t *testing.T) {
	a := Key("classify", "premise", "hypothesis")
	b := Key("classify", "premise", "hypothesis")
	if a != b {
		t.Errorf("same parts gave different keys: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, "halidex:v1:") {
		t.Errorf("key %q missing namespace prefix", a)
	}
}

func TestKeySeparatesParts(t *testing.T) {
	// Without a separator ("ab","c") and ("a","bc") would collide
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("keys collide across part boundaries")
	}
	if Key("x") == Key("x", "") {
		t.Error("trailing empty part should change the key")
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("unexpected hit for missing key")
	}

	if err := c.Set("k", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, found := c.Get("k")
	if !found || !bytes.Equal(got, []byte("value")) {
		t.Errorf("Get = %q, %v", got, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("hit after delete")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("k", []byte("v"), 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("hit after TTL elapsed")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set(Key("evidence", "url"), []byte("page text"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, found := c.Get(Key("evidence", "url"))
	if !found || string(got) != "page text" {
		t.Errorf("Get = %q, %v", got, found)
	}
}

func TestDiskCacheExpiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)
	_ = c.Set("k", []byte("v"), 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("hit after TTL elapsed")
	}
}

func TestDiskCacheSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	first := NewDiskCache(dir, time.Minute)
	if err := first.Set("k", []byte("persisted"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	second := NewDiskCache(dir, time.Minute)
	got, found := second.Get("k")
	if !found || string(got) != "persisted" {
		t.Errorf("Get after reopen = %q, %v", got, found)
	}
}

func TestLayeredCachePromotion(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Minute)

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// A fresh layered cache over the same dir has a cold memory layer;
	// the disk hit must be promoted and still served
	fresh := NewLayeredCache(time.Minute, dir, time.Minute)
	got, found := fresh.Get("k")
	if !found || string(got) != "v" {
		t.Fatalf("Get = %q, %v", got, found)
	}

	// Second read is a memory hit even if the disk entry disappears
	_ = NewDiskCache(dir, time.Minute).Delete("k")
	got, found = fresh.Get("k")
	if !found || string(got) != "v" {
		t.Errorf("promoted Get = %q, %v", got, found)
	}
}

func TestLayeredCacheClear(t *testing.T) {
	c := NewLayeredCache(time.Minute, t.TempDir(), time.Minute)
	_ = c.Set("k", []byte("v"), time.Minute)

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("hit after clear")
	}
}
