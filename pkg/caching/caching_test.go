package caching

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestPageCache_SetGet(t *testing.T) {
	c, err := NewPageCache(filepath.Join(t.TempDir(), "pages"), time.Hour)
	if err != nil {
		t.Fatalf("NewPageCache() error = %v", err)
	}

	url := "https://play.example.com/store/apps/details?id=app"
	if _, _, ok := c.Get(url); ok {
		t.Error("Get() on empty cache = hit, want miss")
	}

	if err := c.Set(url, []byte("<html></html>")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	page, age, ok := c.Get(url)
	if !ok || string(page) != "<html></html>" {
		t.Errorf("Get() = %q, %v, want cached page", page, ok)
	}
	if age < 0 || age > time.Minute {
		t.Errorf("Get() age = %v, want fresh", age)
	}

	if !strings.HasSuffix(c.Path(url), pageExt) {
		t.Errorf("Path() = %q, want %s suffix", c.Path(url), pageExt)
	}
	if c.Path(url) == c.Path(url+"&hl=en") {
		t.Error("Path() collides for different URLs")
	}
}

func TestPageCache_Expired(t *testing.T) {
	c, err := NewPageCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewPageCache() error = %v", err)
	}
	if err := c.Set("u", []byte("old")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	c.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, _, ok := c.Get("u"); ok {
		t.Error("Get() on expired entry = hit, want miss")
	}

	c.maxAge = 0
	if _, _, ok := c.Get("u"); !ok {
		t.Error("Get() with no max age = miss, want hit")
	}
}

func TestPageCache_Remove(t *testing.T) {
	c, err := NewPageCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewPageCache() error = %v", err)
	}
	if err := c.Set("u", []byte("x")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Remove("u"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := os.Stat(c.Path("u")); !os.IsNotExist(err) {
		t.Errorf("cache file still exists: %v", err)
	}
	if err := c.Remove("u"); err != nil {
		t.Errorf("Remove() of missing entry error = %v", err)
	}
}
