package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	t.Run("Deterministic", func(t *testing.T) {
		a := k.ComposeKey("snap1", "view1")
		b := k.ComposeKey("snap1", "view1")
		if a != b {
			t.Errorf("same inputs produced different keys: %q vs %q", a, b)
		}
	})

	t.Run("DistinctInputsDistinctKeys", func(t *testing.T) {
		keys := map[string]bool{
			k.ComposeKey("snap1", "view1"): true,
			k.ComposeKey("snap1", "view2"): true,
			k.ComposeKey("snap2", "view1"): true,
			k.RenderKey("compose1", "svg"): true,
			k.RenderKey("compose1", "dot"): true,
			k.RenderKey("compose2", "svg"): true,
		}
		if len(keys) != 6 {
			t.Errorf("expected 6 unique keys, got %d", len(keys))
		}
	})

	t.Run("Prefixes", func(t *testing.T) {
		if !strings.HasPrefix(k.ComposeKey("h", "v"), "compose:") {
			t.Error("compose key missing prefix")
		}
		if !strings.HasPrefix(k.RenderKey("h", "svg"), "render:") {
			t.Error("render key missing prefix")
		}
	})
}

func TestScopedKeyer(t *testing.T) {
	base := NewDefaultKeyer()
	scoped := NewScopedKeyer(base, "ws:acme:")

	got := scoped.ComposeKey("snap", "view")
	want := "ws:acme:" + base.ComposeKey("snap", "view")
	if got != want {
		t.Errorf("scoped key = %q, want %q", got, want)
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	t.Run("MissOnEmpty", func(t *testing.T) {
		_, hit, err := c.Get(ctx, "nope")
		if err != nil || hit {
			t.Errorf("got hit=%v err=%v, want miss", hit, err)
		}
	})

	t.Run("SetGet", func(t *testing.T) {
		if err := c.Set(ctx, "k", []byte("payload"), 0); err != nil {
			t.Fatal(err)
		}
		data, hit, err := c.Get(ctx, "k")
		if err != nil || !hit {
			t.Fatalf("got hit=%v err=%v, want hit", hit, err)
		}
		if string(data) != "payload" {
			t.Errorf("data = %q", data)
		}
	})

	t.Run("Expiration", func(t *testing.T) {
		c.Set(ctx, "ttl", []byte("x"), time.Nanosecond)
		time.Sleep(time.Millisecond)
		if _, hit, _ := c.Get(ctx, "ttl"); hit {
			t.Error("expired entry still returned")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		c.Set(ctx, "gone", []byte("x"), 0)
		if err := c.Delete(ctx, "gone"); err != nil {
			t.Fatal(err)
		}
		if _, hit, _ := c.Get(ctx, "gone"); hit {
			t.Error("deleted entry still returned")
		}
		if err := c.Delete(ctx, "never-existed"); err != nil {
			t.Errorf("deleting missing key: %v", err)
		}
	})
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set(ctx, "compose:abc", []byte("view-model"), time.Hour); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "compose:abc")
	if err != nil || !hit {
		t.Fatalf("got hit=%v err=%v, want hit", hit, err)
	}
	if string(data) != "view-model" {
		t.Errorf("data = %q", data)
	}

	c.Set(ctx, "short", []byte("x"), time.Nanosecond)
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry returned")
	}

	if err := c.Delete(ctx, "compose:abc"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "compose:abc"); hit {
		t.Error("deleted entry still returned")
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	c.Set(ctx, "k", []byte("x"), 0)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("null cache returned a hit")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	t.Run("NonRetryableFailsFast", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(ctx, func() error {
			calls++
			return context.Canceled
		})
		if err == nil || calls != 1 {
			t.Errorf("calls = %d err = %v, want 1 call and an error", calls, err)
		}
	})

	t.Run("NilError", func(t *testing.T) {
		if err := RetryWithBackoff(ctx, func() error { return nil }); err != nil {
			t.Errorf("err = %v", err)
		}
	})
}
