package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache()

	if _, found := c.Get("Color"); found {
		t.Error("empty cache must not report hits")
	}

	c.Set("Color", "http://example.org/onto#Color")
	got, found := c.Get("Color")
	if !found || got != "http://example.org/onto#Color" {
		t.Errorf("Get = (%q, %v)", got, found)
	}

	c.Clear()
	if _, found := c.Get("Color"); found {
		t.Error("Clear did not evict entries")
	}
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	c := NewMemoryCache()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("cat-%d", n%4)
			c.Set(key, "iri-"+key)
			if got, found := c.Get(key); found && got != "iri-"+key {
				t.Errorf("wrong value for %s: %q", key, got)
			}
		}(i)
	}
	wg.Wait()
}
