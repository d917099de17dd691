package service

import (
	"sync"
	"testing"
	"time"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := newKeyedMutex()

	const n = 100
	counter := 0 // deliberately unsynchronized; the lock must protect it
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.lock("img")
			counter++
			km.unlock("img")
		}()
	}
	wg.Wait()

	if counter != n {
		t.Errorf("counter = %d, want %d", counter, n)
	}
}

func TestKeyedMutex_DifferentKeysDoNotBlock(t *testing.T) {
	km := newKeyedMutex()

	km.lock("a")
	defer km.unlock("a")

	acquired := make(chan struct{})
	go func() {
		km.lock("b")
		km.unlock("b")
		close(acquired)
	}()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("lock on independent key blocked behind held key")
	}
}

func TestKeyedMutex_EntryRemovedAfterLastRelease(t *testing.T) {
	km := newKeyedMutex()

	km.lock("img")
	km.unlock("img")

	km.mu.Lock()
	size := len(km.locks)
	km.mu.Unlock()

	if size != 0 {
		t.Errorf("lock map size = %d after release, want 0", size)
	}
}
