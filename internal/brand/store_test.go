package brand

import (
	"strings"
	"sync"
	"testing"
)

func TestStoreDefaultsAndSet(t *testing.T) {
	s := NewStore()
	if s.Get() != DefaultContext {
		t.Fatalf("Get = %q, want default context", s.Get())
	}
	s.Set("Bold, loud, neon.")
	if s.Get() != "Bold, loud, neon." {
		t.Fatalf("Get after Set = %q", s.Get())
	}
}

func TestResolvePrefersRequestContext(t *testing.T) {
	s := NewStore()
	s.Set("stored guidelines")

	if got := s.Resolve("request guidelines"); got != "request guidelines" {
		t.Fatalf("Resolve = %q, want request guidelines", got)
	}
	if got := s.Resolve("   "); got != "stored guidelines" {
		t.Fatalf("Resolve with blank = %q, want stored guidelines", got)
	}
}

func TestConcurrentWritesNeverInterleave(t *testing.T) {
	s := NewStore()
	a := strings.Repeat("a", 4096)
	b := strings.Repeat("b", 4096)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			s.Set(a)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			s.Set(b)
		}
	}()

	var readers sync.WaitGroup
	for i := 0; i < 4; i++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				got := s.Get()
				if got != a && got != b && got != DefaultContext {
					t.Errorf("observed interleaved context of length %d", len(got))
					return
				}
			}
		}()
	}

	wg.Wait()
	close(stop)
	readers.Wait()
}
