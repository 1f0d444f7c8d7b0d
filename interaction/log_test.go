package interaction

import (
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/rushteam/shopsense/core"
)

func TestAppendAndScan(t *testing.T) {
	l := NewLog()

	l.Append(core.Interaction{UserID: 7, Product: 10, Score: 5.0})
	l.Append(core.Interaction{UserID: 8, Product: 10, Score: 5.0})
	l.Append(core.Interaction{UserID: 8, Product: 20, Score: 4.5})
	l.Append(core.Interaction{UserID: 9, Product: 10, Score: 1.0}) // 弱信号
	l.Append(core.Interaction{UserID: 7, Product: 10, Score: 5.0}) // 重复用户

	if l.Len() != 5 {
		t.Errorf("Len() = %d, want 5", l.Len())
	}

	// 去重且保持写入顺序
	users := l.UsersAbove(10, 4.0)
	if !reflect.DeepEqual(users, []int64{7, 8}) {
		t.Errorf("UsersAbove(10, 4.0) = %v, want [7 8]", users)
	}

	products := l.ProductsAbove(8, 4.0)
	if !reflect.DeepEqual(products, []int64{10, 20}) {
		t.Errorf("ProductsAbove(8, 4.0) = %v, want [10 20]", products)
	}
}

func TestThresholdSemantics(t *testing.T) {
	l := NewLog()
	l.Append(core.Interaction{UserID: 1, Product: 5, Score: 3.5})

	// ProductsAbove 为 >=，ProductsOver 为 >
	if got := l.ProductsAbove(1, 3.5); !reflect.DeepEqual(got, []int64{5}) {
		t.Errorf("ProductsAbove(1, 3.5) = %v, want [5]", got)
	}
	if got := l.ProductsOver(1, 3.5); got != nil {
		t.Errorf("ProductsOver(1, 3.5) = %v, want nil", got)
	}
}

func TestGuestEventsDropped(t *testing.T) {
	l := NewLog()
	l.Append(core.Interaction{UserID: core.GuestUserID, Product: 1, Score: 5.0})

	if l.Len() != 0 {
		t.Errorf("guest events must not be appended, Len() = %d", l.Len())
	}
}

func TestEmptyLog(t *testing.T) {
	l := NewLog()

	if got := l.UsersAbove(10, 4.0); got != nil {
		t.Errorf("UsersAbove on empty log = %v, want nil", got)
	}
	if got := l.ProductsAbove(10, 4.0); got != nil {
		t.Errorf("ProductsAbove on empty log = %v, want nil", got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.msgpack")

	l := NewLog()
	l.Append(core.Interaction{UserID: 7, Product: 10, Score: 5.0})
	l.Append(core.Interaction{UserID: 8, Product: 20, Score: 3.5})

	if err := l.SaveSnapshot(path); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}

	restored, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}

	if !reflect.DeepEqual(restored.Snapshot(), l.Snapshot()) {
		t.Errorf("snapshot mismatch:\n got %+v\nwant %+v", restored.Snapshot(), l.Snapshot())
	}
}

func TestConcurrentAppend(t *testing.T) {
	l := NewLog()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(user int64) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				l.Append(core.Interaction{UserID: user, Product: int64(j), Score: 5.0})
			}
		}(int64(i + 1))
	}
	wg.Wait()

	if l.Len() != 800 {
		t.Errorf("Len() = %d, want 800", l.Len())
	}
	for u := int64(1); u <= 8; u++ {
		if got := len(l.ProductsAbove(u, 4.0)); got != 100 {
			t.Errorf("user %d products = %d, want 100", u, got)
		}
	}
}
