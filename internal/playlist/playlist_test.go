// internal/playlist/playlist_test.go
//
//nolint:goconst // test file with repeated string literals
package playlist

import (
	"errors"
	"slices"
	"testing"
)

func TestNewPlaylist(t *testing.T) {
	p := NewPlaylist()

	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
	if _, ok := p.Head(); ok {
		t.Error("Head() on empty playlist should return false")
	}
	if len(p.IDs()) != 0 {
		t.Errorf("IDs() = %v, want empty", p.IDs())
	}
}

func TestPlaylist_AppendOrder(t *testing.T) {
	p := NewPlaylist()
	p.Append("a")
	p.Append("b")
	p.Append("c")

	if got := p.IDs(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("IDs() = %v, want [a b c]", got)
	}
	if p.Len() != 3 {
		t.Errorf("Len() = %d, want 3", p.Len())
	}
}

func TestPlaylist_AppendFindRemoveRestoresSize(t *testing.T) {
	p := NewPlaylist()
	p.Append("a")
	p.Append("b")
	before := p.Len()

	p.Append("x")
	h, err := p.Find("x")
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if err := p.Remove(h); err != nil {
		t.Fatalf("Remove error: %v", err)
	}

	if p.Len() != before {
		t.Errorf("Len() = %d, want %d", p.Len(), before)
	}
	if p.Contains("x") {
		t.Error("x should be absent after removal")
	}
}

func TestPlaylist_RemoveEndpoints(t *testing.T) {
	tests := []struct {
		name   string
		remove string
		want   []string
	}{
		{"head", "a", []string{"b", "c"}},
		{"middle", "b", []string{"a", "c"}},
		{"tail", "c", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlaylist()
			p.Append("a")
			p.Append("b")
			p.Append("c")

			h, _ := p.Find(tt.remove)
			if err := p.Remove(h); err != nil {
				t.Fatalf("Remove error: %v", err)
			}
			if got := p.IDs(); !slices.Equal(got, tt.want) {
				t.Errorf("IDs() = %v, want %v", got, tt.want)
			}

			// Backward traversal must agree with forward order.
			var back []string
			for h, ok := p.lastForTest(); ok; h, ok = p.Prev(h) {
				id, _ := p.ID(h)
				back = append(back, id)
			}
			slices.Reverse(back)
			if !slices.Equal(back, tt.want) {
				t.Errorf("backward = %v, want %v", back, tt.want)
			}
		})
	}
}

// lastForTest walks to the tail using Next.
func (p *Playlist) lastForTest() (Handle, bool) {
	h, ok := p.Head()
	if !ok {
		return Handle{}, false
	}
	for {
		next, ok := p.Next(h)
		if !ok {
			return h, true
		}
		h = next
	}
}

func TestPlaylist_RemoveOnlyEntry(t *testing.T) {
	p := NewPlaylist()
	h := p.Append("a")

	if err := p.Remove(h); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if !p.IsEmpty() {
		t.Error("playlist should be empty")
	}

	p.Append("b")
	if got := p.IDs(); !slices.Equal(got, []string{"b"}) {
		t.Errorf("IDs() = %v, want [b]", got)
	}
}

func TestPlaylist_RemoveInvalidHandle(t *testing.T) {
	p := NewPlaylist()
	h := p.Append("a")

	if err := p.Remove(Handle{}); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("Remove(zero) error = %v, want ErrInvalidHandle", err)
	}

	_ = p.Remove(h)
	if err := p.Remove(h); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("Remove(stale) error = %v, want ErrInvalidHandle", err)
	}
}

func TestPlaylist_StaleHandleAfterSlotReuse(t *testing.T) {
	p := NewPlaylist()
	old := p.Append("a")
	_ = p.Remove(old)

	fresh := p.Append("b") // reuses the freed slot

	if p.Valid(old) {
		t.Error("old handle should be stale after slot reuse")
	}
	if !p.Valid(fresh) {
		t.Error("fresh handle should be valid")
	}
	if _, ok := p.ID(old); ok {
		t.Error("ID(stale) should return false")
	}
	if err := p.Remove(old); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("Remove(stale) error = %v, want ErrInvalidHandle", err)
	}
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}
}

func TestPlaylist_FindNotFound(t *testing.T) {
	p := NewPlaylist()
	p.Append("a")

	if _, err := p.Find("z"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find error = %v, want ErrNotFound", err)
	}
}

func TestPlaylist_FindReturnsFirstDuplicate(t *testing.T) {
	p := NewPlaylist()
	first := p.Append("a")
	p.Append("b")
	p.Append("a")

	h, err := p.Find("a")
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if h != first {
		t.Error("Find should return the first occurrence")
	}

	_ = p.Remove(h)
	if got := p.IDs(); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("IDs() = %v, want [b a]", got)
	}
}

func TestPlaylist_CursorMovement(t *testing.T) {
	p := NewPlaylist()
	p.Append("a")
	p.Append("b")

	h, ok := p.Head()
	if !ok {
		t.Fatal("Head() returned false")
	}
	if _, ok := p.Prev(h); ok {
		t.Error("Prev(head) should return false")
	}

	h, ok = p.Next(h)
	if !ok {
		t.Fatal("Next(head) returned false")
	}
	if id, _ := p.ID(h); id != "b" {
		t.Errorf("ID = %q, want b", id)
	}
	if _, ok := p.Next(h); ok {
		t.Error("Next(tail) should return false")
	}
}

func TestPlaylist_RemoveAll(t *testing.T) {
	p := NewPlaylist()
	p.Append("a")
	p.Append("b")
	p.Append("a")
	p.Append("c")

	n := p.RemoveAll("a")

	if n != 2 {
		t.Errorf("RemoveAll = %d, want 2", n)
	}
	if got := p.IDs(); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("IDs() = %v, want [b c]", got)
	}
}
