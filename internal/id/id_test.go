package id

import (
	"strings"
	"sync"
	"testing"
)

func TestNewWidgetID_Unique(t *testing.T) {
	a := NewWidgetID()
	b := NewWidgetID()
	if a == b {
		t.Error("sequential widget identities must differ")
	}
	if a == 0 || b == 0 {
		t.Error("identities start at 1, zero is reserved")
	}
}

func TestNewWidgetID_Concurrent(t *testing.T) {
	const n = 100
	ids := make([]WidgetID, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			ids[i] = NewWidgetID()
		}(i)
	}
	wg.Wait()

	seen := make(map[WidgetID]struct{}, n)
	for _, w := range ids {
		if _, dup := seen[w]; dup {
			t.Fatalf("duplicate identity %v", w)
		}
		seen[w] = struct{}{}
	}
}

func TestNamedWidgetID_Stable(t *testing.T) {
	a := NamedWidgetID("editor.gutter")
	b := NamedWidgetID("editor.gutter")
	if a != b {
		t.Error("the same name must map to the same identity")
	}
	c := NamedWidgetID("editor.body")
	if a == c {
		t.Error("different names must map to different identities")
	}
}

func TestWidgetID_String(t *testing.T) {
	named := NamedWidgetID("statusbar")
	if got := named.String(); got != "statusbar" {
		t.Errorf("String() = %q, want %q", got, "statusbar")
	}
	anon := NewWidgetID()
	if got := anon.String(); !strings.HasPrefix(got, "wgt-") {
		t.Errorf("String() = %q, want wgt-<n>", got)
	}
}

func TestWindowID_String(t *testing.T) {
	named := NamedWindowID("main")
	if got := named.String(); got != "main" {
		t.Errorf("String() = %q, want %q", got, "main")
	}
	anon := NewWindowID()
	if got := anon.String(); !strings.HasPrefix(got, "win-") {
		t.Errorf("String() = %q, want win-<n>", got)
	}
}
