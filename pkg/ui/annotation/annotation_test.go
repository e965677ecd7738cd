package annotation

import (
	"testing"

	"github.com/ryanoneill/envision-sub004/pkg/ui/backend"
)

func TestGetByID(t *testing.T) {
	r := NewRegistry()
	r.Record(backend.NewRect(0, 0, 10, 1), Annotation{ID: "title", Type: WidgetLabel})
	r.Record(backend.NewRect(0, 2, 10, 1), Annotation{ID: "submit", Type: WidgetButton, Label: "Submit"})

	reg, ok := r.GetByID("submit")
	if !ok {
		t.Fatal("submit not found")
	}
	if reg.Annotation.Label != "Submit" || reg.Rect.Y != 2 {
		t.Errorf("wrong region: %+v", reg)
	}
	if _, ok := r.GetByID("missing"); ok {
		t.Error("found a region that was never recorded")
	}
}

func TestFindByType(t *testing.T) {
	r := NewRegistry()
	r.Record(backend.NewRect(0, 0, 5, 1), Annotation{ID: "a", Type: WidgetButton})
	r.Record(backend.NewRect(0, 1, 5, 1), Annotation{ID: "b", Type: WidgetLabel})
	r.Record(backend.NewRect(0, 2, 5, 1), Annotation{ID: "c", Type: WidgetButton})

	buttons := r.FindByType(WidgetButton)
	if len(buttons) != 2 {
		t.Fatalf("buttons = %d", len(buttons))
	}
	if buttons[0].Annotation.ID != "a" || buttons[1].Annotation.ID != "c" {
		t.Errorf("wrong order: %v, %v", buttons[0].Annotation.ID, buttons[1].Annotation.ID)
	}
}

func TestAtPicksInnermost(t *testing.T) {
	r := NewRegistry()
	r.Open(backend.NewRect(0, 0, 20, 10), Annotation{ID: "panel", Type: WidgetContainer})
	r.Record(backend.NewRect(2, 2, 6, 1), Annotation{ID: "field", Type: WidgetTextInput})
	r.Close()

	inner, ok := r.At(3, 2)
	if !ok || inner.Annotation.ID != "field" {
		t.Errorf("At(3,2) = %+v ok=%v", inner, ok)
	}
	outer, ok := r.At(15, 5)
	if !ok || outer.Annotation.ID != "panel" {
		t.Errorf("At(15,5) = %+v ok=%v", outer, ok)
	}
	if _, ok := r.At(50, 50); ok {
		t.Error("hit outside all regions")
	}
}

func TestParentChain(t *testing.T) {
	r := NewRegistry()
	r.Open(backend.NewRect(0, 0, 20, 10), Annotation{ID: "outer", Type: WidgetContainer})
	r.Open(backend.NewRect(1, 1, 10, 5), Annotation{ID: "inner", Type: WidgetContainer})
	r.Record(backend.NewRect(2, 2, 4, 1), Annotation{ID: "leaf", Type: WidgetButton})
	r.Close()
	r.Close()
	r.Record(backend.NewRect(0, 11, 4, 1), Annotation{ID: "loose", Type: WidgetLabel})

	leaf, _ := r.GetByID("leaf")
	if leaf.Depth() != 2 {
		t.Errorf("leaf depth = %d", leaf.Depth())
	}
	parent, ok := r.Parent(leaf)
	if !ok || parent.Annotation.ID != "inner" {
		t.Errorf("leaf parent = %+v", parent.Annotation.ID)
	}
	grand, ok := r.Parent(parent)
	if !ok || grand.Annotation.ID != "outer" {
		t.Errorf("grandparent = %+v", grand.Annotation.ID)
	}
	loose, _ := r.GetByID("loose")
	if _, ok := r.Parent(loose); ok {
		t.Error("top-level region has no parent")
	}
	if loose.Depth() != 0 {
		t.Errorf("loose depth = %d", loose.Depth())
	}
}

func TestUnbalancedCloseIgnored(t *testing.T) {
	r := NewRegistry()
	r.Close()
	r.Record(backend.NewRect(0, 0, 1, 1), Annotation{ID: "x"})
	if r.Len() != 1 {
		t.Errorf("len = %d", r.Len())
	}
}

func TestWithInstallsAndRestores(t *testing.T) {
	if Active() != nil {
		t.Fatal("registry active outside any scope")
	}

	reg := With(func() {
		if Active() == nil {
			t.Fatal("no registry inside scope")
		}
		Record(backend.NewRect(0, 0, 3, 1), Annotation{ID: "w"})

		nested := With(func() {
			Record(backend.NewRect(0, 0, 1, 1), Annotation{ID: "n"})
		})
		if nested.Len() != 1 {
			t.Errorf("nested len = %d", nested.Len())
		}
		// Outer scope back in effect.
		Record(backend.NewRect(0, 1, 3, 1), Annotation{ID: "w2"})
	})

	if reg.Len() != 2 {
		t.Errorf("outer len = %d", reg.Len())
	}
	if Active() != nil {
		t.Error("registry not restored after scope")
	}
}

func TestWithRestoresOnPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic swallowed")
		}
		if Active() != nil {
			t.Error("registry leaked after panic")
		}
	}()
	With(func() {
		panic("render failed")
	})
}

func TestRecordingOutsideScopeIsNoOp(t *testing.T) {
	Record(backend.NewRect(0, 0, 1, 1), Annotation{ID: "ignored"})
	Open(backend.NewRect(0, 0, 1, 1), Annotation{ID: "ignored"})
	Close()
}
