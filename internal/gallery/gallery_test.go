package gallery

import "testing"

func TestLightbox(t *testing.T) {
	t.Run("Empty Gallery Open Is No-op", func(t *testing.T) {
		l := New[string](nil)
		if l.Open(0) {
			t.Error("expected open to fail")
		}
		if l.Visible() {
			t.Error("expected viewer hidden")
		}
		if _, ok := l.Current(); ok {
			t.Error("expected no current item")
		}
		l.Step(1)
		if l.Index() != 0 {
			t.Error("expected step on empty gallery to do nothing")
		}
	})

	t.Run("Open Out Of Range", func(t *testing.T) {
		l := New([]string{"a", "b"})
		for _, i := range []int{-1, 2, 10} {
			if l.Open(i) || l.Visible() {
				t.Errorf("expected open(%d) to be ignored", i)
			}
		}
	})

	t.Run("Wrap Forward", func(t *testing.T) {
		l := New([]string{"a", "b", "c"})
		l.Open(2)
		l.Step(1)
		if l.Index() != 0 {
			t.Errorf("expected 0, got %d", l.Index())
		}
		if !l.Visible() {
			t.Error("expected viewer to stay open")
		}
	})

	t.Run("Wrap Backward", func(t *testing.T) {
		l := New([]string{"a", "b", "c"})
		l.Open(0)
		l.Step(-1)
		if got, _ := l.Current(); got != "c" || l.Index() != 2 {
			t.Errorf("expected c at 2, got %s at %d", got, l.Index())
		}
	})

	t.Run("Single Item Wraps To Itself", func(t *testing.T) {
		l := New([]string{"a"})
		l.Open(0)
		l.Step(1)
		l.Step(-1)
		if l.Index() != 0 {
			t.Errorf("expected 0, got %d", l.Index())
		}
	})

	t.Run("Close Keeps Index", func(t *testing.T) {
		l := New([]string{"a", "b", "c"})
		l.Open(1)
		l.Close()
		if l.Visible() {
			t.Error("expected hidden")
		}
		if l.Index() != 1 {
			t.Errorf("expected index kept, got %d", l.Index())
		}
	})

	t.Run("Replace Resets", func(t *testing.T) {
		l := New([]string{"a", "b", "c"})
		l.Open(2)
		l.Replace([]string{"x"})
		if l.Visible() || l.Index() != 0 || l.Len() != 1 {
			t.Errorf("expected reset gallery, got visible=%v index=%d len=%d", l.Visible(), l.Index(), l.Len())
		}
	})
}
