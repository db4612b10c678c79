package core

import "testing"

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]float64, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}

	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}

	if grown := EnsureLen(buf, 16); len(grown) != 16 {
		t.Fatalf("len = %d, want 16", len(grown))
	}
}

func TestCopyInto(t *testing.T) {
	dst := make([]float64, 2)

	n := CopyInto(dst, []float64{1, 2, 3})
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}

	if dst[0] != 1 || dst[1] != 2 {
		t.Fatalf("unexpected dst: %#v", dst)
	}
}

func TestCopyIntoSameBacking(t *testing.T) {
	buf := []float64{1, 2, 3}
	if n := CopyInto(buf, buf); n != 3 {
		t.Fatalf("n = %d, want 3", n)
	}
	if buf[2] != 3 {
		t.Fatalf("unexpected buf: %#v", buf)
	}
	if n := CopyInto(nil, buf); n != 0 {
		t.Fatalf("n = %d, want 0", n)
	}
}
