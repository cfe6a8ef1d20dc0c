package prog

import "testing"

func TestBuilder_AddAndPatch(t *testing.T) {
	b := NewBuilder()
	match := b.AddMatch()
	rn := b.AddRune('a', 'a', InvalidInst)
	if err := b.Patch(rn, match); err != nil {
		t.Fatalf("Patch failed: %v", err)
	}
	b.SetStart(rn)

	p, err := b.Build(1, []string{""}, false)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if p.Insts[rn].Next != match {
		t.Fatalf("patched Next = %d, want %d", p.Insts[rn].Next, match)
	}
}

func TestBuilder_Patch_WrongKind(t *testing.T) {
	b := NewBuilder()
	left := b.AddMatch()
	right := b.AddMatch()
	split := b.AddSplit(left, right)

	if err := b.Patch(split, left); err == nil {
		t.Fatal("expected Patch on a Split instruction to fail")
	}
}

func TestBuilder_PatchSplit(t *testing.T) {
	b := NewBuilder()
	a := b.AddMatch()
	c := b.AddMatch()
	split := b.AddSplit(InvalidInst, InvalidInst)
	if err := b.PatchSplit(split, a, c); err != nil {
		t.Fatalf("PatchSplit failed: %v", err)
	}
	b.SetStart(split)
	p, err := b.Build(1, []string{""}, false)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if p.Insts[split].Left != a || p.Insts[split].Right != c {
		t.Fatalf("split targets = (%d, %d), want (%d, %d)", p.Insts[split].Left, p.Insts[split].Right, a, c)
	}
}

func TestBuilder_Build_InvalidStart(t *testing.T) {
	b := NewBuilder()
	b.AddMatch()
	b.SetStart(99)
	if _, err := b.Build(1, []string{""}, false); err == nil {
		t.Fatal("expected Build to reject an out-of-bounds start")
	}
}

func TestBuilder_Build_DanglingNext(t *testing.T) {
	b := NewBuilder()
	rn := b.AddRune('a', 'a', 42) // never patched to a valid target
	b.SetStart(rn)
	if _, err := b.Build(1, []string{""}, false); err == nil {
		t.Fatal("expected Build to reject a dangling Next target")
	}
}

func TestBuilder_Len(t *testing.T) {
	b := NewBuilder()
	if b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", b.Len())
	}
	b.AddMatch()
	b.AddFail()
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
}
