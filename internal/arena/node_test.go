package arena

import "testing"

func TestLeaf(t *testing.T) {
	n := Leaf(42, 7)
	if !n.IsLeaf() {
		t.Fatalf("Leaf node reports IsLeaf() == false")
	}
	if got := n.ValueID(); got != 42 {
		t.Errorf("ValueID() = %d, want 42", got)
	}
	if got := n.Parent(); got != 7 {
		t.Errorf("Parent() = %d, want 7", got)
	}
	if n.HasLeaf() {
		t.Errorf("fresh Leaf node reports HasLeaf() == true")
	}
}

func TestInterior(t *testing.T) {
	n := Interior(3)
	if n.IsLeaf() {
		t.Fatalf("Interior node reports IsLeaf() == true")
	}
	if got := n.Parent(); got != 3 {
		t.Errorf("Parent() = %d, want 3", got)
	}

	n = n.WithBase(99)
	if got := n.BaseRaw(); got != 99 {
		t.Errorf("BaseRaw() after WithBase(99) = %d, want 99", got)
	}
	if n.IsLeaf() {
		t.Errorf("WithBase set the leaf bit")
	}

	n = n.WithHasLeaf()
	if !n.HasLeaf() {
		t.Errorf("WithHasLeaf did not set HasLeaf")
	}
	if got := n.BaseRaw(); got != 99 {
		t.Errorf("WithHasLeaf disturbed Base: got %d, want 99", got)
	}
	if got := n.Parent(); got != 3 {
		t.Errorf("WithHasLeaf disturbed Parent: got %d, want 3", got)
	}
}

func TestWithBaseMasksLeafBit(t *testing.T) {
	n := Interior(0).WithBase(1 << 31)
	if n.IsLeaf() {
		t.Fatalf("WithBase(1<<31) must mask the leaf bit out of a raw base, not set it")
	}
}

func TestFreeIsNotAChildOfRoot(t *testing.T) {
	n := Free()
	if n.IsLeaf() {
		t.Errorf("Free() reports IsLeaf() == true")
	}
	if n.HasLeaf() {
		t.Errorf("Free() reports HasLeaf() == true")
	}
	if got := n.Parent(); got != noParent || got == rootIndex {
		t.Errorf("Free().Parent() = %d, want the noParent sentinel (and not rootIndex)", got)
	}
}
