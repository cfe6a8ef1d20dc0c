package pike

// cowCaptures and sharedCaptures give threads copy-on-write capture slots:
// a Split can fan a thread's captures out to both branches for free, and
// only the branch that actually records a new position (OpSave) pays for a
// copy, and only when another thread still holds a reference. Grounded on
// the teacher's nfa.cowCaptures/sharedCaptures.
type cowCaptures struct {
	shared *sharedCaptures
}

type sharedCaptures struct {
	data  []int
	refs  int
	words int // words charged against a memory budget when this was allocated
}

func (c cowCaptures) clone() cowCaptures {
	if c.shared == nil {
		return cowCaptures{}
	}
	c.shared.refs++
	return cowCaptures{shared: c.shared}
}

// update sets data[slot] = value, copying the backing array first if it is
// still shared with another thread. Reports whether a fresh allocation was
// made, so callers can charge it against a memory budget.
func (c cowCaptures) update(slot, value int) (out cowCaptures, allocated bool) {
	if c.shared == nil || slot < 0 || slot >= len(c.shared.data) {
		return c, false
	}
	if c.shared.refs > 1 {
		c.shared.refs--
		data := make([]int, len(c.shared.data))
		copy(data, c.shared.data)
		data[slot] = value
		return cowCaptures{shared: &sharedCaptures{data: data, refs: 1, words: len(data)}}, true
	}
	c.shared.data[slot] = value
	return c, false
}

func (c cowCaptures) copyData() []int {
	if c.shared == nil {
		return nil
	}
	dst := make([]int, len(c.shared.data))
	copy(dst, c.shared.data)
	return dst
}
