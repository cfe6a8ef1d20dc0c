package re2vm

// FindAll returns up to n non-overlapping matches in b, in order. n < 0
// means unlimited; n == 0 returns nil; n > 0 caps the result at n matches.
func (re *Regexp) FindAll(b []byte, n int) [][]byte {
	matches := re.engine.FindAll(b, n)
	if len(matches) == 0 {
		return nil
	}
	out := make([][]byte, len(matches))
	for i, m := range matches {
		out[i] = m.Bytes()
	}
	return out
}

// FindAllString is FindAll for strings.
func (re *Regexp) FindAllString(s string, n int) []string {
	matches := re.engine.FindAll([]byte(s), n)
	if len(matches) == 0 {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.String()
	}
	return out
}

// FindAllIndex is FindAll returning each match's (start, end) span.
func (re *Regexp) FindAllIndex(b []byte, n int) [][]int {
	indices := re.engine.FindAllIndices(b, n)
	if len(indices) == 0 {
		return nil
	}
	out := make([][]int, len(indices))
	for i, idx := range indices {
		out[i] = []int{idx[0], idx[1]}
	}
	return out
}

// FindAllStringIndex is FindAllIndex for strings.
func (re *Regexp) FindAllStringIndex(s string, n int) [][]int {
	return re.FindAllIndex([]byte(s), n)
}

// FindAllSubmatch is FindAll with every match's capture groups.
func (re *Regexp) FindAllSubmatch(b []byte, n int) [][][]byte {
	matches := re.engine.FindAllSubmatch(b, n)
	if len(matches) == 0 {
		return nil
	}
	out := make([][][]byte, len(matches))
	for i, m := range matches {
		out[i] = groupBytes(m)
	}
	return out
}

// FindAllStringSubmatch is FindAllSubmatch for strings.
func (re *Regexp) FindAllStringSubmatch(s string, n int) [][]string {
	matches := re.engine.FindAllSubmatch([]byte(s), n)
	if len(matches) == 0 {
		return nil
	}
	out := make([][]string, len(matches))
	for i, m := range matches {
		out[i] = groupStrings(m)
	}
	return out
}

// FindAllSubmatchIndex is FindAllSubmatch returning flattened capture
// group spans per match.
func (re *Regexp) FindAllSubmatchIndex(b []byte, n int) [][]int {
	matches := re.engine.FindAllSubmatch(b, n)
	if len(matches) == 0 {
		return nil
	}
	out := make([][]int, len(matches))
	for i, m := range matches {
		out[i] = m.FlatIndices()
	}
	return out
}

// FindAllStringSubmatchIndex is FindAllSubmatchIndex for strings.
func (re *Regexp) FindAllStringSubmatchIndex(s string, n int) [][]int {
	return re.FindAllSubmatchIndex([]byte(s), n)
}
