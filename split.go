package re2vm

// Split slices s into substrings separated by matches of re, returning
// the substrings between (and around) those matches. n > 0 limits the
// result to at most n substrings, with the last one left unsplit; n == 0
// returns nil; n < 0 (or omitted) returns all substrings. Grounded on
// stdlib regexp.Regexp.Split's algorithm — re2vm supplements the teacher,
// which never implemented Split.
func (re *Regexp) Split(s string, n int) []string {
	if n == 0 {
		return nil
	}

	matches := re.FindAllStringIndex(s, n)
	strs := make([]string, 0, len(matches))

	beg, end := 0, 0
	for _, m := range matches {
		if n > 0 && len(strs) >= n-1 {
			break
		}
		end = m[0]
		if m[1] != 0 {
			strs = append(strs, s[beg:end])
		}
		beg = m[1]
	}
	if end != len(s) {
		strs = append(strs, s[beg:])
	}
	return strs
}
