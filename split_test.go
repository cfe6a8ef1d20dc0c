package re2vm

import (
	"reflect"
	"testing"
)

func TestSplit_Table(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		n       int
		want    []string
	}{
		{`,`, "a,b,c", -1, []string{"a", "b", "c"}},
		{`,`, "a,b,c", 2, []string{"a", "b,c"}},
		{`,`, "a,b,c", 0, nil},
		{`,`, "abc", -1, []string{"abc"}},
		{`\s+`, "a  b   c", -1, []string{"a", "b", "c"}},
		{`\s+`, "  a  b  ", -1, []string{"", "a", "b", ""}},
		{`,`, "a,b,c,d,e", 3, []string{"a", "b", "c,d,e"}},
		{`a`, "aaa", -1, []string{"", "", "", ""}},
	}

	for _, tt := range tests {
		re := MustCompile(tt.pattern)
		got := re.Split(tt.input, tt.n)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Split(%q, %q, %d) = %#v, want %#v", tt.pattern, tt.input, tt.n, got, tt.want)
		}
	}
}
