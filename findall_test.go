package re2vm

import (
	"reflect"
	"testing"
)

func TestFindAllString(t *testing.T) {
	re := MustCompile(`\d+`)
	got := re.FindAllString("a1 b22 c333", -1)
	want := []string{"1", "22", "333"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FindAllString = %v, want %v", got, want)
	}
}

func TestFindAllString_Limit(t *testing.T) {
	re := MustCompile(`\d+`)
	got := re.FindAllString("a1 b22 c333", 2)
	want := []string{"1", "22"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FindAllString(n=2) = %v, want %v", got, want)
	}
}

func TestFindAllString_ZeroLimit(t *testing.T) {
	re := MustCompile(`\d+`)
	if got := re.FindAllString("a1 b22 c333", 0); got != nil {
		t.Fatalf("FindAllString(n=0) = %v, want nil", got)
	}
}

func TestFindAllString_NoMatch(t *testing.T) {
	re := MustCompile(`\d+`)
	if got := re.FindAllString("no digits here", -1); got != nil {
		t.Fatalf("FindAllString with no matches = %v, want nil", got)
	}
}

func TestFindAllStringIndex_NoEmptyTrailingMatch(t *testing.T) {
	re := MustCompile(`a*`)
	got := re.FindAllStringIndex("aaa", -1)
	want := [][]int{{0, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FindAllStringIndex = %v, want %v (no trailing empty match after a non-empty one)", got, want)
	}
}

func TestFindAllStringIndex_AllEmptyMatches(t *testing.T) {
	re := MustCompile(`a*`)
	got := re.FindAllStringIndex("bbb", -1)
	want := [][]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FindAllStringIndex = %v, want %v", got, want)
	}
}

func TestFindAllStringSubmatch(t *testing.T) {
	re := MustCompile(`(\w)=(\d+)`)
	got := re.FindAllStringSubmatch("a=1 b=22", -1)
	want := [][]string{{"a=1", "a", "1"}, {"b=22", "b", "22"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FindAllStringSubmatch = %v, want %v", got, want)
	}
}

func TestFindAllStringSubmatchIndex(t *testing.T) {
	re := MustCompile(`(\w)=(\d+)`)
	got := re.FindAllStringSubmatchIndex("a=1 b=22", -1)
	if len(got) != 2 {
		t.Fatalf("FindAllStringSubmatchIndex returned %d matches, want 2", len(got))
	}
	if got[0][0] != 0 || got[0][1] != 3 {
		t.Fatalf("first match span = %v, want [0 3]", got[0])
	}
}
