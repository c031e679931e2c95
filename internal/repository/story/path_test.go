package story

import (
	"testing"

	"taleweaver/internal/model/story"
)

func TestComparePaths(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1", "1", 0},
		{"1", "1-2", -1},
		{"1-2", "1-10", -1},
		{"1-10", "1-2", 1},
		{"2", "10", -1},
		{"1-2-3", "1-3", -1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			if got := ComparePaths(tt.a, tt.b); got != tt.want {
				t.Errorf("ComparePaths(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestBuildPath(t *testing.T) {
	if got := BuildPath(nil, 5); got != "5" {
		t.Errorf("root path = %q, want 5", got)
	}
	parent := &story.Chapter{ID: 12, Path: "5-12"}
	if got := BuildPath(parent, 13); got != "5-12-13" {
		t.Errorf("child path = %q, want 5-12-13", got)
	}
}

func TestWalkPathStopsOnCycle(t *testing.T) {
	a, b := int64(1), int64(2)
	chapters := map[int64]*story.Chapter{
		1: {ID: 1, ParentID: &b},
		2: {ID: 2, ParentID: &a},
	}
	path := walkPath(chapters[1], func(id int64) (*story.Chapter, bool) {
		c, ok := chapters[id]
		return c, ok
	})
	if len(path) != 2 {
		t.Fatalf("len(path) = %d, want 2", len(path))
	}
	if path[1].ID != 1 {
		t.Errorf("last element = %d, want the starting chapter", path[1].ID)
	}
}
