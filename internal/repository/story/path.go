package story

import (
	"sort"
	"strconv"
	"strings"

	"taleweaver/internal/model/story"
)

const pathSeparator = "-"

// BuildPath 计算章节路径：根章节为自身ID，其余为 父路径-自身ID
func BuildPath(parent *story.Chapter, id int64) string {
	self := strconv.FormatInt(id, 10)
	if parent == nil || parent.Path == "" {
		return self
	}
	return parent.Path + pathSeparator + self
}

// ComparePaths 按数字逐段比较两个路径，"1-2" 排在 "1-10" 之前，祖先排在后代之前
func ComparePaths(a, b string) int {
	as := strings.Split(a, pathSeparator)
	bs := strings.Split(b, pathSeparator)
	for i := 0; i < len(as) && i < len(bs); i++ {
		x, errX := strconv.ParseInt(as[i], 10, 64)
		y, errY := strconv.ParseInt(bs[i], 10, 64)
		if errX != nil || errY != nil {
			// 非数字段退化为字符串比较
			if c := strings.Compare(as[i], bs[i]); c != 0 {
				return c
			}
			continue
		}
		if x < y {
			return -1
		}
		if x > y {
			return 1
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}

// SortChaptersByPath 按路径数字顺序原地排序
func SortChaptersByPath(chapters []*story.Chapter) {
	sort.SliceStable(chapters, func(i, j int) bool {
		return ComparePaths(chapters[i].Path, chapters[j].Path) < 0
	})
}

// walkPath 从章节沿父链回溯到根，返回根在前的路径
// 遇到缺失的祖先或环时停止
func walkPath(start *story.Chapter, parentOf func(id int64) (*story.Chapter, bool)) []*story.Chapter {
	var reversed []*story.Chapter
	visited := make(map[int64]struct{})
	cur := start
	for cur != nil {
		if _, seen := visited[cur.ID]; seen {
			break
		}
		visited[cur.ID] = struct{}{}
		reversed = append(reversed, cur)
		if cur.ParentID == nil {
			break
		}
		next, ok := parentOf(*cur.ParentID)
		if !ok {
			break
		}
		cur = next
	}

	out := make([]*story.Chapter, len(reversed))
	for i, c := range reversed {
		out[len(reversed)-1-i] = c
	}
	return out
}
