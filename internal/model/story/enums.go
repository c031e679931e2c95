package story

// ChapterLength 章节字数区间
type ChapterLength string

const (
	ChapterLengthShort  ChapterLength = "100-200"
	ChapterLengthMedium ChapterLength = "200-300"
	ChapterLengthLong   ChapterLength = "300-400"
)

const (
	// DefaultChapterLength 默认章节字数区间
	DefaultChapterLength = ChapterLengthShort
	// DefaultTemperature 默认创造度（1-9）
	DefaultTemperature = 5
	// MinTemperature 创造度下限
	MinTemperature = 1
	// MaxTemperature 创造度上限
	MaxTemperature = 9
)

// Valid 是否为三个合法区间之一
func (l ChapterLength) Valid() bool {
	switch l {
	case ChapterLengthShort, ChapterLengthMedium, ChapterLengthLong:
		return true
	}
	return false
}

// String 返回区间的字符串表示
func (l ChapterLength) String() string {
	return string(l)
}

// ValidTemperature 创造度是否落在 [1,9]
func ValidTemperature(t int) bool {
	return t >= MinTemperature && t <= MaxTemperature
}
