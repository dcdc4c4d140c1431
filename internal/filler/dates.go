package filler

import (
	"strconv"
	"strings"
)

// DateKey 项目排序键的带标记解析结果
// Current 的条目排在最前；Known 的按 (Year, Month) 倒序；两者都不是则排在最后
type DateKey struct {
	Current bool
	Known   bool
	Year    int
	Month   int
}

// currentSentinel 日期字段中表示"进行中"的哨兵值，不区分大小写
const currentSentinel = "current"

var monthsByName = map[string]int{
	"january": 1, "jan": 1,
	"february": 2, "feb": 2,
	"march": 3, "mar": 3,
	"april": 4, "apr": 4,
	"may":  5,
	"june": 6, "jun": 6,
	"july": 7, "jul": 7,
	"august": 8, "aug": 8,
	"september": 9, "sep": 9, "sept": 9,
	"october": 10, "oct": 10,
	"november": 11, "nov": 11,
	"december": 12, "dec": 12,
}

// ParseDateKey 尽力解析日期字符串，识别 "Month YYYY" 和纯 "YYYY" 两种形式
// 解析失败不是错误：返回零值 DateKey，排序时落到最后
func ParseDateKey(s string) DateKey {
	s = strings.TrimSpace(s)
	if s == "" {
		return DateKey{}
	}
	if strings.EqualFold(s, currentSentinel) {
		return DateKey{Current: true}
	}

	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		if year, ok := parseYear(fields[0]); ok {
			// 纯年份按当年1月参与比较
			return DateKey{Known: true, Year: year, Month: 1}
		}
	case 2:
		month, okMonth := monthsByName[strings.ToLower(fields[0])]
		year, okYear := parseYear(fields[1])
		if okMonth && okYear {
			return DateKey{Known: true, Year: year, Month: month}
		}
	}
	return DateKey{}
}

func parseYear(s string) (int, bool) {
	if len(s) != 4 {
		return 0, false
	}
	year, err := strconv.Atoi(s)
	if err != nil || year <= 0 {
		return 0, false
	}
	return year, true
}

// ProjectDateKey 计算单个项目的排序键
// 开始或结束日期任意一个为 "current" 都视为进行中
func projectDateKey(startDate, endDate string) DateKey {
	if strings.EqualFold(strings.TrimSpace(startDate), currentSentinel) ||
		strings.EqualFold(strings.TrimSpace(endDate), currentSentinel) {
		return DateKey{Current: true}
	}
	return ParseDateKey(startDate)
}

// Less 判断 a 是否应排在 b 之前（时间越近越靠前）
// 返回 false 表示不交换，保持稳定排序下的原始相对顺序
func (a DateKey) Less(b DateKey) bool {
	if a.Current != b.Current {
		return a.Current
	}
	if a.Known != b.Known {
		return a.Known
	}
	if !a.Known {
		return false
	}
	if a.Year != b.Year {
		return a.Year > b.Year
	}
	return a.Month > b.Month
}
