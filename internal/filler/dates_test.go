package filler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseDateKey 验证日期解析识别的几种形式
func TestParseDateKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  DateKey
	}{
		{"月份加年份", "March 2021", DateKey{Known: true, Year: 2021, Month: 3}},
		{"缩写月份", "Sep 2023", DateKey{Known: true, Year: 2023, Month: 9}},
		{"大小写混合", "dEcEmBeR 2020", DateKey{Known: true, Year: 2020, Month: 12}},
		{"纯年份", "2019", DateKey{Known: true, Year: 2019, Month: 1}},
		{"current哨兵", "current", DateKey{Current: true}},
		{"大写哨兵", "CURRENT", DateKey{Current: true}},
		{"带空白", "  June 2022  ", DateKey{Known: true, Year: 2022, Month: 6}},
		{"空字符串", "", DateKey{}},
		{"无法识别的月份", "Juny 2022", DateKey{}},
		{"非四位年份", "Jan 21", DateKey{}},
		{"多余字段", "1 June 2022", DateKey{}},
		{"纯文本", "ongoing", DateKey{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDateKey(tt.input))
		})
	}
}

// TestDateKeyLess 验证排序键的全序关系
func TestDateKeyLess(t *testing.T) {
	current := DateKey{Current: true}
	newer := DateKey{Known: true, Year: 2023, Month: 5}
	older := DateKey{Known: true, Year: 2021, Month: 8}
	sameYearEarlier := DateKey{Known: true, Year: 2023, Month: 2}
	unknown := DateKey{}

	// current 永远最前
	assert.True(t, current.Less(newer))
	assert.False(t, newer.Less(current))

	// 已知日期按时间倒序
	assert.True(t, newer.Less(older))
	assert.False(t, older.Less(newer))
	assert.True(t, newer.Less(sameYearEarlier))

	// 未知日期永远最后
	assert.True(t, older.Less(unknown))
	assert.False(t, unknown.Less(older))

	// 相等的未知键互不在前，保证稳定排序不交换
	assert.False(t, unknown.Less(unknown))
}

// TestProjectDateKeyCurrentFromEitherEnd 验证开始或结束日期任一为current都视为进行中
func TestProjectDateKeyCurrentFromEitherEnd(t *testing.T) {
	assert.True(t, projectDateKey("January 2023", "current").Current)
	assert.True(t, projectDateKey("current", "").Current)
	assert.True(t, projectDateKey("", " Current ").Current)

	key := projectDateKey("January 2023", "March 2023")
	assert.False(t, key.Current)
	assert.True(t, key.Known)
	assert.Equal(t, 2023, key.Year)
	assert.Equal(t, 1, key.Month)
}
