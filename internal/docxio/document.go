// Package docxio 封装底层DOCX文档库，向引擎暴露最小的模板读写原语：
// 打开模板、定位表格单元格、清空内容、写入带样式的段落、序列化。
// 引擎不直接接触OOXML格式。
package docxio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fumiama/go-docx"
)

// Style 单个文本片段的样式属性
// Size 为半磅字号字符串（OOXML w:sz 约定，如 "32" 表示 16pt）
type Style struct {
	Bold   bool
	Italic bool
	Size   string
	Color  string // 十六进制RGB，如 "C00000"，为空则使用默认颜色
}

// 引擎使用的字号常量（半磅）
const (
	SizeName  = "32" // 16pt 姓名
	SizeTitle = "22" // 11pt 职位
	SizeLabel = "20" // 10pt 区域标签
	SizeBody  = "18" // 9pt 正文
	SizeMeta  = "16" // 8pt 元信息行
)

// Template 已打开的模板文档句柄
// 一次填充操作期间由调用方独占持有，填充完成后序列化或丢弃
type Template struct {
	doc   *docx.Docx
	table *docx.Table
}

// OpenTemplate 从字节流打开模板并定位其中唯一的表格
// 模板不含表格时返回错误（快速失败，不做修复）
func OpenTemplate(data []byte) (*Template, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("解析DOCX模板失败: %w", err)
	}

	var table *docx.Table
	for _, item := range doc.Document.Body.Items {
		if t, ok := item.(*docx.Table); ok {
			table = t
			break
		}
	}
	if table == nil {
		return nil, fmt.Errorf("模板文档不包含任何表格")
	}

	return &Template{doc: doc, table: table}, nil
}

// Rows 返回表格行数
func (t *Template) Rows() int {
	return len(t.table.TableRows)
}

// Cols 返回指定行的单元格数，行越界时返回0
func (t *Template) Cols(row int) int {
	if row < 0 || row >= len(t.table.TableRows) {
		return 0
	}
	return len(t.table.TableRows[row].TableCells)
}

func (t *Template) cell(row, col int) (*docx.WTableCell, error) {
	if row < 0 || row >= len(t.table.TableRows) {
		return nil, fmt.Errorf("行坐标越界: %d (共%d行)", row, len(t.table.TableRows))
	}
	cells := t.table.TableRows[row].TableCells
	if col < 0 || col >= len(cells) {
		return nil, fmt.Errorf("列坐标越界: (%d,%d) (该行共%d列)", row, col, len(cells))
	}
	return cells[col], nil
}

// ClearCell 清空单元格的既有内容
func (t *Template) ClearCell(row, col int) error {
	cell, err := t.cell(row, col)
	if err != nil {
		return err
	}
	cell.Paragraphs = nil
	return nil
}

// AddStyledParagraph 向单元格追加一个包含单个带样式文本片段的段落
// text 为空时追加空段落（用于视觉分隔）
func (t *Template) AddStyledParagraph(row, col int, text string, style Style) error {
	cell, err := t.cell(row, col)
	if err != nil {
		return err
	}

	para := cell.AddParagraph()
	if text == "" {
		return nil
	}

	run := para.AddText(text)
	if style.Size != "" {
		run = run.Size(style.Size)
	}
	if style.Color != "" {
		run = run.Color(style.Color)
	}
	if style.Bold {
		run = run.Bold()
	}
	if style.Italic {
		run.Italic()
	}
	return nil
}

// WriteTo 将填充后的文档序列化到写入器
func (t *Template) WriteTo(w io.Writer) (int64, error) {
	return t.doc.WriteTo(w)
}

// Bytes 将填充后的文档序列化为字节
func (t *Template) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := t.doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("序列化DOCX文档失败: %w", err)
	}
	return buf.Bytes(), nil
}
