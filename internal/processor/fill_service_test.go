package processor

import (
	"bytes"
	"context"
	"testing"

	"cv-filler-go/internal/config"
	"cv-filler-go/internal/constants"
	"cv-filler-go/internal/filler"
	"cv-filler-go/internal/types"

	"github.com/fumiama/go-docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTemplateBytes 构造一个3x3表格的测试模板
func buildTemplateBytes(t *testing.T) []byte {
	t.Helper()

	w := docx.New().WithDefaultTheme()
	tbl := w.AddTable(3, 3, 0, nil)
	for _, row := range tbl.TableRows {
		for _, cell := range row.TableCells {
			cell.AddParagraph().AddText("placeholder")
		}
	}

	var buf bytes.Buffer
	_, err := w.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func sampleCandidate() *types.CandidateRecord {
	return &types.CandidateRecord{
		PersonalInfo: types.PersonalInfo{
			Name:       "Jane Doe",
			Additional: map[string]string{"position": "Integration Developer"},
		},
		OtherInfo:         "Experienced developer.",
		ProgrammingSkills: []string{"Python"},
		Projects: []types.Project{
			{Name: "Billing", Description: "Billing platform.",
				StartDate: "January 2023", EndDate: "current",
				Additional: map[string]string{"industry": "Finance"}},
		},
	}
}

// TestFillSyncWithoutStorage 验证没有任何存储组件时同步填充仍然可用
func TestFillSyncWithoutStorage(t *testing.T) {
	service, err := NewCVFillService(config.DefaultConfig(), nil)
	require.NoError(t, err)

	output, submissionUUID, err := service.FillSync(
		context.Background(), buildTemplateBytes(t), sampleCandidate(), constants.SourceCLI)
	require.NoError(t, err)
	assert.NotEmpty(t, output)
	assert.NotEmpty(t, submissionUUID)
}

// TestFillSyncValidationError 验证非法数据返回校验类错误
func TestFillSyncValidationError(t *testing.T) {
	service, err := NewCVFillService(config.DefaultConfig(), nil)
	require.NoError(t, err)

	_, _, err = service.FillSync(
		context.Background(), buildTemplateBytes(t), &types.CandidateRecord{}, constants.SourceCLI)
	require.Error(t, err)
	assert.ErrorIs(t, err, filler.ErrValidation)
}

// TestFillSyncBadTemplate 验证无法解析的模板返回错误
func TestFillSyncBadTemplate(t *testing.T) {
	service, err := NewCVFillService(config.DefaultConfig(), nil)
	require.NoError(t, err)

	_, _, err = service.FillSync(
		context.Background(), []byte("not a docx"), sampleCandidate(), constants.SourceCLI)
	require.Error(t, err)
}

// TestSubmitAsyncRequiresStorage 验证存储组件缺失时异步提交被拒绝
func TestSubmitAsyncRequiresStorage(t *testing.T) {
	service, err := NewCVFillService(config.DefaultConfig(), nil)
	require.NoError(t, err)

	_, err = service.SubmitAsync(
		context.Background(), buildTemplateBytes(t), sampleCandidate(), constants.SourceAPIUpload)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageNotInit)
}

// TestLayoutFromConfig 验证配置坐标到引擎版式的转换
func TestLayoutFromConfig(t *testing.T) {
	tc := &config.TemplateConfig{
		MinRows: 4,
		MinCols: 5,
		Header:  []config.CellAddr{{Row: 0, Col: 2}},
		Summary: []config.CellAddr{{Row: 1, Col: 0}, {Row: 1, Col: 1}},
	}

	layout := layoutFromConfig(tc)
	assert.Equal(t, 4, layout.MinRows)
	assert.Equal(t, 5, layout.MinCols)
	assert.Equal(t, []filler.CellAddr{{Row: 0, Col: 2}}, layout.Header)
	assert.Equal(t, []filler.CellAddr{{Row: 1, Col: 0}, {Row: 1, Col: 1}}, layout.Summary)
	assert.Empty(t, layout.Skills)
}

// TestCalculateMD5 验证MD5计算结果为32位十六进制
func TestCalculateMD5(t *testing.T) {
	sum := calculateMD5([]byte("hello"))
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", sum)
}
