package main

import (
	"encoding/json"
	"os"

	"cv-filler-go/internal/config"
	"cv-filler-go/internal/docxio"
	"cv-filler-go/internal/filler"
	applogger "cv-filler-go/internal/logger"
	"cv-filler-go/internal/types"

	"github.com/spf13/pflag"
)

// fillcv 是离线填充工具：读取本地模板和候选人JSON，输出填充后的DOCX。
// 不依赖任何存储组件，适合本地调试模板版式。
func main() {
	var (
		templatePath string
		dataPath     string
		outputPath   string
		configPath   string
		logLevel     string
	)
	pflag.StringVarP(&templatePath, "template", "t", "", "模板DOCX文件路径")
	pflag.StringVarP(&dataPath, "data", "d", "", "候选人数据JSON文件路径")
	pflag.StringVarP(&outputPath, "output", "o", "filled_cv.docx", "输出文件路径")
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径（可选，用于自定义版式坐标）")
	pflag.StringVarP(&logLevel, "log-level", "l", "info", "日志级别")
	pflag.Parse()

	applogger.Init(applogger.Config{Level: logLevel, Format: "pretty", TimeFormat: "15:04:05"})

	if templatePath == "" || dataPath == "" {
		applogger.Fatal().Msg("必须指定 --template 和 --data 参数")
	}

	layout := filler.DefaultLayout()
	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			applogger.Fatal().Err(err).Msg("加载配置失败")
		}
		layout = filler.Layout{
			MinRows:    cfg.Template.MinRows,
			MinCols:    cfg.Template.MinCols,
			Header:     toCellAddrs(cfg.Template.Header),
			Summary:    toCellAddrs(cfg.Template.Summary),
			Education:  toCellAddrs(cfg.Template.Education),
			Experience: toCellAddrs(cfg.Template.Experience),
			Skills:     toCellAddrs(cfg.Template.Skills),
		}
	}

	templateData, err := os.ReadFile(templatePath)
	if err != nil {
		applogger.Fatal().Err(err).Str("path", templatePath).Msg("读取模板文件失败")
	}

	jsonData, err := os.ReadFile(dataPath)
	if err != nil {
		applogger.Fatal().Err(err).Str("path", dataPath).Msg("读取数据文件失败")
	}

	var candidate types.CandidateRecord
	if err := json.Unmarshal(jsonData, &candidate); err != nil {
		applogger.Fatal().Err(err).Msg("解析候选人JSON失败")
	}

	tmpl, err := docxio.OpenTemplate(templateData)
	if err != nil {
		applogger.Fatal().Err(err).Msg("解析模板失败")
	}

	engine := filler.NewCVFiller(nil, layout)
	if err := engine.Fill(&candidate, tmpl); err != nil {
		applogger.Fatal().Err(err).Msg("填充失败")
	}

	out, err := os.Create(outputPath)
	if err != nil {
		applogger.Fatal().Err(err).Str("path", outputPath).Msg("创建输出文件失败")
	}
	defer out.Close()

	if _, err := tmpl.WriteTo(out); err != nil {
		applogger.Fatal().Err(err).Msg("写入输出文件失败")
	}

	applogger.Info().Str("output", outputPath).Msg("填充完成")
}

func toCellAddrs(cells []config.CellAddr) []filler.CellAddr {
	out := make([]filler.CellAddr, 0, len(cells))
	for _, c := range cells {
		out = append(out, filler.CellAddr{Row: c.Row, Col: c.Col})
	}
	return out
}
