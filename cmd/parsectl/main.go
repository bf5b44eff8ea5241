package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/exporter"
	"resume-parser-go/internal/logger"
	"resume-parser-go/internal/processor"
	"resume-parser-go/pkg/utils"
)

// parsectl 离线解析工具：读取本地简历文件，输出解析结果
// 不依赖MySQL/MinIO/Redis/RabbitMQ，适合本地调试和批处理
func main() {
	var (
		configPath   string
		format       string
		outputPath   string
		compact      bool
		sampleConfig string
	)
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径")
	pflag.StringVarP(&format, "format", "f", "json", "输出格式: json, csv, xlsx")
	pflag.StringVarP(&outputPath, "output", "o", "", "输出文件路径，留空输出到stdout (xlsx必须指定)")
	pflag.BoolVar(&compact, "compact", false, "JSON输出不缩进")
	pflag.StringVar(&sampleConfig, "sample-config", "", "生成示例配置文件到指定路径并退出")
	pflag.Parse()

	if sampleConfig != "" {
		if err := config.CreateSampleConfig(sampleConfig); err != nil {
			fatalf("生成示例配置失败: %v", err)
		}
		fmt.Printf("示例配置已写入: %s\n", sampleConfig)
		return
	}

	args := pflag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "用法: parsectl [flags] <简历文件.pdf|.docx>")
		pflag.PrintDefaults()
		os.Exit(2)
	}
	resumePath := args[0]

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fatalf("加载配置失败: %v", err)
	}

	// CLI场景只向stderr输出告警以上级别，避免污染stdout的导出内容
	level := cfg.Logger.Level
	if outputPath == "" {
		level = "warn"
	}
	logger.Init(logger.Config{
		Level:  level,
		Format: "pretty",
	})

	content, err := os.ReadFile(resumePath)
	if err != nil {
		fatalf("读取文件失败: %v", err)
	}

	pipeline := processor.NewResumePipeline(
		processor.DefaultComponents(cfg),
		processor.DefaultSettings(cfg),
	)

	parsed, err := pipeline.Parse(context.Background(), content, filepath.Base(resumePath))
	if err != nil {
		fatalf("解析失败: %v", err)
	}

	exp := exporter.NewResumeExporter()
	var output []byte
	switch format {
	case "json":
		out, err := exp.ToJSON(parsed, !compact)
		if err != nil {
			fatalf("导出JSON失败: %v", err)
		}
		output = []byte(out)
	case "csv":
		out, err := exp.ToCSV(parsed)
		if err != nil {
			fatalf("导出CSV失败: %v", err)
		}
		output = []byte(out)
	case "xlsx":
		if outputPath == "" {
			fatalf("xlsx格式必须通过 -o 指定输出文件")
		}
		out, err := exp.ToExcel(parsed)
		if err != nil {
			fatalf("导出Excel失败: %v", err)
		}
		output = out
	default:
		fatalf("不支持的输出格式: %s", format)
	}

	if outputPath == "" {
		os.Stdout.Write(output)
		return
	}
	if err := os.WriteFile(outputPath, output, 0644); err != nil {
		fatalf("写入输出文件失败: %v", err)
	}
	fmt.Fprintf(os.Stderr, "已解析 %s (%s)，评分 %d，结果写入 %s\n",
		filepath.Base(resumePath), utils.HumanFileSize(int64(len(content))), parsed.OverallScore, outputPath)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
