package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"recipe-viewer/internal/core/recipe"
	"recipe-viewer/internal/core/source"
	"recipe-viewer/internal/infrastructure/config"
	"recipe-viewer/internal/pkg/common"
	"recipe-viewer/internal/pkg/output"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const name = "recipectl"

// overridden during build with ldflags
var version = "dev"

// NewCommand 建立 recipectl 根命令；結果寫到 out，日誌寫到 stderr
func NewCommand(out io.Writer) *cli.Command {
	if out == nil {
		out = os.Stdout
	}

	return &cli.Command{
		Name:                  name,
		Usage:                 "Browse recipes and normalise ingredient quantities",
		Version:               version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"o"},
				Value:   string(output.FormatTable),
				Usage:   fmt.Sprintf("output format (%v)", output.SupportedFormats()),
			},
			&cli.StringFlag{
				Name:    "source-url",
				Value:   config.DefaultSourceURL,
				Usage:   "base URL of the recipe JSON source",
				Sources: cli.EnvVars("RECIPE_SOURCE_URL"),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 10 * time.Second,
				Usage: "timeout for each upstream request",
			},
			&cli.IntFlag{
				Name:  "workers",
				Value: 4,
				Usage: "concurrent detail requests for list --expand",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			common.InitConsoleLogger(cmd.String("log-level"), os.Stderr)
			return ctx, nil
		},
		After: func(ctx context.Context, cmd *cli.Command) error {
			common.Sync()
			return nil
		},
		Commands: []*cli.Command{
			listCmd(out),
			showCmd(out),
			parseCmd(out),
			formatCmd(out),
		},
	}
}

// writerFromCmd 依 --format 建立輸出
func writerFromCmd(cmd *cli.Command, out io.Writer) (*output.Writer, error) {
	f, err := output.ParseFormat(cmd.String("format"))
	if err != nil {
		return nil, err
	}
	return output.NewWriter(f, out), nil
}

// serviceFromCmd 依全域旗標建立食譜服務；CLI 不使用快取
func serviceFromCmd(cmd *cli.Command) *recipe.Service {
	cfg := &config.SourceConfig{
		BaseURL:    cmd.String("source-url"),
		Timeout:    cmd.Duration("timeout"),
		RetryCount: 1,
		Workers:    int(cmd.Int("workers")),
	}

	common.LogDebug("Using recipe source",
		zap.String("base_url", cfg.BaseURL),
		zap.Duration("timeout", cfg.Timeout),
	)

	return recipe.NewService(source.NewClient(cfg, nil), cfg.Workers)
}
