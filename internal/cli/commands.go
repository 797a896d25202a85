package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"recipe-viewer/internal/core/quantity"

	"github.com/urfave/cli/v3"
)

func listCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List recipes with their dominant ingredient",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "expand",
				Usage: "load every recipe detail before choosing the dominant ingredient",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w, err := writerFromCmd(cmd, out)
			if err != nil {
				return err
			}

			svc := serviceFromCmd(cmd)
			list := svc.List
			if cmd.Bool("expand") {
				list = svc.Overview
			}

			summaries, err := list(ctx)
			if err != nil {
				return err
			}
			return w.Write(summaryTable(summaries))
		},
	}
}

func showCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a recipe and its formatted ingredients",
		ArgsUsage: "<id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return errors.New("recipe id is required")
			}

			w, err := writerFromCmd(cmd, out)
			if err != nil {
				return err
			}

			detail, err := serviceFromCmd(cmd).Detail(ctx, id)
			if err != nil {
				return err
			}
			return w.Write((*detailTable)(detail))
		},
	}
}

func parseCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse quantity texts into numbers",
		ArgsUsage: "<text>...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) == 0 {
				return errors.New("at least one quantity text is required")
			}

			w, err := writerFromCmd(cmd, out)
			if err != nil {
				return err
			}

			results := make(parseTable, len(args))
			for i, raw := range args {
				results[i] = parseResult{Raw: raw, Value: quantity.Parse(raw)}
			}
			return w.Write(results)
		},
	}
}

func formatCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "format",
		Usage: "Format a quantity and unit for display",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "quantity",
				Aliases: []string{"q"},
				Usage:   "quantity text, e.g. 1,5",
			},
			&cli.StringFlag{
				Name:    "unit",
				Aliases: []string{"u"},
				Usage:   "unit text, e.g. tazas",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			q, u := cmd.String("quantity"), cmd.String("unit")
			if q == "" && u == "" {
				return fmt.Errorf("--quantity or --unit is required")
			}

			w, err := writerFromCmd(cmd, out)
			if err != nil {
				return err
			}

			return w.Write(formatTable{{
				Quantity: q,
				Unit:     u,
				Display:  quantity.FormatSpaced(q, u),
				Compact:  quantity.FormatUnspaced(q, u),
				Value:    quantity.Parse(q),
			}})
		},
	}
}
