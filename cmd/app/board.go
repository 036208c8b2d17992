package main

import (
	"fmt"
	"strconv"
	"strings"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/order"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func newBoardCommand(ctx *commandContext) *cobra.Command {
	var stageFlag string

	c := &cobra.Command{
		Use:   "board",
		Short: "Print the stage board",
		RunE: func(c *cobra.Command, args []string) error {
			var only order.Stage
			if stageFlag != "" {
				s, err := order.ParseStage(stageFlag)
				if err != nil {
					return err
				}
				only = s
			}

			root, err := ctx.compositionRoot(c.Context())
			if err != nil {
				return err
			}
			handler := root.CreateGetStageBoardQueryHandler()
			board, err := handler.Handle(c.Context(), queries.NewGetStageBoardQuery())
			if err != nil {
				return err
			}

			if only != order.Unknown {
				fmt.Fprintln(c.OutOrStdout(), renderStage(board, only))
				return nil
			}
			fmt.Fprintln(c.OutOrStdout(), renderBoard(board))
			return nil
		},
	}
	c.Flags().StringVar(&stageFlag, "stage", "", "List the groups of one stage (new, insumos_pending, in_production, shipping, dispatched)")
	return c
}

func renderBoard(board queries.GetStageBoardQueryResponse) string {
	tw := newTable("Stage", "Groups", "Items")
	for _, col := range board.Columns {
		tw.AppendRow(table.Row{col.Stage.String(), len(col.Groups), col.Count})
	}
	tw.AppendFooter(table.Row{"total", "", board.Total})
	return tw.Render()
}

func renderStage(board queries.GetStageBoardQueryResponse, stage order.Stage) string {
	tw := newTable("Group", "Date", "Items", "Attributes")
	for _, col := range board.Columns {
		if col.Stage != stage {
			continue
		}
		for _, g := range col.Groups {
			attrs := make([]string, 0, len(g.Items))
			for _, item := range g.Items {
				attrs = append(attrs, describeItem(item))
			}
			tw.AppendRow(table.Row{g.Key, g.Date.Format("2006-01-02"), strconv.Itoa(len(g.Items)), strings.Join(attrs, "; ")})
		}
	}
	return tw.Render()
}

func describeItem(item queries.ItemView) string {
	parts := []string{item.ID.String()}
	for _, v := range []string{item.Color, item.Size, item.Mirror} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

func newTable(headers ...string) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	configs := make([]table.ColumnConfig, len(headers))
	for i, h := range headers {
		header[i] = h
		configs[i] = table.ColumnConfig{Number: i + 1, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)
	return tw
}
