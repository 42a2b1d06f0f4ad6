package main

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/models"
	"github.com/Belphemur/ShowFinder/internal/render"
)

// summaryWidth caps the summary column of the search table.
const summaryWidth = 60

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search shows by title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return apperrors.ErrEmptyQuery
			}

			c := ctx.newClient()
			defer c.Close()

			shows, err := c.SearchShows(cmd.Context(), query)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, shows)
			}
			if len(shows) == 0 {
				writeLine(cmd, "No shows found.")
				return nil
			}
			writeLine(cmd, renderShowsTable(shows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}

func renderShowsTable(shows []models.ShowSummary) string {
	rows := lo.Map(shows, func(s models.ShowSummary, _ int) []string {
		return []string{
			strconv.Itoa(s.ID),
			s.Name,
			text.Trim(render.SummaryText(s.Summary), summaryWidth),
			s.Image,
		}
	})
	return renderTable(
		[]string{"ID", "Name", "Summary", "Image"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
	)
}
