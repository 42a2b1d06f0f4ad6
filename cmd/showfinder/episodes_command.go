package main

import (
	"strconv"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/models"
)

func newEpisodesCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "episodes <show-id>",
		Short: "List the episodes of a show",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			showID, err := strconv.Atoi(args[0])
			if err != nil || showID <= 0 {
				return &apperrors.ErrInvalidShowID{Value: args[0]}
			}

			c := ctx.newClient()
			defer c.Close()

			episodes, err := c.GetEpisodes(cmd.Context(), showID)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, episodes)
			}
			if len(episodes) == 0 {
				writeLine(cmd, "No episodes found.")
				return nil
			}
			writeLine(cmd, renderEpisodesTable(episodes))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print episodes as JSON")
	return cmd
}

func renderEpisodesTable(episodes []models.EpisodeSummary) string {
	rows := lo.Map(episodes, func(e models.EpisodeSummary, _ int) []string {
		return []string{
			strconv.Itoa(e.Season),
			strconv.Itoa(e.Number),
			e.Name,
			strconv.Itoa(e.ID),
		}
	})
	return renderTable(
		[]string{"Season", "Episode", "Name", "ID"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignLeft, alignRight},
	)
}
