package cli

import (
	"fmt"

	"github.com/SanteonNL/welfare/models/welfare"
	"github.com/spf13/cobra"
)

func newCodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "Prints the filter code tables.",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, codes := range []welfare.CodeTable{welfare.LifeStages, welfare.TargetGroups, welfare.InterestThemes} {
				renderCodeTable(out, codes)
			}
			fmt.Fprintf(out, "페이지당 건수: %v (기본 %d)\n", welfare.PageSizes, welfare.DefaultPageSize)
		},
	}
}
