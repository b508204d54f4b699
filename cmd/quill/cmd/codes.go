package cmd

import (
	"fmt"

	qerrors "github.com/kestrel-lang/quill/internal/errors"
	"github.com/spf13/cobra"
)

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "List the stable error code table",
	Long:  `Print every error code Quill can raise, in a small aligned table, matching Error::codes() (spec §6.1).`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, entry := range qerrors.Codes() {
			fmt.Printf("%3d  %s\n", entry.Code, entry.Name)
		}
	},
}

func init() {
	rootCmd.AddCommand(codesCmd)
}
