package cmd

import (
	"fmt"

	"skctl/common"

	"github.com/spf13/cobra"
)

// getTokenCmd is hidden from help output: it exists for kubectl
// credential plugins, not for people.
var getTokenCmd = &cobra.Command{
	Use:    "get_token <zone_id>",
	Short:  getTokenCmdHelp,
	Args:   cobra.ExactArgs(1),
	Hidden: true,
	Run: func(cmd *cobra.Command, args []string) {
		token := loadTokenOrThrow()

		body, err := newAPIClient().GetZoneToken(cmd.Context(), token, args[0])
		if err != nil {
			common.ThrowError(err)
		}

		formatted, err := common.ByteSliceToIndentedJSONFormat(body)
		if err != nil {
			common.ThrowError(err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), formatted)
	},
}

const getTokenCmdHelp = "Print the zone-scoped token payload for a zone ID"
