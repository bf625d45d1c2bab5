package cmd

import (
	"fmt"

	"skctl/common"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: zonesCmdHelp,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		token := loadTokenOrThrow()

		zoneList, err := newAPIClient().List(cmd.Context(), token)
		if err != nil {
			common.ThrowError(err)
		}

		if len(zoneList) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No zones found.")
			return
		}

		table := uitable.New()
		table.AddRow("ID", "Name", "CPU", "Memory", "Storage", "Status", "Type")
		for _, zone := range zoneList {
			table.AddRow(
				zone.ID,
				zone.Name,
				zone.ResourceQuotaSize.CPU.String(),
				zone.ResourceQuotaSize.Memory.String()+"Gi",
				zone.ResourceQuotaSize.Storage.String()+"G",
				zone.Status,
				zone.Type,
			)
		}
		fmt.Fprintln(cmd.OutOrStdout(), table)
	},
}

const zonesCmdHelp = "List all zones your token may access"
