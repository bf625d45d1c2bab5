package cmd

import (
	"fmt"

	"skctl/common"
	"skctl/kubeconfig"

	"github.com/spf13/cobra"
)

var switchCmd = &cobra.Command{
	Use:     "switch <zone_name>",
	Short:   switchCmdHelp,
	Example: switchCmdExample,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		zoneName := args[0]
		token := loadTokenOrThrow()
		client := newAPIClient()

		zone, err := client.GetByName(cmd.Context(), token, zoneName)
		if err != nil {
			common.ThrowError(err)
		}

		cred, err := client.GetCredential(cmd.Context(), token, zone.ID)
		if err != nil {
			common.ThrowError(err)
		}
		if cred.Zone == "" {
			cred.Zone = zone.Name
		}

		target := kubeconfigTarget
		if target == "" {
			target = kubeconfig.DefaultPath()
		}

		if err = kubeconfig.Update(target, *cred, namespace); err != nil {
			common.ThrowError(err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Updated kubeconfig for zone: %s\n", zone.Name)
	},
}

const (
	switchCmdHelp    = "Point kubectl at a zone by updating the kubeconfig file"
	switchCmdExample = "skctl switch my-zone --namespace my-namespace"
)
