package cmd

import (
	"fmt"

	"skctl/common"
	"skctl/config"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:     "login <token>",
	Short:   loginCmdHelp,
	Example: loginCmdExample,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		token := args[0]
		if err := config.ValidateToken(token); err != nil {
			common.ThrowError(err)
		}

		user, err := newAPIClient().VerifyToken(cmd.Context(), token)
		if err != nil {
			common.ThrowError(err)
		}

		saved, err := config.SaveToken(config.TokenFilePath(), token, confirmViaPrompt(cmd))
		if err != nil {
			common.ThrowError(err)
		}
		if !saved {
			fmt.Fprintln(cmd.OutOrStdout(), "Login aborted. Existing token was not overridden.")
			return
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Login successful. Token saved. Hello %s\n", user.FirstName)
	},
}

const (
	loginCmdHelp    = "Login to Sharedkube using an API token"
	loginCmdExample = "skctl login 0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
)
