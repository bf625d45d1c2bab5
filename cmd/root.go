//nolint:gochecknoglobals // Globals are used to make the parsing and reuseability of the cmd functionality easier
package cmd

import (
	"bufio"
	"errors"
	goflag "flag"
	"fmt"
	"os"
	"strings"

	"skctl/common"
	"skctl/common/endpoints"
	"skctl/config"
	"skctl/zones"

	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "skctl",
	Short: "Command line interface for Sharedkube zones",
	Long: "skctl authenticates against the Sharedkube API, lists the zones you may access\n" +
		"and points kubectl at a chosen zone by updating your kubeconfig file.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(cmd, rootFlagToEnv); err != nil {
			return err
		}
		configureLogging()
		return nil
	},
}

func Execute() {
	setupRootCmd()
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func setupRootCmd() {
	RootCmd.PersistentFlags().StringVarP(&apiHost, apiHostFlag, "", endpoints.DefaultAPIHost, apiHostUsage)
	RootCmd.PersistentFlags().BoolVarP(&debug, debugFlag, "", false, debugUsage)

	RootCmd.AddCommand(loginCmd)

	RootCmd.AddCommand(zonesCmd)

	RootCmd.AddCommand(switchCmd)
	switchCmd.Flags().StringVarP(&namespace, namespaceFlag, "n", "", namespaceUsage)
	switchCmd.Flags().StringVarP(&kubeconfigTarget, kubeconfigFlag, "", "", kubeconfigUsage)

	RootCmd.AddCommand(getTokenCmd)
}

// configureLogging maps the --debug flag onto glog's verbosity. glog
// registers its flags on the standard flag set, which cobra never
// parses, so parse it here with no arguments.
func configureLogging() {
	_ = goflag.Set("logtostderr", "true")
	if debug {
		_ = goflag.Set("v", "1")
	}
	if !goflag.Parsed() {
		_ = goflag.CommandLine.Parse([]string{})
	}
}

func newAPIClient() *zones.Client {
	return zones.NewClient(apiHost, nil)
}

// loadTokenOrThrow returns the stored token or aborts the command when
// none is saved yet.
func loadTokenOrThrow() string {
	token, err := config.LoadToken(config.TokenFilePath())
	if err != nil {
		common.ThrowError(err)
	}
	if token == "" {
		common.ThrowError(errors.New("no token found.\n\nPlease run the \"skctl login\" command first"))
	}
	return token
}

// confirmViaPrompt asks a yes/no question on the command's input stream.
// Anything but an explicit yes counts as no.
func confirmViaPrompt(cmd *cobra.Command) func(prompt string) bool {
	return func(prompt string) bool {
		fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
		reader := bufio.NewReader(cmd.InOrStdin())
		answer, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	}
}

var (
	apiHost          string
	debug            bool
	namespace        string
	kubeconfigTarget string
)

var rootFlagToEnv = map[string]string{
	apiHostFlag: apiHostEnv,
	debugFlag:   debugEnv,
}

const (
	apiHostFlag  = "api-host"
	apiHostEnv   = "SHAREDKUBE_API_HOST"
	apiHostUsage = "Specify a different API host. Either provide this argument or set the environment variable " + apiHostEnv

	debugFlag  = "debug"
	debugEnv   = "SHAREDKUBE_DEBUG"
	debugUsage = "Enable debug logging. Either provide this argument or set the environment variable " + debugEnv

	namespaceFlag  = "namespace"
	namespaceUsage = "Namespace to set on the zone's kubeconfig context"

	kubeconfigFlag  = "kubeconfig"
	kubeconfigUsage = "Path of the kubeconfig file to update (default ~/.kube/config)"
)
