package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdstream/internal/configloader"
)

func newConfigCommand() *cobra.Command {
	var showEnv bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after merging defaults, the user config
($XDG_CONFIG_HOME/mdstream/config.yaml), the nearest project .mdstream.yml,
an explicit --config file and MDSTREAM_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if showEnv {
				for _, env := range configloader.ListEnvVars() {
					fmt.Fprintf(out, "%-22s %s\n", env.Name, env.Description)
				}
				return nil
			}

			loaded, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}

			header := "# effective mdstream configuration"
			if len(loaded.LoadedFrom) > 0 {
				header += "\n# loaded from: " + strings.Join(loaded.LoadedFrom, ", ")
			}
			data, err := loaded.Config.ToYAMLWithHeader(header)
			if err != nil {
				return fmt.Errorf("serialize config: %w", err)
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&showEnv, "env", false, "list the supported environment variables")

	return cmd
}
