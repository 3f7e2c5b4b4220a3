package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/josephlewis42/minishell/core/builtins"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var builtinsYAML bool

type builtinInfo struct {
	Name string `json:"name"`
	Help string `json:"help"`
}

// builtinsCmd lists the registry
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands of the interpreter.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var infos []builtinInfo
		for _, entry := range builtins.All() {
			infos = append(infos, builtinInfo{Name: entry.Name, Help: entry.Help})
		}

		if builtinsYAML {
			out, err := yaml.Marshal(infos)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		for _, info := range infos {
			fmt.Fprintf(tw, "%s\t%s\n", info.Name, info.Help)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
	builtinsCmd.Flags().BoolVar(&builtinsYAML, "yaml", false, "output YAML")
}
