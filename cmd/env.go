// Package cmd implements the command-line interface for vidclip.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vidclip-cli/vidclip/color"
	"github.com/vidclip-cli/vidclip/config"
	"github.com/vidclip-cli/vidclip/style"
	"github.com/vidclip-cli/vidclip/where"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Display only environment variables that are currently defined")
	envCmd.Flags().BoolP("unset-only", "u", false, "Display only environment variables that are currently undefined")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

type envVar struct {
	Name    string `json:"name"`
	Value   string `json:"value,omitempty"`
	DotEnv  bool   `json:"dotenv"`
	present bool
}

// envCmd displays the current process values for all supported environment variables.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Display the collection of supported environment variables",
	Long: `Display the collection of supported environment variables and their current process values.
Variables that were loaded from the .env file of the working directory are marked.`,
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		// a missing file simply marks nothing
		dotenv, _ := godotenv.Read(config.DotEnvFile)

		names := []string{where.EnvConfigPath}
		for _, field := range config.Default {
			names = append(names, field.Env())
		}
		slices.Sort(names)

		vars := lo.FilterMap(names, func(name string, _ int) (envVar, bool) {
			value, present := os.LookupEnv(name)
			_, fromFile := dotenv[name]
			v := envVar{Name: name, Value: value, DotEnv: present && fromFile && dotenv[name] == value, present: present}

			switch {
			case setOnly:
				return v, present
			case unsetOnly:
				return v, !present
			default:
				return v, true
			}
		})

		if asJSON() {
			printJSON(vars)
			return
		}

		for _, v := range vars {
			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(v.Name))
			cmd.Print("=")

			switch {
			case !v.present:
				cmd.Println(style.Fg(color.Red)("unset"))
			case v.DotEnv:
				cmd.Println(style.Fg(color.Green)(v.Value) + " " + style.Faint("(.env)"))
			default:
				cmd.Println(style.Fg(color.Green)(v.Value))
			}
		}
	},
}
