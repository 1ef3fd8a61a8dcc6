// Package cmd implements the command-line interface for vidclip.
package cmd

import (
	"os"
	"runtime"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidclip-cli/vidclip/color"
	"github.com/vidclip-cli/vidclip/constant"
	"github.com/vidclip-cli/vidclip/key"
	"github.com/vidclip-cli/vidclip/process"
	"github.com/vidclip-cli/vidclip/style"
	"github.com/vidclip-cli/vidclip/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Display only the version string without metadata")
}

type tool struct {
	Binary string `json:"binary"`
	Found  bool   `json:"found"`
}

type versionInfo struct {
	App      string `json:"app"`
	Version  string `json:"version"`
	OS       string `json:"os"`
	Arch     string `json:"arch"`
	BuiltAt  string `json:"built_at"`
	BuiltBy  string `json:"built_by"`
	Revision string `json:"revision"`
	Tools    []tool `json:"tools"`
}

var versionTemplate = lo.Must(template.New("version").Funcs(map[string]any{
	"faint":   style.Faint,
	"bold":    style.Bold,
	"magenta": style.Fg(color.Purple),
	"green":   style.Fg(color.Green),
	"red":     style.Fg(color.Red),
}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}         {{ bold .Version }}
  {{ faint "Git Commit" }}      {{ bold .Revision }}
  {{ faint "Build Date" }}      {{ bold .BuiltAt }}
  {{ faint "Built By" }}        {{ bold .BuiltBy }}
  {{ faint "Platform" }}        {{ bold .OS }}/{{ bold .Arch }}
{{ range .Tools }}  {{ faint "Requires" }}        {{ bold .Binary }} {{ if .Found }}{{ green "found" }}{{ else }}{{ red "missing" }}{{ end }}
{{ end }}`))

// versionCmd displays application version and build metadata.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version and build metadata",
	Long:  "Display the current application version, build revision, platform and whether the external tools are installed.",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		info := versionInfo{
			App:      constant.Vidclip,
			Version:  constant.Version,
			OS:       runtime.GOOS,
			Arch:     runtime.GOARCH,
			BuiltAt:  strings.TrimSpace(constant.BuiltAt),
			BuiltBy:  constant.BuiltBy,
			Revision: constant.Revision,
		}

		for _, k := range []string{key.YtdlpBinary, key.FfmpegBinary} {
			binary := viper.GetString(k)
			info.Tools = append(info.Tools, tool{Binary: binary, Found: len(process.Missing(binary)) == 0})
		}

		if asJSON() {
			printJSON(info)
			return
		}

		defer version.Notify()
		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), info))
	},
}
