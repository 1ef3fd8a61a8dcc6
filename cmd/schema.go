// Package cmd implements the command-line interface for vidclip.
package cmd

import (
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vidclip-cli/vidclip/history"
	"github.com/vidclip-cli/vidclip/media"
	"github.com/vidclip-cli/vidclip/progress"
)

// schemaTargets are the documents printed by vidclip.
var schemaTargets = map[string]any{
	"event":   &progress.Wire{},
	"video":   &media.Video{},
	"stream":  &media.StreamingURL{},
	"history": &history.Record{},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:       "schema [event|video|stream|history]",
	Short:     "Print the JSON schema of vidclip's JSON output",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: lo.Keys(schemaTargets),
	Run: func(cmd *cobra.Command, args []string) {
		reflector := &jsonschema.Reflector{
			Mapper:         optionSchema,
			ExpandedStruct: true,
		}

		if len(args) == 1 {
			printJSON(reflector.Reflect(schemaTargets[args[0]]))
			return
		}

		schemas := make(map[string]*jsonschema.Schema, len(schemaTargets))
		for name, target := range schemaTargets {
			schemas[name] = reflector.Reflect(target)
		}
		printJSON(schemas)
	},
}

// optionSchema describes mo.Option fields by the type they wrap.
func optionSchema(t reflect.Type) *jsonschema.Schema {
	if t.PkgPath() != "github.com/samber/mo" || !strings.HasPrefix(t.Name(), "Option[") {
		return nil
	}

	method, ok := t.MethodByName("OrEmpty")
	if !ok {
		return nil
	}

	switch inner := method.Type.Out(0); inner.Kind() {
	case reflect.String:
		return &jsonschema.Schema{Type: "string"}
	case reflect.Int, reflect.Int64:
		return &jsonschema.Schema{Type: "integer"}
	case reflect.Float64:
		return &jsonschema.Schema{Type: "number"}
	}
	return nil
}
