package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RogoSolutions/iotcore-demo/internal/pkg/devicecmd"
)

var (
	_catalogAsJSON bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the supported device commands, grouped by category",

	RunE: func(cmd *cobra.Command, args []string) error {
		if err := doCatalog(); err != nil {
			return err
		}

		return nil
	},
}

func init() {
	catalogCmd.Flags().BoolVar(&_catalogAsJSON, "json", false, "Return the catalog as JSON")

	rootCmd.AddCommand(catalogCmd)
}

type catalogEntry struct {
	ID                    string   `json:"id"`
	DisplayName           string   `json:"displayName"`
	Description           string   `json:"description"`
	RequiredParams        []string `json:"requiredParams,omitempty"`
	OptionalParams        []string `json:"optionalParams,omitempty"`
	HasCompletionCallback bool     `json:"hasCompletionCallback"`
}

type catalogGroup struct {
	Category string         `json:"category"`
	Commands []catalogEntry `json:"commands"`
}

func doCatalog() error {
	groups := devicecmd.CategoriesOrdered()

	if _catalogAsJSON {
		out := make([]catalogGroup, 0, len(groups))
		for _, g := range groups {
			cg := catalogGroup{Category: g.Category.Name()}
			for _, def := range g.Commands {
				e := catalogEntry{
					ID:                    def.ID,
					DisplayName:           def.DisplayName,
					Description:           def.Description,
					HasCompletionCallback: def.HasCompletionCallback,
				}
				for _, p := range def.RequiredParameters() {
					e.RequiredParams = append(e.RequiredParams, p.Name)
				}
				for _, p := range def.OptionalParameters() {
					e.OptionalParams = append(e.OptionalParams, p.Name)
				}
				cg.Commands = append(cg.Commands, e)
			}
			out = append(out, cg)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "    ")
		return enc.Encode(out)
	}

	for _, g := range groups {
		fmt.Printf("%s\n", g.Category.Name())
		for _, def := range g.Commands {
			marker := " "
			if !def.HasCompletionCallback {
				marker = "*"
			}
			fmt.Printf("  %s %-24s %s\n", marker, def.ID, def.Description)
		}
		fmt.Println()
	}
	fmt.Println("commands marked * are fire-and-forget: no direct result is returned")

	return nil
}
