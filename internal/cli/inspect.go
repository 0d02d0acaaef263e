package cli

import (
	"fmt"

	"github.com/dgallion1/mdanki/internal/doctree"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type inspectOutput struct {
	Decks []doctree.Deck `yaml:"decks"`
}

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <input>",
		Short: "Print the parsed and rendered decks as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.configured(); err != nil {
				return err
			}
			decks, err := a.converter(a.cfg.MarkdownExtensions).LoadDecks(args[0])
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(inspectOutput{Decks: decks}); err != nil {
				return fmt.Errorf("encode yaml: %w", err)
			}
			return enc.Close()
		},
	}
}
