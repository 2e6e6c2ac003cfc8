package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/newsroom/pkg/newsletter"
	"github.com/agentstation/newsroom/pkg/schema"
)

// validateCmd checks an existing newsletter document against the
// contract.
var validateCmd = &cobra.Command{
	Use:   "validate <document.json>",
	Short: "Validate a newsletter document against the contract",
	Long: `Validate parses a newsletter JSON document and checks required fields,
entity reference integrity, id prefixes, and bibliography numbering.
Unknown extra fields are accepted. Exits non-zero on any violation.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	var doc newsletter.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	if violations := schema.New().Validate(&doc); violations != nil {
		for _, v := range violations {
			cmd.PrintErrf("  %s\n", v)
		}
		return fmt.Errorf("%s: %d contract violation(s)", args[0], len(violations))
	}

	cmd.Printf("%s: valid (schema %s)\n", args[0], doc.Metadata.Version)
	return nil
}
