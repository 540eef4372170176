package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/coolbeans/paragraf/pkg/citation"
	"github.com/coolbeans/paragraf/pkg/cleaner"
	"github.com/coolbeans/paragraf/pkg/search"
	"github.com/coolbeans/paragraf/pkg/store"
	"github.com/coolbeans/paragraf/pkg/validate"
)

var version = "0.1.0"

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
})

func main() {
	// Optional .env for PARAGRAF_DB; absence is fine.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "paragraf",
		Short: "Legal citation and text normalization engine",
		Long: `Paragraf normalizes references to legal provisions and cleans
registry-sourced provision text.

It parses free-form citations ("§ 3(1)(a), DSG", "Section 3, Data
Protection Act 2018"), renders them back in canonical styles, expands
provision references into equivalent lookup keys, strips embedded
registry metadata from provision text, and builds injection-safe
full-text search queries.`,
		Version: version,
	}

	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(formatCmd())
	rootCmd.AddCommand(candidatesCmd())
	rootCmd.AddCommand(cleanCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(validateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <citation>",
		Short: "Parse a citation string into its structured form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(citation.Parse(args[0]))
		},
	}
}

func formatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format <citation>",
		Short: "Parse a citation and render it in a canonical style",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			style, _ := cmd.Flags().GetString("style")
			parsed := citation.Parse(args[0])
			if !parsed.Valid {
				return fmt.Errorf("cannot format: %s", parsed.Err)
			}
			fmt.Println(citation.Format(parsed, citation.Style(style)))
			return nil
		},
	}
	cmd.Flags().String("style", "full", "Output style: full, short, or pinpoint")
	return cmd
}

func candidatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "candidates <provision-ref>",
		Short: "Expand a provision reference into its equivalent lookup keys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(citation.BuildCandidates(args[0]))
		},
	}
}

func cleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean [file]",
		Short: "Strip registry metadata from provision text",
		Long: `Strip registry metadata lines (publication references, index
keywords, internal IDs) from raw provision text. Reads the given file,
or stdin when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			var err error
			if len(args) == 1 {
				raw, err = os.ReadFile(args[0])
			} else {
				raw, err = io.ReadAll(os.Stdin)
			}
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			fmt.Println(cleaner.Clean(string(raw)))
			return nil
		},
	}
}

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Build safe full-text query variants, optionally running them",
		Long: `Build sanitized full-text query variants from a raw search string.
With --db, additionally run the search against the document store and
print the ranked hits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			limit, _ := cmd.Flags().GetInt("limit")

			variants := search.BuildVariants(args[0])
			if dbPath == "" {
				return printJSON(variants)
			}

			docStore, err := store.Open(dbPath, logger)
			if err != nil {
				return err
			}
			defer docStore.Close()

			hits, err := docStore.Search(args[0], limit)
			if err != nil {
				return err
			}
			return printJSON(struct {
				Variants search.Variants   `json:"variants"`
				Hits     []store.SearchHit `json:"hits"`
			}{variants, hits})
		},
	}
	cmd.Flags().String("db", os.Getenv("PARAGRAF_DB"), "Path to the document store")
	cmd.Flags().Int("limit", 10, "Maximum number of hits")
	return cmd
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <citation>",
		Short: "Check a citation against the document store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			if dbPath == "" {
				return fmt.Errorf("--db flag (or PARAGRAF_DB) is required")
			}

			docStore, err := store.Open(dbPath, logger)
			if err != nil {
				return err
			}
			defer docStore.Close()

			result := validate.Citation(args[0], docStore)
			if err := printJSON(result); err != nil {
				return err
			}
			for _, warning := range result.Warnings {
				logger.Warn(warning)
			}
			return nil
		},
	}
	cmd.Flags().String("db", os.Getenv("PARAGRAF_DB"), "Path to the document store")
	return cmd
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
