package cmd

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/s0up4200/holocron/filter"
	"github.com/s0up4200/holocron/scenario"
	"github.com/s0up4200/holocron/swapi"
)

var (
	listAll      bool
	listFilter   string
	outputFormat string
)

// categoriesCmd represents the categories command
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the entity categories SWAPI serves",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list <category>",
	Short: "List entities of a category",
	Long: `List the entities of a category, optionally following every page and
keeping only those matching a filter expression.

Filter expressions use the expr language over the entity's fields, for example:
  holocron list people --all --filter 'gender == "female" and hasRef(films, "https://swapi.dev/api/films/1/")'`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

// findCmd represents the find command
var findCmd = &cobra.Command{
	Use:   "find <category> <term>",
	Short: "Find an entity by name and describe it",
	Args:  cobra.ExactArgs(2),
	RunE:  runFind,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(findCmd)

	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "follow pagination and list every entity")
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "filter expression")
	listCmd.Flags().StringVarP(&outputFormat, "output", "o", swapi.FormatLog, "output format: log, json or yaml")

	findCmd.Flags().StringVarP(&outputFormat, "output", "o", swapi.FormatLog, "output format: log, json or yaml")
}

func runCategories(cmd *cobra.Command, args []string) error {
	root, err := swapiClient.Root(cmd.Context())
	if err != nil {
		return err
	}

	for _, category := range swapi.Categories(root) {
		fmt.Fprintln(cmd.OutOrStdout(), category)
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	category := args[0]

	if err := checkCategory(ctx, category); err != nil {
		return err
	}

	var (
		entities []swapi.Entity
		err      error
	)
	if listAll {
		entities, err = swapiClient.AllPages(ctx, category)
	} else {
		var page *swapi.Page
		page, err = swapiClient.Page(ctx, category)
		entities = swapi.Results(page)
	}
	if err != nil {
		return err
	}

	if listFilter != "" {
		logger.Info().Str("filter", listFilter).Msg("Filtering entities")

		f, err := filter.CompileFilter(listFilter)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		entities, err = filter.Apply(ctx, f, entities, nil)
		if err != nil {
			return err
		}
	}

	return printEntities(cmd.OutOrStdout(), entities)
}

func runFind(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	category, term := args[0], args[1]

	if err := checkCategory(ctx, category); err != nil {
		return err
	}

	entity, err := swapiClient.Find(ctx, category, term)
	if err != nil {
		return err
	}

	if outputFormat == swapi.FormatLog {
		logger.Info().Msgf("Description of %q:", term)
		scenario.NewDescriber(logger).Describe(entity)
		return nil
	}

	return printEntities(cmd.OutOrStdout(), []swapi.Entity{entity})
}

// checkCategory rejects categories the root listing does not name
func checkCategory(ctx context.Context, category string) error {
	root, err := swapiClient.Root(ctx)
	if err != nil {
		return err
	}

	categories := swapi.Categories(root)
	if !slices.Contains(categories, category) {
		return fmt.Errorf("unknown category %q (available: %v)", category, categories)
	}
	return nil
}

// printEntities writes names in log format, otherwise the marshaled entities
func printEntities(w io.Writer, entities []swapi.Entity) error {
	if outputFormat == swapi.FormatLog {
		if len(entities) == 0 {
			fmt.Fprintln(w, "No entities found.")
			return nil
		}

		fmt.Fprintf(w, "Found %d entities:\n", len(entities))
		for _, e := range entities {
			fmt.Fprintf(w, "• %s\n", e.Name())
		}
		return nil
	}

	data, err := swapi.Marshal(entities, outputFormat)
	if err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	_, err = w.Write(data)
	return err
}
