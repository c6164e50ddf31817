package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nainya/plantcatalog/pkg/catalog"
	"github.com/nainya/plantcatalog/pkg/dataset"
	"github.com/nainya/plantcatalog/pkg/filter"
	"github.com/nainya/plantcatalog/pkg/selection"
	"github.com/nainya/plantcatalog/pkg/vis"
)

func newListCmd(g *globalFlags) *cobra.Command {
	var (
		filters       []string
		limit, offset int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rows matching the given filters",
		Example: `  catalog list --filter Zone=5
  catalog list --filter "Year(s) Sold=2022" --limit 10`,
		Args: cobra.NoArgs,
		RunE: g.withCatalog("list", func(ctx context.Context, cmd *cobra.Command, c *catalog.Catalog, args []string) error {
			if err := applyFilters(c, filters); err != nil {
				return err
			}
			rows := c.Rows()
			return writeJSON(cmd.OutOrStdout(), listView{
				Total:   len(rows),
				Filters: c.FilterState(),
				Rows:    toRowViews(c, filter.Paginate(rows, limit, offset)),
			})
		}),
	}
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "Filter as field=value (repeatable)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum rows to print (0 = all)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Rows to skip")
	return cmd
}

func newSearchCmd(g *globalFlags) *cobra.Command {
	var aux []string
	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Autocomplete candidates for a search term",
		Args:  cobra.MaximumNArgs(1),
		RunE: g.withCatalog("search", func(ctx context.Context, cmd *cobra.Command, c *catalog.Catalog, args []string) error {
			gates, err := parsePairs(aux)
			if err != nil {
				return err
			}
			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			return writeJSON(cmd.OutOrStdout(), c.Search(term, gates))
		}),
	}
	cmd.Flags().StringArrayVar(&aux, "aux", nil, "Gate results on field=value containment (repeatable)")
	return cmd
}

func newShowCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the detail projection of one row",
		Args:  cobra.ExactArgs(1),
		RunE: g.withCatalog("show", func(ctx context.Context, cmd *cobra.Command, c *catalog.Catalog, args []string) error {
			proj, err := c.Detail(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), proj)
		}),
	}
}

func newChartCmd(g *globalFlags) *cobra.Command {
	var (
		filters  []string
		selected bool
	)
	cmd := &cobra.Command{
		Use:       "chart <bloom|zone|all>",
		Short:     "Build chart rows for the visible or selected rows",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(vis.KindBloom), string(vis.KindZone), "all"},
		RunE: g.withCatalog("chart", func(ctx context.Context, cmd *cobra.Command, c *catalog.Catalog, args []string) error {
			if err := applyFilters(c, filters); err != nil {
				return err
			}
			switch kind := vis.Kind(args[0]); kind {
			case vis.KindBloom, vis.KindZone:
				return writeJSON(cmd.OutOrStdout(), c.Chart(kind, selected))
			case "all":
				return writeJSON(cmd.OutOrStdout(), c.Charts(selected))
			default:
				return fmt.Errorf("unknown chart %q (want bloom, zone or all)", args[0])
			}
		}),
	}
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "Filter as field=value (repeatable)")
	cmd.Flags().BoolVar(&selected, "selected", false, "Chart the selection instead of the visible rows")
	return cmd
}

func newSelectCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Manage the persisted selection",
	}

	add := &cobra.Command{
		Use:   "add <id> [note...]",
		Short: "Select a row, or update its note",
		Args:  cobra.MinimumNArgs(1),
		RunE: g.withCatalog("select_add", func(ctx context.Context, cmd *cobra.Command, c *catalog.Catalog, args []string) error {
			if err := c.Select(args[0], strings.Join(args[1:], " ")); err != nil {
				return err
			}
			return writeSelection(cmd, c)
		}),
	}

	remove := &cobra.Command{
		Use:   "remove <id>",
		Short: "Deselect a row",
		Args:  cobra.ExactArgs(1),
		RunE: g.withCatalog("select_remove", func(ctx context.Context, cmd *cobra.Command, c *catalog.Catalog, args []string) error {
			c.Deselect(args[0])
			return writeSelection(cmd, c)
		}),
	}

	var filters []string
	all := &cobra.Command{
		Use:   "all",
		Short: "Select every row visible under the given filters",
		Args:  cobra.NoArgs,
		RunE: g.withCatalog("select_all", func(ctx context.Context, cmd *cobra.Command, c *catalog.Catalog, args []string) error {
			if err := applyFilters(c, filters); err != nil {
				return err
			}
			c.SelectAllVisible()
			return writeSelection(cmd, c)
		}),
	}
	all.Flags().StringArrayVarP(&filters, "filter", "f", nil, "Filter as field=value (repeatable)")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the selection",
		Args:  cobra.NoArgs,
		RunE: g.withCatalog("select_clear", func(ctx context.Context, cmd *cobra.Command, c *catalog.Catalog, args []string) error {
			c.ClearSelection()
			return writeSelection(cmd, c)
		}),
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Print the selection and its request lines",
		Args:  cobra.NoArgs,
		RunE: g.withCatalog("select_list", func(ctx context.Context, cmd *cobra.Command, c *catalog.Catalog, args []string) error {
			return writeSelection(cmd, c)
		}),
	}

	cmd.AddCommand(add, remove, all, clearCmd, list)
	return cmd
}

type selectionView struct {
	Durable bool              `json:"durable"`
	Entries []selection.Entry `json:"entries"`
	Request []string          `json:"request"`
}

func writeSelection(cmd *cobra.Command, c *catalog.Catalog) error {
	view := selectionView{
		Durable: c.Durable(),
		Entries: c.Selection(),
		Request: c.RequestLines(),
	}
	if view.Entries == nil {
		view.Entries = []selection.Entry{}
	}
	if view.Request == nil {
		view.Request = []string{}
	}
	return writeJSON(cmd.OutOrStdout(), view)
}

type validateView struct {
	Rows       int                 `json:"rows"`
	Header     []string            `json:"header"`
	Collisions []dataset.Collision `json:"collisions"`
	Durable    bool                `json:"durable"`
}

func newValidateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the dataset for identifier collisions",
		Args:  cobra.NoArgs,
		RunE: g.withCatalog("validate", func(ctx context.Context, cmd *cobra.Command, c *catalog.Catalog, args []string) error {
			ds := c.Dataset()
			collisions := ds.Collisions()
			if collisions == nil {
				collisions = []dataset.Collision{}
			}
			if err := writeJSON(cmd.OutOrStdout(), validateView{
				Rows:       ds.Len(),
				Header:     ds.Header(),
				Collisions: collisions,
				Durable:    c.Durable(),
			}); err != nil {
				return err
			}
			if len(collisions) > 0 {
				return &dataset.DuplicateIDError{Collisions: collisions}
			}
			return nil
		}),
	}
}
