package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mstefano/lightbox/internal/cli/output"
	"github.com/mstefano/lightbox/internal/cli/prompt"
	"github.com/mstefano/lightbox/pkg/config"
)

var catalogYes bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and refresh the photo catalog",
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the catalog timeline",
	Long: `Load the catalog and print a per-year summary of the timeline.

The catalog is served from the persisted snapshot when it is still
fresh; use "lightbox catalog refresh" to force a full fetch.`,
	RunE: runCatalogShow,
}

var catalogRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force a full catalog fetch",
	Long: `Discard the persisted snapshot and download the manifest again.

Asks for confirmation unless --yes is given.`,
	RunE: runCatalogRefresh,
}

func init() {
	catalogRefreshCmd.Flags().BoolVarP(&catalogYes, "yes", "y", false, "Skip confirmation prompt")

	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogRefreshCmd)
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return err
	}
	if err := InitLogger(cfg); err != nil {
		return err
	}

	sess, cleanup, err := buildSession(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	col, err := sess.Catalog().Load(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Photos: %d\n", col.Len())
	fmt.Printf("Token:  %s\n\n", col.Token)

	rows := make([][]string, 0, len(col.Periods))
	for _, p := range col.Periods {
		rows = append(rows, []string{
			strconv.Itoa(p.Year),
			strconv.Itoa(p.Count),
		})
	}
	output.Table(os.Stdout, []string{"Year", "Photos"}, rows)
	return nil
}

func runCatalogRefresh(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return err
	}
	if err := InitLogger(cfg); err != nil {
		return err
	}

	if !catalogYes {
		ok, err := prompt.Confirm("Discard the cached catalog and fetch again?", false)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Refresh cancelled.")
			return nil
		}
	}

	sess, cleanup, err := buildSession(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := sess.Catalog().Invalidate(cmd.Context()); err != nil {
		return err
	}
	col, err := sess.Catalog().Load(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Catalog refreshed: %d photos, token %s\n", col.Len(), col.Token)
	return nil
}
