package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aleksandr-Gamble/scale-serp/internal/services/scaleserp"
	"github.com/Aleksandr-Gamble/scale-serp/pkg/config"
)

var (
	locationType        string
	locationCountryCode string
	locationURLOnly     bool
)

// locationsCmd represents the locations command
var locationsCmd = &cobra.Command{
	Use:   "locations <query>",
	Short: "Look up supported locations",
	Long: `Search the upstream location database by name and print the
validated matches as JSON.

Example:
  scale-serp locations chicago
  scale-serp locations chicago --type City --country-code US`,
	Args: cobra.ExactArgs(1),
	RunE: runLocations,
}

func init() {
	rootCmd.AddCommand(locationsCmd)

	locationsCmd.Flags().StringVar(&locationType, "type", "", "location type filter (e.g. City, State, Country)")
	locationsCmd.Flags().StringVar(&locationCountryCode, "country-code", "", "two-letter country code filter")
	locationsCmd.Flags().BoolVar(&locationURLOnly, "url-only", false, "print the query URL without performing the request")
}

func runLocations(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	params, err := buildLocationParams(cfg, args[0])
	if err != nil {
		return err
	}
	params.Type = locationType
	params.CountryCode = locationCountryCode

	if locationURLOnly {
		fmt.Fprintln(cmd.OutOrStdout(), params.URL(cfg.ScaleSERP.BaseURL))
		return nil
	}

	client := newUpstreamClient(cfg)

	ctx, cancel := commandContext(cmd, 60*time.Second)
	defer cancel()

	results, err := client.Locations(ctx, params)
	if err != nil {
		return err
	}

	return printJSON(cmd, results)
}

func buildLocationParams(cfg *config.Config, query string) (scaleserp.LocationParams, error) {
	if cfg.ScaleSERP.APIKey != "" {
		return scaleserp.NewLocationParams(cfg.ScaleSERP.APIKey, query), nil
	}
	return scaleserp.LocationParamsFromEnv(query)
}
