package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aleksandr-Gamble/scale-serp/internal/services/scaleserp"
	"github.com/Aleksandr-Gamble/scale-serp/pkg/config"
)

var (
	searchLocation string
	searchURLOnly  bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run a web search",
	Long: `Run a single web search against the upstream API and print the
validated response as JSON.

The API key is taken from the configuration (SERP_SCALESERP_API_KEY)
or, if unset, from the SCALE_SERP_KEY environment variable.

Example:
  scale-serp search "anionic surfactants"
  scale-serp search "anionic surfactants" --location "New York,New York,United States"
  scale-serp search "anionic surfactants" --url-only`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchLocation, "location", "", "geographic location to search from")
	searchCmd.Flags().BoolVar(&searchURLOnly, "url-only", false, "print the query URL without performing the request")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	params, err := buildSearchParams(cfg, searchLocation, args[0])
	if err != nil {
		return err
	}

	if searchURLOnly {
		fmt.Fprintln(cmd.OutOrStdout(), params.URL(cfg.ScaleSERP.BaseURL))
		return nil
	}

	client := newUpstreamClient(cfg)

	ctx, cancel := commandContext(cmd, 60*time.Second)
	defer cancel()

	results, err := client.Search(ctx, params)
	if err != nil {
		return err
	}

	return printJSON(cmd, results)
}

func buildSearchParams(cfg *config.Config, location, query string) (scaleserp.SearchParams, error) {
	if cfg.ScaleSERP.APIKey != "" {
		return scaleserp.NewSearchParams(cfg.ScaleSERP.APIKey, location, query), nil
	}
	return scaleserp.SearchParamsFromEnv(location, query)
}

func newUpstreamClient(cfg *config.Config) *scaleserp.Client {
	return scaleserp.NewClient(scaleserp.Config{
		RequestsPerMinute: cfg.ScaleSERP.RequestsPerMinute,
		BurstSize:         cfg.ScaleSERP.BurstSize,
		Timeout:           cfg.ScaleSERP.Timeout,
		MaxRetries:        cfg.ScaleSERP.RetryAttempts,
		RetryBackoff:      cfg.ScaleSERP.RetryBackoff,
		UserAgent:         cfg.ScaleSERP.UserAgent,
		BaseURL:           cfg.ScaleSERP.BaseURL,
	})
}

func commandContext(cmd *cobra.Command, timeout time.Duration) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
