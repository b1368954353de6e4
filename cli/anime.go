package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/tobihoff/anirate/cli/config"
	"github.com/tobihoff/anirate/pkg/models"
)

var searchLimit int

var animeCmd = &cobra.Command{
	Use:   "anime",
	Short: "Catalog commands",
	Long:  `Search the anime catalog through the server's provider proxy.`,
}

var animeSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for anime",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]

		serverURL, err := config.GetServerURL()
		if err != nil {
			printError("Configuration not initialized")
			fmt.Println("Run: anirate init")
			return err
		}

		searchURL := fmt.Sprintf("%s/api/anime/search?query=%s&limit=%d", serverURL, url.QueryEscape(query), searchLimit)

		resp, err := http.Get(searchURL)
		if err != nil {
			printError("Search failed: Server connection error")
			return err
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)

		if resp.StatusCode != http.StatusOK {
			var errResp map[string]string
			json.Unmarshal(body, &errResp)
			printError(fmt.Sprintf("Search failed: %s", errResp["error"]))
			return fmt.Errorf("search failed")
		}

		var result models.AnimeSearchResponse
		if err := json.Unmarshal(body, &result); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}

		if len(result.Data) == 0 {
			fmt.Println("No results.")
			return nil
		}

		fmt.Printf("%-8s %-44s %-6s %-9s %s\n", "MAL ID", "TITLE", "TYPE", "EPISODES", "SCORE")
		for _, a := range result.Data {
			title := truncate(a.Title, 42)
			fmt.Printf("%-8d %-44s %-6s %-9d %.2f\n", a.MalID, title, a.Type, a.Episodes, a.Score)
		}
		return nil
	},
}

func init() {
	animeSearchCmd.Flags().IntVar(&searchLimit, "limit", 12, "Maximum number of results")
	animeCmd.AddCommand(animeSearchCmd)
}
