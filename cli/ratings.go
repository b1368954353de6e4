package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tobihoff/anirate/cli/config"
	"github.com/tobihoff/anirate/pkg/models"
)

var (
	exportFormat string
	exportOutput string
	importInput  string
)

var ratingsCmd = &cobra.Command{
	Use:   "ratings",
	Short: "Manage saved ratings",
	Long:  `List, delete, export and import your saved anime ratings.`,
}

var ratingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved ratings",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := fetchRatings()
		if err != nil {
			printError(fmt.Sprintf("Failed to fetch ratings: %v", err))
			return err
		}

		if len(list) == 0 {
			fmt.Println("No ratings saved yet.")
			return nil
		}

		fmt.Printf("%-38s %-8s %-40s %s\n", "ID", "OVERALL", "TITLE", "UPDATED")
		for _, r := range list {
			title := truncate(r.AnimeTitle, 38)
			fmt.Printf("%-38s %-8.1f %-40s %s\n", r.ID, r.OverallRating, title, r.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var ratingsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a rating by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		serverURL, err := config.GetServerURL()
		if err != nil {
			return err
		}

		req, _ := http.NewRequest(http.MethodDelete, serverURL+"/api/ratings/"+args[0], nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			printError("Delete failed: Server connection error")
			return err
		}
		defer resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusNoContent:
			printSuccess("Rating deleted")
			return nil
		case http.StatusNotFound:
			printError("No rating with that id")
			return fmt.Errorf("rating not found")
		default:
			printError(fmt.Sprintf("Server returned status %d", resp.StatusCode))
			return fmt.Errorf("delete failed")
		}
	},
}

var ratingsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export ratings",
	Long:  `Export your saved ratings to JSON or CSV.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := fetchRatings()
		if err != nil {
			printError(fmt.Sprintf("Failed to fetch ratings: %v", err))
			return err
		}

		var outputData []byte
		switch strings.ToLower(exportFormat) {
		case "json":
			outputData, err = json.MarshalIndent(list, "", "  ")
			if err != nil {
				return err
			}
		case "csv":
			var buf bytes.Buffer
			w := csv.NewWriter(&buf)
			w.Write([]string{"id", "anime_id", "anime_title", "overall_rating", "notes", "created_at", "updated_at"})
			for _, r := range list {
				w.Write([]string{
					r.ID,
					fmt.Sprintf("%d", r.AnimeID),
					r.AnimeTitle,
					fmt.Sprintf("%.1f", r.OverallRating),
					r.Notes,
					r.CreatedAt.Format("2006-01-02"),
					r.UpdatedAt.Format("2006-01-02"),
				})
			}
			w.Flush()
			if err := w.Error(); err != nil {
				return err
			}
			outputData = buf.Bytes()
		default:
			return fmt.Errorf("unsupported format %q (want json or csv)", exportFormat)
		}

		if exportOutput == "" || exportOutput == "-" {
			fmt.Print(string(outputData))
			return nil
		}
		if err := os.WriteFile(exportOutput, outputData, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", exportOutput, err)
		}
		printSuccess(fmt.Sprintf("Exported %d ratings to %s", len(list), exportOutput))
		return nil
	},
}

var ratingsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import ratings",
	Long:  `Import ratings from a JSON export and save them to the server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if importInput == "" {
			return fmt.Errorf("--input is required")
		}

		data, err := os.ReadFile(importInput)
		if err != nil {
			return fmt.Errorf("read %s: %w", importInput, err)
		}

		var list []models.SaveRatingRequest
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("parse %s: %w", importInput, err)
		}

		serverURL, err := config.GetServerURL()
		if err != nil {
			return err
		}

		imported := 0
		for _, r := range list {
			payload, err := json.Marshal(r)
			if err != nil {
				continue
			}
			resp, err := http.Post(serverURL+"/api/ratings", "application/json", bytes.NewReader(payload))
			if err != nil {
				printError(fmt.Sprintf("Import aborted after %d ratings: %v", imported, err))
				return err
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				imported++
			} else {
				printError(fmt.Sprintf("Skipped %q (status %d)", r.AnimeTitle, resp.StatusCode))
			}
		}

		printSuccess(fmt.Sprintf("Imported %d of %d ratings", imported, len(list)))
		return nil
	},
}

// truncate shortens s to at most max display runes, marking the cut with an
// ellipsis. Slicing runes rather than bytes keeps multi-byte titles intact.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func fetchRatings() ([]models.AnimeRating, error) {
	serverURL, err := config.GetServerURL()
	if err != nil {
		return nil, err
	}

	resp, err := http.Get(serverURL + "/api/ratings")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		var errResp map[string]string
		json.Unmarshal(body, &errResp)
		return nil, fmt.Errorf("server error: %s", errResp["error"])
	}

	var list []models.AnimeRating
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return list, nil
}

func init() {
	ratingsExportCmd.Flags().StringVar(&exportFormat, "format", "json", "Export format (json or csv)")
	ratingsExportCmd.Flags().StringVar(&exportOutput, "output", "", "Output file (default stdout)")
	ratingsImportCmd.Flags().StringVar(&importInput, "input", "", "Input JSON file")

	ratingsCmd.AddCommand(ratingsListCmd)
	ratingsCmd.AddCommand(ratingsDeleteCmd)
	ratingsCmd.AddCommand(ratingsExportCmd)
	ratingsCmd.AddCommand(ratingsImportCmd)
}
