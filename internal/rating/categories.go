package rating

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tobihoff/anirate/pkg/models"
)

// defaultCategories is the compiled-in catalog used when no categories file
// is configured or present. The catalog is append-only: ratings reference
// these ids, so entries are never renamed or removed.
var defaultCategories = []models.RatingCategoryBase{
	{ID: "story", Name: "Story", Description: "Plot, storytelling and narrative structure"},
	{ID: "animation", Name: "Animation", Description: "Quality of animation, art and visual effects"},
	{ID: "characters", Name: "Characters", Description: "Depth and development of the characters"},
	{ID: "sound", Name: "Sound", Description: "Music, sound effects and voice acting"},
	{ID: "enjoyment", Name: "Enjoyment", Description: "How entertaining and engaging it was overall"},
}

// LoadCategories reads the category catalog from a JSON file shaped as
// {"categories": [...]}. An empty path or a missing file falls back to the
// compiled-in defaults; a present but malformed file is an error.
func LoadCategories(path string) ([]models.RatingCategoryBase, error) {
	if path == "" {
		return append([]models.RatingCategoryBase(nil), defaultCategories...), nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return append([]models.RatingCategoryBase(nil), defaultCategories...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}

	var doc models.RatingCategoriesResponse
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode categories file %s: %w", path, err)
	}
	if len(doc.Categories) == 0 {
		return nil, fmt.Errorf("categories file %s contains no categories", path)
	}
	for _, c := range doc.Categories {
		if c.ID == "" || c.Name == "" {
			return nil, fmt.Errorf("categories file %s has an entry without id or name", path)
		}
	}
	return doc.Categories, nil
}
