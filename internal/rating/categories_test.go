package rating

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCategories_Defaults(t *testing.T) {
	cases := map[string]string{
		"empty path":   "",
		"missing file": filepath.Join(t.TempDir(), "no-such-file.json"),
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			cats, err := LoadCategories(path)
			if err != nil {
				t.Fatalf("LoadCategories(%q): %v", path, err)
			}
			if len(cats) != len(defaultCategories) {
				t.Fatalf("expected %d default categories, got %d", len(defaultCategories), len(cats))
			}
			if cats[0].ID != "story" || cats[len(cats)-1].ID != "enjoyment" {
				t.Fatalf("unexpected catalog order: %+v", cats)
			}
		})
	}
}

func TestLoadCategories_DefaultsAreCopied(t *testing.T) {
	cats, err := LoadCategories("")
	if err != nil {
		t.Fatalf("LoadCategories: %v", err)
	}
	cats[0].Name = "mutated"
	if defaultCategories[0].Name == "mutated" {
		t.Fatal("caller mutation leaked into the compiled-in defaults")
	}
}

func TestLoadCategories_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.json")
	doc := `{"categories":[
		{"id":"story","name":"Story","description":"Plot"},
		{"id":"pacing","name":"Pacing","description":"Episode flow"}
	]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cats, err := LoadCategories(path)
	if err != nil {
		t.Fatalf("LoadCategories: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(cats))
	}
	if cats[1].ID != "pacing" || cats[1].Name != "Pacing" {
		t.Fatalf("unexpected category: %+v", cats[1])
	}
}

func TestLoadCategories_RejectsBadFiles(t *testing.T) {
	cases := map[string]string{
		"malformed json": `{"categories": [`,
		"empty catalog":  `{"categories": []}`,
		"missing id":     `{"categories":[{"name":"Story"}]}`,
		"missing name":   `{"categories":[{"id":"story"}]}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "categories.json")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write fixture: %v", err)
			}
			if _, err := LoadCategories(path); err == nil {
				t.Fatal("expected an error for a bad categories file")
			}
		})
	}
}
