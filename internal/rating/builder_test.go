package rating

import (
	"errors"
	"testing"
	"time"

	"github.com/tobihoff/anirate/pkg/models"
)

func validInput() BuildInput {
	return BuildInput{
		AnimeID:    42,
		AnimeTitle: "Test Anime 42",
		AnimeImage: "https://cdn.example/anime/42.jpg",
		Categories: []models.RatingCategory{
			{ID: "story", Name: "Story", Value: 8},
			{ID: "art", Name: "Art", Value: 6},
		},
	}
}

func TestBuild_NewRating(t *testing.T) {
	before := time.Now().UTC()
	r, err := Build(validInput(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.ID == "" {
		t.Fatal("expected a generated id")
	}
	if r.OverallRating != 3.5 {
		t.Fatalf("expected overall 3.5, got %g", r.OverallRating)
	}
	if r.CreatedAt.Before(before) {
		t.Fatalf("createdAt %v predates build", r.CreatedAt)
	}
	if !r.UpdatedAt.Equal(r.CreatedAt) {
		t.Fatalf("new rating should have updatedAt == createdAt, got %v / %v", r.UpdatedAt, r.CreatedAt)
	}
}

func TestBuild_EditCarriesIdentity(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	existing := &models.AnimeRating{ID: "r1", CreatedAt: created}

	r, err := Build(validInput(), existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.ID != "r1" {
		t.Fatalf("expected id r1, got %s", r.ID)
	}
	if !r.CreatedAt.Equal(created) {
		t.Fatalf("createdAt must be immutable, got %v", r.CreatedAt)
	}
	if !r.UpdatedAt.After(created) {
		t.Fatalf("updatedAt %v not refreshed", r.UpdatedAt)
	}
}

func TestBuild_OverallAlwaysRecomputed(t *testing.T) {
	// The input carries no overall field at all; whatever the client sends
	// on the wire is dropped before Build.
	input := validInput()
	input.Categories = []models.RatingCategory{{ID: "story", Value: 10}}
	r, err := Build(input, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.OverallRating != 5.0 {
		t.Fatalf("expected 5.0, got %g", r.OverallRating)
	}
}

func TestBuild_EmptyCategories(t *testing.T) {
	input := validInput()
	input.Categories = nil
	r, err := Build(input, nil)
	if err != nil {
		t.Fatalf("empty categories must build, got %v", err)
	}
	if r.OverallRating != 0 {
		t.Fatalf("expected overall 0, got %g", r.OverallRating)
	}
}

func TestBuild_ValidationFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*BuildInput)
	}{
		{"missing animeId", func(in *BuildInput) { in.AnimeID = 0 }},
		{"missing title", func(in *BuildInput) { in.AnimeTitle = "" }},
		{"missing image", func(in *BuildInput) { in.AnimeImage = "" }},
		{"category above range", func(in *BuildInput) { in.Categories[0].Value = 10.5 }},
		{"category below range", func(in *BuildInput) { in.Categories[0].Value = -0.5 }},
		{"category off the half grid", func(in *BuildInput) { in.Categories[0].Value = 7.3 }},
		{"category without id", func(in *BuildInput) { in.Categories[0].ID = "" }},
		{"duplicate category", func(in *BuildInput) { in.Categories[1].ID = in.Categories[0].ID }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			_, err := Build(input, nil)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
		})
	}
}
