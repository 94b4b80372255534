package enhance

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/starford/vaultpress/internal/frontmatter"
	"github.com/starford/vaultpress/internal/images"
)

func fixedTime(t time.Time) func(string) (time.Time, error) {
	return func(string) (time.Time, error) { return t, nil }
}

func TestEnhance_FillsMissingFields(t *testing.T) {
	e := New("")
	e.modTime = fixedTime(time.Date(2024, 3, 7, 23, 30, 0, 0, time.UTC))

	got, err := e.Enhance(frontmatter.Metadata{}, "intro\n# The Heading\nbody", "/vault/my-note.md", []string{"go"})
	if err != nil {
		t.Fatalf("Enhance: %v", err)
	}
	if got.Title != "The Heading" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Description != "Description of The Heading" {
		t.Errorf("description = %q", got.Description)
	}
	if got.Date != "2024-03-07" {
		t.Errorf("date = %q, want 2024-03-07", got.Date)
	}
	if !reflect.DeepEqual(got.Tags, []string{"go"}) {
		t.Errorf("tags = %v", got.Tags)
	}
	if got.HeroImage != images.DefaultHeroFallback {
		t.Errorf("heroImage = %q", got.HeroImage)
	}
}

func TestEnhance_TitleFromFilename(t *testing.T) {
	e := New("fallback.png")
	e.modTime = fixedTime(time.Now())

	got, err := e.Enhance(frontmatter.Metadata{}, "no heading here", "/vault/my-first_post.md", nil)
	if err != nil {
		t.Fatalf("Enhance: %v", err)
	}
	if got.Title != "My First Post" {
		t.Errorf("title = %q, want %q", got.Title, "My First Post")
	}
	if got.HeroImage != "fallback.png" {
		t.Errorf("heroImage = %q", got.HeroImage)
	}
	if got.Tags == nil || len(got.Tags) != 0 {
		t.Errorf("tags = %#v, want empty non-nil", got.Tags)
	}
}

func TestEnhance_KeepsExistingAndDoesNotMutate(t *testing.T) {
	e := New("")
	e.modTime = func(string) (time.Time, error) { return time.Time{}, errors.New("must not stat") }

	existing := frontmatter.Metadata{
		Title:       "Kept",
		Description: "Mine",
		Date:        "2020-01-01",
		Tags:        []string{"a", "b"},
		HeroImage:   "../../Images/x.png",
	}
	got, err := e.Enhance(existing, "# Other", "/vault/x.md", []string{"b", "c"})
	if err != nil {
		t.Fatalf("Enhance: %v", err)
	}
	if got.Title != "Kept" || got.Description != "Mine" || got.Date != "2020-01-01" || got.HeroImage != "../../Images/x.png" {
		t.Errorf("existing fields overwritten: %+v", got)
	}
	if !reflect.DeepEqual(got.Tags, []string{"a", "b", "c"}) {
		t.Errorf("tags = %v", got.Tags)
	}
	if !reflect.DeepEqual(existing.Tags, []string{"a", "b"}) {
		t.Errorf("input mutated: %v", existing.Tags)
	}
}

func TestEnhance_Idempotent(t *testing.T) {
	e := New("")
	e.modTime = fixedTime(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC))
	content := "# Title\ntext #tag"
	tags := []string{"tag"}

	once, err := e.Enhance(frontmatter.Metadata{Tags: []string{"x"}}, content, "/v/a.md", tags)
	if err != nil {
		t.Fatalf("Enhance: %v", err)
	}
	twice, err := e.Enhance(once, content, "/v/a.md", tags)
	if err != nil {
		t.Fatalf("Enhance: %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("not idempotent:\n%+v\n%+v", once, twice)
	}
}

func TestEnhance_DateFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dated.md")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	mt := time.Date(2021, 6, 15, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, mt, mt); err != nil {
		t.Fatal(err)
	}

	got, err := New("").Enhance(frontmatter.Metadata{}, "", path, nil)
	if err != nil {
		t.Fatalf("Enhance: %v", err)
	}
	if got.Date != "2021-06-15" {
		t.Errorf("date = %q, want 2021-06-15", got.Date)
	}
}

func TestEnhance_MissingFileForDate(t *testing.T) {
	_, err := New("").Enhance(frontmatter.Metadata{}, "", filepath.Join(t.TempDir(), "gone.md"), nil)
	if err == nil {
		t.Error("expected error when modification time is unavailable")
	}
}

func TestTitleFromContent(t *testing.T) {
	cases := map[string]string{
		"# Top":               "Top",
		"text\n#   Spaced   ": "Spaced",
		"## Second level":     "",
		"#NoSpace":            "",
		"":                    "",
	}
	for in, want := range cases {
		if got := TitleFromContent(in); got != want {
			t.Errorf("TitleFromContent(%q) = %q, want %q", in, got, want)
		}
	}
}
