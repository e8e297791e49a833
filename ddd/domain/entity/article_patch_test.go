package entity

import "testing"

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }

func baseArticle() *Article {
	return &Article{
		Title:           "Hello",
		Body:            "<p>Body</p>",
		Excerpt:         "Body",
		MetaTitle:       "Hello | Blog",
		Tags:            []string{"go"},
		NewsType:        NewsTypeCountrySpecific,
		TargetCountries: []string{"NG", "GH"},
	}
}

func TestContentChanged(t *testing.T) {
	ct := NewsTypeCountrySpecific
	gen := NewsTypeGeneral
	tests := []struct {
		name  string
		patch ArticlePatch
		want  bool
	}{
		{"empty patch", ArticlePatch{}, false},
		{"same title", ArticlePatch{Title: strp("Hello")}, false},
		{"whitespace only", ArticlePatch{Title: strp("  Hello \n"), Body: strp(" <p>Body</p>")}, false},
		{"title changed", ArticlePatch{Title: strp("Hello!")}, true},
		{"body changed", ArticlePatch{Body: strp("<p>Other</p>")}, true},
		{"excerpt changed", ArticlePatch{Excerpt: strp("x")}, true},
		{"meta description added", ArticlePatch{MetaDescription: strp("desc")}, true},
		{"featured flag", ArticlePatch{IsFeatured: boolp(true)}, true},
		{"featured unchanged", ArticlePatch{IsFeatured: boolp(false)}, false},
		{"is_news flag", ArticlePatch{IsNews: boolp(true)}, true},
		{"news type", ArticlePatch{NewsType: &gen}, true},
		{"countries reordered", ArticlePatch{NewsType: &ct, TargetCountries: &[]string{"gh", "NG"}}, false},
		{"countries changed", ArticlePatch{TargetCountries: &[]string{"NG"}}, true},
		{"tags only", ArticlePatch{Tags: &[]string{"rust"}}, false},
		{"image upload", ArticlePatch{NewImageUploaded: true}, true},
		{"approval only", ArticlePatch{Approved: boolp(true)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.patch.ContentChanged(baseArticle()); got != tt.want {
				t.Fatalf("ContentChanged() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyClearsCountriesForGeneralNews(t *testing.T) {
	a := baseArticle()
	gen := NewsTypeGeneral
	p := ArticlePatch{Title: strp("  New title "), NewsType: &gen, Tags: &[]string{"a", "b"}}
	p.Apply(a)
	if a.Title != "New title" {
		t.Fatalf("title = %q", a.Title)
	}
	if a.TargetCountries != nil {
		t.Fatalf("countries should be cleared, got %v", a.TargetCountries)
	}
	if len(a.Tags) != 2 {
		t.Fatalf("tags = %v", a.Tags)
	}
}
