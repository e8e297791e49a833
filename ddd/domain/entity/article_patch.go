package entity

import (
	"sort"
	"strings"
)

// ArticlePatch carries the fields of an update request. A nil pointer keeps
// the stored value.
type ArticlePatch struct {
	Title           *string
	Body            *string
	Excerpt         *string
	FeaturedImage   *string
	MetaTitle       *string
	MetaDescription *string
	Tags            *[]string
	IsFeatured      *bool
	IsNews          *bool
	NewsType        *NewsType
	TargetCountries *[]string
	// NewImageUploaded is set when the request carried a fresh image upload.
	NewImageUploaded bool
	// Approved is the approval decision requested by the caller, if any.
	Approved *bool
}

// ContentChanged reports whether applying p to a would change any
// content-relevant field. Strings compare after trimming whitespace and
// target countries compare as sets. Tags are not content-relevant.
func (p *ArticlePatch) ContentChanged(a *Article) bool {
	if p.NewImageUploaded {
		return true
	}
	if stringChanged(p.Title, a.Title) ||
		stringChanged(p.Body, a.Body) ||
		stringChanged(p.Excerpt, a.Excerpt) ||
		stringChanged(p.MetaTitle, a.MetaTitle) ||
		stringChanged(p.MetaDescription, a.MetaDescription) ||
		stringChanged(p.FeaturedImage, a.FeaturedImage) {
		return true
	}
	if p.IsFeatured != nil && *p.IsFeatured != a.IsFeatured {
		return true
	}
	if p.IsNews != nil && *p.IsNews != a.IsNews {
		return true
	}
	newsType := a.NewsType
	if p.NewsType != nil {
		newsType = *p.NewsType
	}
	if newsType != a.NewsType {
		return true
	}
	if p.TargetCountries != nil && newsType == NewsTypeCountrySpecific {
		return !sameSet(*p.TargetCountries, a.TargetCountries)
	}
	return false
}

// Apply writes the patch onto a. Workflow fields are left to the caller.
func (p *ArticlePatch) Apply(a *Article) {
	setString(&a.Title, p.Title)
	setString(&a.Body, p.Body)
	setString(&a.Excerpt, p.Excerpt)
	setString(&a.FeaturedImage, p.FeaturedImage)
	setString(&a.MetaTitle, p.MetaTitle)
	setString(&a.MetaDescription, p.MetaDescription)
	if p.Tags != nil {
		a.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.IsFeatured != nil {
		a.IsFeatured = *p.IsFeatured
	}
	if p.IsNews != nil {
		a.IsNews = *p.IsNews
	}
	if p.NewsType != nil {
		a.NewsType = *p.NewsType
	}
	if p.TargetCountries != nil {
		a.TargetCountries = append([]string(nil), (*p.TargetCountries)...)
	}
	a.NormalizeClassification()
}

// TitleChanged reports whether the patch carries a title different from the stored one.
func (p *ArticlePatch) TitleChanged(a *Article) bool {
	return stringChanged(p.Title, a.Title)
}

func stringChanged(incoming *string, stored string) bool {
	if incoming == nil {
		return false
	}
	return strings.TrimSpace(*incoming) != strings.TrimSpace(stored)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func sameSet(a, b []string) bool {
	x, y := normalizeSet(a), normalizeSet(b)
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

func normalizeSet(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.ToUpper(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
