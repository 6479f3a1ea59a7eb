package adzuna

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobpulse/pkg/models"
)

// currencyByCountry maps a source country code to the currency its salary
// figures are denominated in.
var currencyByCountry = map[string]string{
	"gb": "GBP",
	"us": "USD",
	"at": "EUR",
	"au": "AUD",
	"be": "EUR",
	"br": "BRL",
	"ca": "CAD",
	"ch": "CHF",
	"de": "EUR",
	"es": "EUR",
	"fr": "EUR",
	"in": "INR",
	"it": "EUR",
	"mx": "MXN",
	"nl": "EUR",
	"nz": "NZD",
	"pl": "PLN",
	"sg": "SGD",
	"za": "ZAR",
}

var whitespaceRe = regexp.MustCompile(`\s+`)

var remoteKeywords = []string{"remote", "work from home", "wfh", "anywhere", "fully distributed"}

var hybridKeywords = []string{"hybrid", "flexible working", "partially remote"}

// normalizeJob converts a raw source record into the canonical job shape.
func normalizeJob(raw rawJob, country string) models.NormalizedJob {
	job := models.NormalizedJob{
		ID:           raw.ID.String(),
		Title:        strings.TrimSpace(raw.Title),
		Company:      strings.TrimSpace(raw.Company.DisplayName),
		Location:     locationString(raw.Location),
		Description:  StripHTML(raw.Description),
		ContractType: raw.ContractType,
		ContractTime: raw.ContractTime,
		Category:     raw.Category.Label,
		URL:          raw.RedirectURL,
		Source:       models.JobSourceAdzuna,
	}

	job.LocationType = inferLocationType(raw.Title, raw.Description, job.Location)

	if raw.SalaryMin > 0 || raw.SalaryMax > 0 {
		job.Salary = &models.Salary{
			Min:         raw.SalaryMin,
			Max:         raw.SalaryMax,
			Currency:    currencyForCountry(country),
			IsPredicted: raw.SalaryIsPredicted == "1",
		}
	}

	if raw.Created != "" {
		if created, err := time.Parse(time.RFC3339, raw.Created); err == nil {
			job.PostedDate = created
		}
	}

	return job
}

func currencyForCountry(country string) string {
	if currency, ok := currencyByCountry[strings.ToLower(country)]; ok {
		return currency
	}
	return "USD"
}

func locationString(loc rawLocation) string {
	if loc.DisplayName != "" {
		return loc.DisplayName
	}
	return strings.Join(loc.Area, ", ")
}

// inferLocationType classifies a listing as remote, hybrid or onsite from
// keyword cues in the title, description and location text.
func inferLocationType(title, description, location string) models.LocationType {
	haystack := strings.ToLower(title + " " + description + " " + location)

	for _, kw := range remoteKeywords {
		if strings.Contains(haystack, kw) {
			// A remote mention alongside a hybrid one means hybrid.
			for _, hk := range hybridKeywords {
				if strings.Contains(haystack, hk) {
					return models.LocationHybrid
				}
			}
			return models.LocationRemote
		}
	}

	for _, kw := range hybridKeywords {
		if strings.Contains(haystack, kw) {
			return models.LocationHybrid
		}
	}

	return models.LocationOnsite
}

// mentionsRemote reports whether a listing's text carries any remote cue.
func mentionsRemote(title, description string) bool {
	haystack := strings.ToLower(title + " " + description)
	for _, kw := range remoteKeywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// StripHTML renders HTML fragments down to collapsed plain text. Inputs that
// are already plain text pass through with whitespace normalized.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}

	text := s
	if strings.ContainsAny(s, "<>") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
		if err == nil {
			text = doc.Text()
		}
	}

	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
