package extractor

import (
	"regexp"
	"strings"

	"jobpulse/pkg/models"
)

// skillVocabulary maps lowercase match terms to their canonical casing. The
// list covers the technologies that show up in the bulk of software listings;
// anything outside it is only caught by the AI path.
var skillVocabulary = map[string]string{
	"javascript":    "JavaScript",
	"typescript":    "TypeScript",
	"python":        "Python",
	"golang":        "Go",
	"c++":           "C++",
	"c#":            "C#",
	"ruby":          "Ruby",
	"php":           "PHP",
	"swift":         "Swift",
	"kotlin":        "Kotlin",
	"rust":          "Rust",
	"scala":         "Scala",
	"react":         "React",
	"angular":       "Angular",
	"vue":           "Vue",
	"next.js":       "Next.js",
	"node.js":       "Node.js",
	"express":       "Express",
	"django":        "Django",
	"flask":         "Flask",
	"spring":        "Spring",
	"rails":         "Rails",
	"laravel":       "Laravel",
	".net":          ".NET",
	"sql":           "SQL",
	"postgresql":    "PostgreSQL",
	"postgres":      "PostgreSQL",
	"mysql":         "MySQL",
	"mongodb":       "MongoDB",
	"redis":         "Redis",
	"elasticsearch": "Elasticsearch",
	"kafka":         "Kafka",
	"rabbitmq":      "RabbitMQ",
	"graphql":       "GraphQL",
	"grpc":          "gRPC",
	"docker":        "Docker",
	"kubernetes":    "Kubernetes",
	"terraform":     "Terraform",
	"ansible":       "Ansible",
	"jenkins":       "Jenkins",
	"aws":           "AWS",
	"azure":         "Azure",
	"gcp":           "GCP",
	"linux":         "Linux",
	"ci/cd":         "CI/CD",
	"html":          "HTML",
	"css":           "CSS",
	"sass":          "Sass",
	"tailwind":      "Tailwind",
	"figma":         "Figma",
	"jira":          "Jira",
	"agile":         "Agile",
	"scrum":         "Scrum",
	"machine learning": "Machine Learning",
	"tensorflow":       "TensorFlow",
	"pytorch":          "PyTorch",
	"pandas":           "Pandas",
	"numpy":            "NumPy",
	"hadoop":           "Hadoop",
	"tableau":          "Tableau",
	"power bi":         "Power BI",
	"salesforce":       "Salesforce",
}

// Terms that are substrings of everyday words go here with word boundaries,
// so "javascript" does not yield Java and "excellent" does not yield Excel.
// Bare REST still collides with "the rest of", so it needs an api/ful cue.
// Single-letter languages (C, R) are left to the AI path entirely; no
// boundary saves them from "vitamin C".
var boundaryTerms = map[string]*regexp.Regexp{
	"go":    regexp.MustCompile(`(?i)\bgo\b`),
	"java":  regexp.MustCompile(`(?i)\bjava\b`),
	"git":   regexp.MustCompile(`(?i)\bgit\b`),
	"sap":   regexp.MustCompile(`(?i)\bsap\b`),
	"spark": regexp.MustCompile(`(?i)\bspark\b`),
	"excel": regexp.MustCompile(`(?i)\bexcel\b`),
	"rest":  regexp.MustCompile(`(?i)\brestful\b|\brest\s+apis?\b`),
}

var boundaryCanonical = map[string]string{
	"go":    "Go",
	"java":  "Java",
	"git":   "Git",
	"sap":   "SAP",
	"spark": "Spark",
	"excel": "Excel",
	"rest":  "REST",
}

var locationRe = regexp.MustCompile(`(?i)(?:located in|location:|based in|office in)\s+([A-Za-z][A-Za-z ,.-]{1,40})`)

// FallbackExtract derives skills from a listing by keyword scan. It is the
// degraded path used when the AI extractor is down or returns too little.
func FallbackExtract(title, description string) *models.ExtractedJobSkills {
	text := title + " " + description
	haystack := strings.ToLower(text)

	found := make([]string, 0, 8)
	seen := make(map[string]bool)

	for term, canonical := range skillVocabulary {
		if !strings.Contains(haystack, term) {
			continue
		}
		if !seen[canonical] {
			seen[canonical] = true
			found = append(found, canonical)
		}
	}

	for term, re := range boundaryTerms {
		canonical := boundaryCanonical[term]
		if seen[canonical] {
			continue
		}
		if re.MatchString(text) {
			seen[canonical] = true
			found = append(found, canonical)
		}
	}

	skills := &models.ExtractedJobSkills{
		RequiredSkills:  found,
		ExperienceLevel: inferExperienceLevel(haystack),
		IsRemote:        mentionsRemote(haystack),
	}

	if m := locationRe.FindStringSubmatch(text); len(m) > 1 {
		skills.Location = strings.TrimSpace(strings.TrimRight(m[1], " ,."))
	}

	return skills
}

func inferExperienceLevel(haystack string) string {
	switch {
	case strings.Contains(haystack, "senior") || strings.Contains(haystack, "lead ") ||
		strings.Contains(haystack, "principal") || strings.Contains(haystack, "staff engineer"):
		return "Senior"
	case strings.Contains(haystack, "junior") || strings.Contains(haystack, "entry level") ||
		strings.Contains(haystack, "entry-level") || strings.Contains(haystack, "graduate"):
		return "Junior"
	case strings.Contains(haystack, "mid-level") || strings.Contains(haystack, "mid level") ||
		strings.Contains(haystack, "intermediate"):
		return "Mid"
	default:
		return ""
	}
}

func mentionsRemote(haystack string) bool {
	return strings.Contains(haystack, "remote") ||
		strings.Contains(haystack, "work from home") ||
		strings.Contains(haystack, "wfh")
}
