package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"jobpulse/internal/config"
	"jobpulse/internal/logging"
	"jobpulse/pkg/models"
	"jobpulse/pkg/utils"
)

// ClaudeProvider implements the LLM provider interface using Anthropic's Claude
type ClaudeProvider struct {
	client anthropic.Client
	config *config.Config
	logger logging.Logger
}

// NewClaudeProvider creates a new Claude provider instance
func NewClaudeProvider(cfg *config.Config) *ClaudeProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.LLM.APIKey),
	)

	return &ClaudeProvider{
		client: client,
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// ExtractSkills asks Claude for the structured requirement set of a listing
func (cp *ClaudeProvider) ExtractSkills(ctx context.Context, title, description string) (*models.ExtractedJobSkills, error) {
	startTime := time.Now()

	// Truncate long descriptions to fit token limits
	maxContentLength := cp.config.LLM.MaxTokens * 3
	if len(description) > maxContentLength {
		description = description[:maxContentLength] + "..."
	}

	prompt := cp.buildSkillExtractionPrompt(title, description)

	responseText, err := cp.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to call Claude API: %w", err)
	}

	skills, err := ParseSkillsResponse(responseText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Claude response: %w", err)
	}

	cp.logger.Info("Skill extraction completed", map[string]interface{}{
		"job_title":       title,
		"skills_found":    len(skills.RequiredSkills),
		"processing_time": time.Since(startTime).String(),
		"provider":        "claude",
	})

	return skills, nil
}

// AnalyzeMatch asks Claude for a full candidate-vs-job assessment
func (cp *ClaudeProvider) AnalyzeMatch(ctx context.Context, jobDescription string, cv *models.CandidateProfile) (*models.MatchAnalysis, error) {
	startTime := time.Now()

	maxContentLength := cp.config.LLM.MaxTokens * 3
	if len(jobDescription) > maxContentLength {
		jobDescription = jobDescription[:maxContentLength] + "..."
	}

	prompt := cp.buildMatchAnalysisPrompt(jobDescription, cv)

	responseText, err := cp.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to call Claude API: %w", err)
	}

	analysis, err := ParseAnalysisResponse(responseText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Claude response: %w", err)
	}

	cp.logger.Info("Match analysis completed", map[string]interface{}{
		"score":           analysis.Score,
		"processing_time": time.Since(startTime).String(),
		"provider":        "claude",
	})

	return analysis, nil
}

// complete sends a single user prompt and returns the first text block
func (cp *ClaudeProvider) complete(ctx context.Context, prompt string) (string, error) {
	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(cp.config.LLM.Model),
		MaxTokens:   int64(cp.config.LLM.MaxTokens),
		Temperature: anthropic.Float(float64(cp.config.LLM.Temperature)),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return "", err
	}

	if len(response.Content) == 0 {
		return "", fmt.Errorf("empty response from Claude")
	}

	var responseText string
	for _, content := range response.Content {
		textContent := content.AsText()
		responseText = textContent.Text
		break
	}

	if responseText == "" {
		return "", fmt.Errorf("no text content in Claude response")
	}

	return responseText, nil
}

// buildSkillExtractionPrompt creates the prompt for structured skill extraction
func (cp *ClaudeProvider) buildSkillExtractionPrompt(title, description string) string {
	return fmt.Sprintf(`You are a job posting analyzer. Extract the requirements from the job posting below and return them as a JSON object.

Return a valid JSON object with exactly these fields:

{
  "required_skills": ["array of strings - concrete skills, technologies and tools the posting requires"],
  "experience_level": "string - one of 'Junior', 'Mid', 'Senior', or empty string if not stated",
  "location": "string - the work location, or empty string if not stated",
  "is_remote": boolean - true if the role is fully remote
}

IMPORTANT RULES:
1. Return ONLY valid JSON, no additional text or explanation
2. List each skill once, using its common name (e.g. "PostgreSQL" not "postgres databases")
3. Do not invent skills that are not mentioned in the posting
4. If information is not found, use empty string "" for strings, empty array [] for arrays, and false for booleans

JOB TITLE: %s

JOB POSTING CONTENT:
%s`, title, description)
}

// buildMatchAnalysisPrompt creates the prompt for the deep match assessment
func (cp *ClaudeProvider) buildMatchAnalysisPrompt(jobDescription string, cv *models.CandidateProfile) string {
	return fmt.Sprintf(`You are a career advisor. Assess how well the candidate below fits the job posting and return the assessment as a JSON object.

Return a valid JSON object with exactly these fields:

{
  "score": number - overall fit from 0 to 100,
  "match_reasons": ["array of strings - the candidate's strongest points for this role"],
  "missing_skills": ["array of strings - required skills the candidate lacks"],
  "advice": "string - one or two sentences of concrete advice for this application",
  "category_scores": {
    "technical_skills": number - 0 to 100,
    "experience": number - 0 to 100,
    "education": number - 0 to 100,
    "soft_skills": number - 0 to 100
  }
}

IMPORTANT RULES:
1. Return ONLY valid JSON, no additional text or explanation
2. Base the assessment only on the information provided
3. Keep match_reasons and missing_skills to at most five entries each

CANDIDATE SKILLS: %s
CANDIDATE EXPERIENCE: %s
CANDIDATE LOCATION: %s

JOB POSTING CONTENT:
%s`, strings.Join(cv.Skills, ", "), cv.Experience, cv.Location, jobDescription)
}

// stripCodeFences removes markdown code fences Claude sometimes wraps JSON in
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

// ParseSkillsResponse parses and validates a skill extraction response
func ParseSkillsResponse(responseText string) (*models.ExtractedJobSkills, error) {
	responseText = stripCodeFences(responseText)

	var skills models.ExtractedJobSkills
	if err := json.Unmarshal([]byte(responseText), &skills); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response from Claude: %w, response: %s", err, responseText)
	}

	// Drop blank entries and duplicates, keeping the response order
	seen := make(map[string]bool, len(skills.RequiredSkills))
	cleaned := make([]string, 0, len(skills.RequiredSkills))
	for _, skill := range skills.RequiredSkills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		key := utils.NormalizeTerm(skill)
		if seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, skill)
	}
	skills.RequiredSkills = cleaned

	switch strings.ToLower(strings.TrimSpace(skills.ExperienceLevel)) {
	case "junior", "entry", "entry-level":
		skills.ExperienceLevel = "Junior"
	case "mid", "intermediate", "mid-level":
		skills.ExperienceLevel = "Mid"
	case "senior", "lead", "principal":
		skills.ExperienceLevel = "Senior"
	default:
		skills.ExperienceLevel = ""
	}

	return &skills, nil
}

// ParseAnalysisResponse parses and validates a match analysis response
func ParseAnalysisResponse(responseText string) (*models.MatchAnalysis, error) {
	responseText = stripCodeFences(responseText)

	var analysis models.MatchAnalysis
	if err := json.Unmarshal([]byte(responseText), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response from Claude: %w, response: %s", err, responseText)
	}

	analysis.Score = utils.ClampScore(analysis.Score)
	if analysis.MatchReasons == nil {
		analysis.MatchReasons = []string{}
	}
	if analysis.MissingSkills == nil {
		analysis.MissingSkills = []string{}
	}
	if analysis.CategoryScores != nil {
		analysis.CategoryScores.TechnicalSkills = utils.ClampScore(analysis.CategoryScores.TechnicalSkills)
		analysis.CategoryScores.Experience = utils.ClampScore(analysis.CategoryScores.Experience)
		analysis.CategoryScores.Education = utils.ClampScore(analysis.CategoryScores.Education)
		analysis.CategoryScores.SoftSkills = utils.ClampScore(analysis.CategoryScores.SoftSkills)
	}

	return &analysis, nil
}

// IsHealthy checks if the Claude provider is healthy and available
func (cp *ClaudeProvider) IsHealthy(ctx context.Context) error {
	if cp.config.LLM.APIKey == "" {
		return fmt.Errorf("Claude API key not configured - set LLM_API_KEY environment variable")
	}

	_, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(cp.config.LLM.Model),
		MaxTokens: 10,
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: "Hello"},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})

	if err != nil {
		return fmt.Errorf("Claude API health check failed: %w", err)
	}

	return nil
}

// GetProviderName returns the name of the LLM provider
func (cp *ClaudeProvider) GetProviderName() string {
	return "claude"
}
