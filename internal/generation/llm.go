package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-wizard/internal/llm"
	"github.com/jonathan/resume-wizard/internal/prompts"
)

const promptFile = "generation.json"

// recentRoles is how many work entries feed the summary prompt
const recentRoles = 2

// LLMGenerator implements Generator on a hosted model
type LLMGenerator struct {
	Client llm.Client
}

// NewLLMGenerator wraps client
func NewLLMGenerator(client llm.Client) *LLMGenerator {
	return &LLMGenerator{Client: client}
}

// GenerateSummary writes a 2-3 sentence professional summary from the two most recent roles and all education
func (g *LLMGenerator) GenerateSummary(ctx context.Context, req SummaryRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	roles := req.Experience
	if len(roles) > recentRoles {
		roles = roles[:recentRoles]
	}
	experience := make([]string, 0, len(roles))
	for _, w := range roles {
		experience = append(experience, fmt.Sprintf("%s at %s", w.JobTitle, w.Company))
	}
	education := make([]string, 0, len(req.Education))
	for _, e := range req.Education {
		education = append(education, fmt.Sprintf("%s from %s", e.Degree, e.School))
	}

	text, err := g.generate(ctx, "summary", llm.TierStandard, map[string]string{
		"Name":             strings.TrimSpace(req.PersonalInfo.FirstName + " " + req.PersonalInfo.LastName),
		"RecentExperience": strings.Join(experience, ", "),
		"Education":        strings.Join(education, ", "),
	})
	if err != nil {
		return "", err
	}
	return llm.StripFences(text), nil
}

// GenerateBullets writes 3-5 bullets for a role, one per returned element
func (g *LLMGenerator) GenerateBullets(ctx context.Context, req BulletsRequest) ([]string, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	responsibilities := strings.TrimSpace(req.Responsibilities)
	if responsibilities == "" {
		responsibilities = DefaultResponsibilities
	}

	text, err := g.generate(ctx, "bullets", llm.TierLite, map[string]string{
		"JobTitle":         req.JobTitle,
		"Company":          req.Company,
		"Responsibilities": responsibilities,
	})
	if err != nil {
		return nil, err
	}

	bullets := llm.SplitLines(text)
	if bullets == nil {
		bullets = []string{}
	}
	return bullets, nil
}

func (g *LLMGenerator) generate(ctx context.Context, key string, tier llm.ModelTier, data map[string]string) (string, error) {
	prompt, err := prompts.Get(promptFile, key)
	if err != nil {
		return "", err
	}

	text, err := g.Client.Generate(ctx, llm.Request{
		System:          prompt.System,
		Prompt:          prompt.Render(data),
		Tier:            tier,
		Temperature:     prompt.Temperature,
		MaxOutputTokens: prompt.MaxOutputTokens,
	})
	if err != nil {
		return "", &CollaboratorError{Operation: "generate-" + key, Cause: err}
	}
	return text, nil
}
