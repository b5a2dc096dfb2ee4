package llm

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "  Seasoned engineer.  ", want: "Seasoned engineer."},
		{name: "fenced", input: "```\nSeasoned engineer.\n```", want: "Seasoned engineer."},
		{name: "fenced with language", input: "```text\nSeasoned engineer.\n```", want: "Seasoned engineer."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.input))
		})
	}
}

func TestSplitLines(t *testing.T) {
	text := "Led migration to Go\n\n- Cut latency by 40%\n  • Mentored 3 engineers  \n* Automated releases\n"

	assert.Equal(t, []string{
		"Led migration to Go",
		"Cut latency by 40%",
		"Mentored 3 engineers",
		"Automated releases",
	}, SplitLines(text))
	assert.Empty(t, SplitLines("\n \n"))
}

func TestExtractTextFromResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello "), genai.Text("world")}},
		}},
	}
	text, err := extractTextFromResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "Hello world", text)

	_, err = extractTextFromResponse(&genai.GenerateContentResponse{})
	assert.Error(t, err)

	_, err = extractTextFromResponse(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}})
	assert.Error(t, err)
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), nil, "")
	assert.Error(t, err)
}
