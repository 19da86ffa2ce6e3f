package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"

	"github.com/poslite/backend/internal/application/report"
)

// OpenAISummarizer turns a period summary into a short plain-language
// narrative for the shop owner. Only the already-computed aggregates are
// sent to the model; no individual transactions or counterparty names
// leave the system.
type OpenAISummarizer struct {
	client *openai.Client
	model  string
}

// NewOpenAISummarizer creates a summarizer using the given API key and model
func NewOpenAISummarizer(apiKey, model string) *OpenAISummarizer {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAISummarizer{client: &client, model: model}
}

// Summarize produces a two-to-three sentence narrative of the period
func (s *OpenAISummarizer) Summarize(ctx context.Context, summary report.PeriodSummaryResponse) (string, error) {
	aggregates, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary: %w", err)
	}

	prompt := fmt.Sprintf(`You are the bookkeeper of a small retail shop.
Summarize the period below for the owner in two or three plain sentences.
Mention the sales total, how much was collected versus sold on credit, and
the best-selling product if there is one. Do not invent numbers that are
not in the data.

Period data (JSON):
%s`, aggregates)

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(s.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
	}

	resp, err := s.client.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return "", fmt.Errorf("empty response content")
	}
	return content, nil
}

// Ensure OpenAISummarizer implements Summarizer
var _ report.Summarizer = (*OpenAISummarizer)(nil)
