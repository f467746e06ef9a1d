package genai

//go:generate go run go.uber.org/mock/mockgen -source=./genai.go -destination=./mocks/genai_mock.go -package=mocks

import (
	"context"
	"fmt"
	"roomboard/config"
	"roomboard/infras/otel"
	"roomboard/shared/constant"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// Model generates text for a single prompt.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type geminiModel struct {
	client      *genai.Client
	model       string
	temperature float32
	otel        otel.Otel
}

// New returns nil when no API key is configured.
func New(cfg *config.Config, otl otel.Otel) Model {
	genaiCfg := cfg.External.GenAI
	if genaiCfg.APIKey == "" {
		log.Warn().Msg("GenAI API key not set, assistant summaries are unavailable")

		return nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  genaiCfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create GenAI client")

		return nil
	}

	log.Info().Str("model", genaiCfg.Model).Msg("GenAI client initialized")

	return &geminiModel{
		client:      client,
		model:       genaiCfg.Model,
		temperature: genaiCfg.Temperature,
		otel:        otl,
	}
}

func (m *geminiModel) Generate(ctx context.Context, prompt string) (text string, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".Generate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("model", m.model)

	resp, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(m.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return resp.Text(), nil
}
