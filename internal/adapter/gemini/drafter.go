package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"chmfc/internal/core"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// contentGenerator is the part of genai.Models the drafter calls
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var htmlTag = regexp.MustCompile(`<[a-zA-Z][^>]*>`)

// Drafter writes match reports with Gemini using a structured JSON response
type Drafter struct {
	models   contentGenerator
	model    string
	clubName string
	logger   *zap.Logger
}

// NewDrafter creates a Gemini-backed drafter. The API key is required.
func NewDrafter(ctx context.Context, apiKey, model, clubName string, logger *zap.Logger) (*Drafter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return newDrafter(client.Models, model, clubName, logger), nil
}

func newDrafter(models contentGenerator, model, clubName string, logger *zap.Logger) *Drafter {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Drafter{models: models, model: model, clubName: clubName, logger: logger}
}

var _ core.ArticleDrafter = (*Drafter)(nil)

func (d *Drafter) systemInstruction() string {
	return fmt.Sprintf(`You are a sports journalist for the football club %q. Your task is to write a news article about a recent match.
You will be given the opponent, the final score and some key highlights.
Generate a compelling title and a full news article that is engaging for fans, written in a professional journalistic style, and summarizes the match.
The team you are writing for is %q. The score is always given with %s first (a score of "3-1" means %s won 3-1).
The content must be a few paragraphs of HTML, using <p> tags.`, d.clubName, d.clubName, d.clubName, d.clubName)
}

func (d *Drafter) prompt(req core.DraftRequest) string {
	var b strings.Builder
	b.WriteString("Match Details:\n")
	fmt.Fprintf(&b, "- Opponent: %s\n", req.Opponent)
	fmt.Fprintf(&b, "- Final Score (%s first): %s\n", d.clubName, req.Score)
	fmt.Fprintf(&b, "- Key Highlights: %s\n", req.Highlights)
	return b.String()
}

func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title": {
				Type:        genai.TypeString,
				Description: "A compelling and engaging title for the news article.",
			},
			"content": {
				Type:        genai.TypeString,
				Description: "The full article in an engaging journalistic style, formatted as HTML.",
			},
		},
		Required: []string{"title", "content"},
	}
}

// DraftArticle makes a single generation call. Any response that does not
// match the title/content schema is reported as core.ErrGenerationFailed.
func (d *Drafter) DraftArticle(ctx context.Context, req core.DraftRequest) (*core.ArticleDraft, error) {
	resp, err := d.models.GenerateContent(ctx, d.model,
		[]*genai.Content{genai.NewContentFromText(d.prompt(req), genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(d.systemInstruction(), genai.RoleUser),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    responseSchema(),
		},
	)
	if err != nil {
		d.logger.Error("[GEMINI] generate failed", zap.String("opponent", req.Opponent), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", core.ErrGenerationFailed, err)
	}

	return parseDraft(resp)
}

func parseDraft(resp *genai.GenerateContentResponse) (*core.ArticleDraft, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: empty response", core.ErrGenerationFailed)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", core.ErrGenerationFailed)
	}

	var draft core.ArticleDraft
	if err := json.Unmarshal([]byte(text), &draft); err != nil {
		return nil, fmt.Errorf("%w: response is not valid JSON: %v", core.ErrGenerationFailed, err)
	}

	draft.Title = strings.TrimSpace(draft.Title)
	draft.Content = strings.TrimSpace(draft.Content)
	if draft.Title == "" || draft.Content == "" {
		return nil, fmt.Errorf("%w: title and content are required", core.ErrGenerationFailed)
	}
	if !htmlTag.MatchString(draft.Content) {
		return nil, fmt.Errorf("%w: content is not HTML", core.ErrGenerationFailed)
	}

	return &draft, nil
}
