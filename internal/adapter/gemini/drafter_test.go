package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"chmfc/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeModels struct {
	text string
	err  error

	gotModel  string
	gotPrompt string
	gotConfig *genai.GenerateContentConfig
	calls     int
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.gotModel = model
	f.gotConfig = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.gotPrompt = contents[0].Parts[0].Text
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(f.text, genai.RoleModel),
		}},
	}, nil
}

var realMadrid = core.DraftRequest{
	Opponent:   "Real Madrid",
	Score:      "3-1",
	Highlights: "Alex scored a hat-trick",
}

func TestDraftArticle_HappyPath(t *testing.T) {
	fake := &fakeModels{text: `{"title":"CHM FC stun Real Madrid","content":"<p>A hat-trick from Alex sealed a 3-1 win.</p>"}`}
	d := newDrafter(fake, "", "CHM FC", zap.NewNop())

	draft, err := d.DraftArticle(context.Background(), realMadrid)
	require.NoError(t, err)
	assert.Equal(t, "CHM FC stun Real Madrid", draft.Title)
	assert.Contains(t, draft.Content, "<p>")

	assert.Equal(t, 1, fake.calls, "no retries")
	assert.Equal(t, "gemini-2.5-flash", fake.gotModel)
	assert.Contains(t, fake.gotPrompt, "Real Madrid")
	assert.Contains(t, fake.gotPrompt, "3-1")
	assert.Contains(t, fake.gotPrompt, "hat-trick")
	assert.Contains(t, fake.gotPrompt, "CHM FC first")

	require.NotNil(t, fake.gotConfig)
	assert.Equal(t, "application/json", fake.gotConfig.ResponseMIMEType)
	assert.ElementsMatch(t, []string{"title", "content"}, fake.gotConfig.ResponseSchema.Required)
	instruction := fake.gotConfig.SystemInstruction.Parts[0].Text
	assert.True(t, strings.Contains(instruction, `"CHM FC"`))
}

func TestDraftArticle_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"missing content", `{"title":"Only a title"}`},
		{"missing title", `{"content":"<p>body</p>"}`},
		{"not json", `Here is your article: CHM FC won`},
		{"empty", ``},
		{"plain text content", `{"title":"t","content":"no markup here"}`},
		{"wrong types", `{"title":1,"content":["<p>x</p>"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDrafter(&fakeModels{text: tt.text}, "gemini-test", "CHM FC", zap.NewNop())
			draft, err := d.DraftArticle(context.Background(), realMadrid)
			assert.Nil(t, draft)
			assert.ErrorIs(t, err, core.ErrGenerationFailed)
		})
	}
}

func TestDraftArticle_ProviderError(t *testing.T) {
	fake := &fakeModels{err: errors.New("quota exceeded")}
	d := newDrafter(fake, "", "CHM FC", zap.NewNop())

	_, err := d.DraftArticle(context.Background(), realMadrid)
	assert.ErrorIs(t, err, core.ErrGenerationFailed)
	assert.Equal(t, 1, fake.calls)
}

func TestNewDrafter_RequiresKey(t *testing.T) {
	_, err := NewDrafter(context.Background(), "", "", "CHM FC", zap.NewNop())
	assert.Error(t, err)
}
