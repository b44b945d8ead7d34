package gemini

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

type stubModel struct {
	answer   string
	err      error
	empty    bool
	messages []llms.MessageContent
}

func (m *stubModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.messages = messages
	if m.err != nil {
		return nil, m.err
	}
	if m.empty {
		return &llms.ContentResponse{}, nil
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: m.answer}},
	}, nil
}

func (m *stubModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func TestDescribe(t *testing.T) {
	m := &stubModel{answer: "HIGH RISK. A Biomphalaria snail."}
	c := NewWithModel(m)

	image := []byte{0xff, 0xd8, 0xff}
	text, err := c.Describe(context.Background(), image, "image/jpeg", "what is it?")
	assert.NoError(t, err)
	assert.Equal(t, "HIGH RISK. A Biomphalaria snail.", text)

	assert.Len(t, m.messages, 1)
	assert.Equal(t, schema.ChatMessageTypeHuman, m.messages[0].Role)
	assert.Equal(t, []llms.ContentPart{
		llms.BinaryPart("image/jpeg", image),
		llms.TextPart("what is it?"),
	}, m.messages[0].Parts)
}

func TestDescribeErrors(t *testing.T) {
	c := NewWithModel(&stubModel{err: fmt.Errorf("quota exceeded")})
	_, err := c.Describe(context.Background(), []byte{1}, "image/png", "?")
	assert.EqualError(t, err, "quota exceeded")

	c = NewWithModel(&stubModel{empty: true})
	_, err = c.Describe(context.Background(), []byte{1}, "image/png", "?")
	assert.Equal(t, ErrEmptyResponse, err)
}

func TestChat(t *testing.T) {
	m := &stubModel{answer: "Praziquantel treats it.\n<<SUGGESTIONS>>[\"How is it spread?\", \"Is it curable?\", \"Who is at risk?\"]"}
	c := NewWithModel(m)

	reply, err := c.Chat(context.Background(), "be helpful", []Turn{
		{Role: RoleUser, Text: "hi"},
		{Role: RoleModel, Text: "hello"},
	}, "how is it treated?", nil)
	assert.NoError(t, err)
	assert.Equal(t, "Praziquantel treats it.", reply.Text)
	assert.Equal(t, []string{"How is it spread?", "Is it curable?", "Who is at risk?"}, reply.Suggestions)

	assert.Len(t, m.messages, 3)
	assert.Equal(t, schema.ChatMessageTypeHuman, m.messages[0].Role)
	assert.Equal(t, []llms.ContentPart{llms.TextPart("be helpful\n\nhi")}, m.messages[0].Parts)
	assert.Equal(t, schema.ChatMessageTypeAI, m.messages[1].Role)
	assert.Equal(t, []llms.ContentPart{llms.TextPart("hello")}, m.messages[1].Parts)
	assert.Equal(t, []llms.ContentPart{llms.TextPart("how is it treated?")}, m.messages[2].Parts)
}

func TestChatWithoutHistory(t *testing.T) {
	m := &stubModel{answer: "Avoid wading in lakes."}
	c := NewWithModel(m)

	reply, err := c.Chat(context.Background(), "be helpful", nil, "how to prevent it?", nil)
	assert.NoError(t, err)
	assert.Equal(t, "Avoid wading in lakes.", reply.Text)
	assert.Empty(t, reply.Suggestions)
	assert.Equal(t, []llms.ContentPart{llms.TextPart("be helpful\n\nhow to prevent it?")}, m.messages[0].Parts)
}

func TestChatErrors(t *testing.T) {
	c := NewWithModel(&stubModel{})

	_, err := c.Chat(context.Background(), "", nil, "  ", nil)
	assert.Equal(t, ErrEmptyMessage, err)

	_, err = c.Chat(context.Background(), "", []Turn{{Role: "system", Text: "x"}}, "hi", nil)
	assert.Equal(t, ErrUnknownRole, err)
}

func TestChatWithImage(t *testing.T) {
	m := &stubModel{answer: "This looks like a Biomphalaria snail."}
	c := NewWithModel(m)

	image := []byte{0xff, 0xd8, 0xff}
	reply, err := c.Chat(context.Background(), "be helpful", []Turn{
		{Role: RoleUser, Text: "hi"},
		{Role: RoleModel, Text: "hello"},
	}, "what is in this photo?", &Attachment{Name: "snail.jpg", MimeType: "image/jpeg", Data: image})
	assert.NoError(t, err)
	assert.Equal(t, "This looks like a Biomphalaria snail.", reply.Text)

	assert.Len(t, m.messages, 3)
	assert.Equal(t, []llms.ContentPart{llms.TextPart("be helpful\n\nhi")}, m.messages[0].Parts)
	assert.Equal(t, []llms.ContentPart{
		llms.TextPart("what is in this photo?"),
		llms.BinaryPart("image/jpeg", image),
	}, m.messages[2].Parts)
}

func TestChatWithTextFile(t *testing.T) {
	m := &stubModel{answer: "The report shows eggs in the sample."}
	c := NewWithModel(m)

	_, err := c.Chat(context.Background(), "be helpful", nil, "read my report", &Attachment{
		Name:     "report.txt",
		MimeType: "text/plain; charset=utf-8",
		Data:     []byte("S. mansoni eggs seen"),
	})
	assert.NoError(t, err)
	assert.Equal(t, []llms.ContentPart{
		llms.TextPart("be helpful\n\nread my report\n\nContent of report.txt:\nS. mansoni eggs seen"),
	}, m.messages[0].Parts)
}

func TestChatWithOtherFile(t *testing.T) {
	m := &stubModel{answer: "I can not open it."}
	c := NewWithModel(m)

	_, err := c.Chat(context.Background(), "", nil, "see attached", &Attachment{
		Name:     "lab.pdf",
		MimeType: "application/pdf",
		Data:     []byte("%PDF-1.4"),
	})
	assert.NoError(t, err)
	assert.Equal(t, []llms.ContentPart{
		llms.TextPart("see attached\n\n[Attached file: lab.pdf (application/pdf)]"),
	}, m.messages[0].Parts)
}

func TestParseSuggestions(t *testing.T) {
	cases := []struct {
		text        string
		answer      string
		suggestions []string
	}{
		{"plain answer", "plain answer", []string{}},
		{"answer <<SUGGESTIONS>>[\"a\", \"b\"]", "answer", []string{"a", "b"}},
		{"answer <<SUGGESTIONS>>[\"a\", \"", "answer", []string{}},
		{"answer <<SUGGESTIONS>>[\" \", \"c\"]", "answer", []string{"c"}},
	}

	for _, c := range cases {
		answer, suggestions := ParseSuggestions(c.text)
		assert.Equal(t, c.answer, answer, c.text)
		assert.Equal(t, c.suggestions, suggestions, c.text)
	}
}
