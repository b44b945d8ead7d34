package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/schema"
)

const (
	logPrefix    = "gemini"
	DefaultModel = "gemini-2.5-flash"

	suggestionSeparator = "<<SUGGESTIONS>>"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

var (
	ErrEmptyResponse = fmt.Errorf("empty response from model")
	ErrEmptyMessage  = fmt.Errorf("empty message")
	ErrUnknownRole   = fmt.Errorf("unknown chat role")
)

// Turn is a message of a past conversation
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Attachment is a file sent along with a chat message
type Attachment struct {
	Name     string
	MimeType string
	Data     []byte
}

// Reply is an answer of the chat model. Follow-up questions proposed by
// the model are split out of the text.
type Reply struct {
	Text        string   `json:"text"`
	Suggestions []string `json:"suggestions"`
}

// Client talks to a generative model for image descriptions and chats
type Client struct {
	llm llms.Model
}

// New creates a client of a gemini model
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if model == "" {
		model = DefaultModel
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, err
	}

	return NewWithModel(llm), nil
}

func NewWithModel(llm llms.Model) *Client {
	return &Client{llm: llm}
}

func (c *Client) generate(ctx context.Context, messages []llms.MessageContent) (string, error) {
	resp, err := c.llm.GenerateContent(ctx, messages)
	if err != nil {
		log.WithField("prefix", logPrefix).WithError(err).Error("generate content")
		return "", err
	}

	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", ErrEmptyResponse
	}

	return resp.Choices[0].Content, nil
}

// Describe asks the model about an image
func (c *Client) Describe(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"mime":   mimeType,
		"size":   len(image),
	}).Debug("describe image")

	return c.generate(ctx, []llms.MessageContent{
		{
			Role: schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.BinaryPart(mimeType, image),
				llms.TextPart(prompt),
			},
		},
	})
}

// Chat continues a conversation with a new message. The system
// instruction is given ahead of the first user message. An attachment goes
// with the new message: images are sent to the model as they are, text
// files are added to the message and other files are only mentioned.
func (c *Client) Chat(ctx context.Context, systemInstruction string, history []Turn, message string, attachment *Attachment) (Reply, error) {
	if strings.TrimSpace(message) == "" {
		return Reply{}, ErrEmptyMessage
	}

	turns := append(append([]Turn{}, history...), Turn{Role: RoleUser, Text: message})

	messages := make([]llms.MessageContent, 0, len(turns))
	instructed := systemInstruction == ""
	for i, t := range turns {
		var role schema.ChatMessageType
		text := t.Text

		switch t.Role {
		case RoleUser:
			role = schema.ChatMessageTypeHuman
			if !instructed {
				text = systemInstruction + "\n\n" + text
				instructed = true
			}
		case RoleModel:
			role = schema.ChatMessageTypeAI
		default:
			return Reply{}, ErrUnknownRole
		}

		parts := []llms.ContentPart{llms.TextPart(text)}
		if i == len(turns)-1 && attachment != nil {
			parts = attachmentParts(text, attachment)
		}

		messages = append(messages, llms.MessageContent{
			Role:  role,
			Parts: parts,
		})
	}

	text, err := c.generate(ctx, messages)
	if err != nil {
		return Reply{}, err
	}

	answer, suggestions := ParseSuggestions(text)
	return Reply{
		Text:        answer,
		Suggestions: suggestions,
	}, nil
}

// attachmentParts returns the parts of a message carrying a file
func attachmentParts(text string, a *Attachment) []llms.ContentPart {
	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"mime":   a.MimeType,
		"size":   len(a.Data),
	}).Debug("chat attachment")

	switch {
	case strings.HasPrefix(a.MimeType, "image/"):
		return []llms.ContentPart{
			llms.TextPart(text),
			llms.BinaryPart(a.MimeType, a.Data),
		}
	case strings.HasPrefix(a.MimeType, "text/"):
		text += fmt.Sprintf("\n\nContent of %s:\n%s", a.Name, a.Data)
	default:
		text += fmt.Sprintf("\n\n[Attached file: %s (%s)]", a.Name, a.MimeType)
	}
	return []llms.ContentPart{llms.TextPart(text)}
}

// ParseSuggestions splits a model answer into the answer itself and the
// follow-up questions listed after the suggestion marker. Malformed
// suggestions are dropped.
func ParseSuggestions(text string) (string, []string) {
	suggestions := []string{}

	i := strings.Index(text, suggestionSeparator)
	if i < 0 {
		return strings.TrimSpace(text), suggestions
	}

	answer := strings.TrimSpace(text[:i])
	raw := strings.TrimSpace(text[i+len(suggestionSeparator):])

	var parsed []string
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		log.WithField("prefix", logPrefix).WithError(err).Warn("malformed suggestions")
		return answer, suggestions
	}

	for _, s := range parsed {
		if s = strings.TrimSpace(s); s != "" {
			suggestions = append(suggestions, s)
		}
	}

	return answer, suggestions
}
