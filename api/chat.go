package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/schisto-api/external/gemini"
	"github.com/bitmark-inc/schisto-api/store"
	"github.com/bitmark-inc/schisto-api/utils"
)

const maxAttachmentSize = 10 << 20

var errAttachmentTooLarge = fmt.Errorf("attachment too large")

type chatParams struct {
	Message  string        `json:"message"`
	Language string        `json:"language"`
	History  []gemini.Turn `json:"history"`
}

// readChatForm reads a chat request sent as a multipart form. The history
// is a json encoded field and the file is optional.
func readChatForm(c *gin.Context, params *chatParams) (*gemini.Attachment, error) {
	params.Message = c.PostForm("message")
	params.Language = c.PostForm("language")
	if history := c.PostForm("history"); history != "" {
		if err := json.Unmarshal([]byte(history), &params.History); err != nil {
			return nil, err
		}
	}

	file, header, err := c.Request.FormFile("file")
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(file, maxAttachmentSize+1))
	if err != nil {
		return nil, err
	}
	if n > maxAttachmentSize {
		return nil, errAttachmentTooLarge
	}

	data := buf.Bytes()
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}

	return &gemini.Attachment{
		Name:     header.Filename,
		MimeType: mimeType,
		Data:     data,
	}, nil
}

// chat is the API to ask the health assistant. A request is either json or
// a multipart form carrying a file for the assistant to analyze. Free users
// are limited to a number of prompts. A prompt is taken before asking the
// model and given back if the model fails.
func (s *Server) chat(c *gin.Context) {
	logger := log.WithField("api", "chat")

	profile, ok := currentProfile(c)
	if !ok {
		return
	}

	var (
		params     chatParams
		attachment *gemini.Attachment
	)

	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		var err error
		attachment, err = readChatForm(c, &params)
		if err == errAttachmentTooLarge {
			abortWithEncoding(c, http.StatusRequestEntityTooLarge, errorAttachmentTooLarge)
			return
		}
		if err != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
			return
		}
	} else if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	if params.Message == "" && attachment == nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	lang := utils.NormalizeLanguage(params.Language)

	failure := "chat_error"
	message := params.Message
	if attachment != nil {
		failure = "chat_attachment_error"
		message = utils.AttachmentPrompt(lang, attachment.Name)
		if params.Message != "" {
			message += "\n\n" + params.Message
		}
	}

	if s.chatbot == nil {
		abortWithEncoding(c, http.StatusServiceUnavailable,
			errorChatUnavailable.withMessage(utils.Localize(lang, failure)))
		return
	}

	quotaExceeded := func() {
		s.metrics.Prompt("quota_exceeded")
		abortWithEncoding(c, http.StatusPaymentRequired,
			errorPromptQuotaExceeded.withMessage(utils.QuotaExceededMessage(lang, s.freePromptLimit)))
	}

	if !profile.CanPrompt(s.freePromptLimit) {
		quotaExceeded()
		return
	}

	if err := s.store.ReservePrompt(profile.ID, s.freePromptLimit); err != nil {
		if err == store.ErrPromptQuotaExceeded {
			quotaExceeded()
			return
		}
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	reply, err := s.chatbot.Chat(c.Request.Context(), utils.ChatSystemInstruction(lang), params.History, message, attachment)
	if err != nil {
		if err := s.store.ReleasePrompt(profile.ID); err != nil {
			logger.WithError(err).Error("release prompt")
		}
	}
	if err == gemini.ErrUnknownRole || err == gemini.ErrEmptyMessage {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}
	if err != nil {
		s.metrics.Prompt("error")
		logger.WithError(err).Error("chat")
		abortWithEncoding(c, http.StatusBadGateway,
			errorChatUnavailable.withMessage(utils.Localize(lang, failure)), err)
		return
	}
	s.metrics.Prompt("answered")

	c.JSON(http.StatusOK, gin.H{
		"result": gin.H{
			"text":         reply.Text,
			"suggestions":  reply.Suggestions,
			"prompt_count": profile.PromptCount + 1,
		},
	})
}
