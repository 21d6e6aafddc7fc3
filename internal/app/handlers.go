package app

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inculture/skopelos-chatbot/internal/bot"
	"github.com/inculture/skopelos-chatbot/internal/conversation"
	domerrors "github.com/inculture/skopelos-chatbot/internal/errors"
	"github.com/inculture/skopelos-chatbot/internal/i18n"
	"github.com/inculture/skopelos-chatbot/internal/locale"
	"github.com/inculture/skopelos-chatbot/internal/navigation"
)

// chatView is the panel state a client renders.
type chatView struct {
	Locale       locale.Locale          `json:"locale"`
	Messages     []conversation.Message `json:"messages"`
	QuickReplies []string               `json:"quickReplies"`
	Labels       i18n.Labels            `json:"labels"`
}

type messageRequest struct {
	Text string `json:"text"`
}

type messageResponse struct {
	Intent     bot.Intent             `json:"intent"`
	Reply      string                 `json:"reply,omitempty"`
	Navigation *navigation.Target     `json:"navigation,omitempty"`
	Messages   []conversation.Message `json:"messages"`
}

type localeRequest struct {
	Locale string `json:"locale"`
}

func (a *Application) chatView() chatView {
	return chatView{
		Locale:       a.processor.Locale(),
		Messages:     a.processor.Messages(),
		QuickReplies: a.processor.QuickReplies(),
		Labels:       a.processor.Labels(),
	}
}

func (a *Application) getChat(c *gin.Context) {
	c.JSON(http.StatusOK, a.chatView())
}

func (a *Application) postMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.badRequest(c, "invalid_body", "request body must be JSON with a text field")
		return
	}

	res, err := a.processor.Submit(c.Request.Context(), req.Text)
	if err != nil {
		var verr *domerrors.ValidationError
		switch {
		case errors.As(err, &verr):
			a.badRequest(c, "validation", verr.Error())
		case domerrors.IsInvalidInput(err):
			a.badRequest(c, "invalid_input", "message is empty")
		default:
			a.recordHTTPError(c, "internal")
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, messageResponse{
		Intent:     res.Intent,
		Reply:      res.Reply,
		Navigation: res.Target,
		Messages:   a.processor.Messages(),
	})
}

func (a *Application) resetChat(c *gin.Context) {
	a.processor.Reset(c.Request.Context())
	c.JSON(http.StatusOK, a.chatView())
}

func (a *Application) putLocale(c *gin.Context) {
	var req localeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.badRequest(c, "invalid_body", "request body must be JSON with a locale field")
		return
	}

	l, err := locale.Parse(req.Locale)
	if err == nil {
		err = a.processor.SetLocale(c.Request.Context(), l)
	}
	switch {
	case domerrors.IsUnsupportedLocale(err):
		a.badRequest(c, "unsupported_locale", err.Error())
		return
	case err != nil:
		a.recordHTTPError(c, "internal")
		a.logger.WithError(err).ErrorContext(c.Request.Context(), "Locale change failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "locale change failed", "type": "internal"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"locale": l})
}

func (a *Application) getNavigation(c *gin.Context) {
	var since uint64
	if raw := c.Query("since"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			a.badRequest(c, "invalid_query", "since must be a non-negative integer")
			return
		}
		since = n
	}

	c.JSON(http.StatusOK, gin.H{
		"events":  a.recorder.Since(since),
		"pending": a.processor.PendingNavigation(),
	})
}

func (a *Application) getContent(c *gin.Context) {
	c.JSON(http.StatusOK, a.index.Snapshot())
}

func (a *Application) badRequest(c *gin.Context, errorType, message string) {
	a.recordHTTPError(c, errorType)
	c.JSON(http.StatusBadRequest, gin.H{"error": message, "type": errorType})
}

func (a *Application) recordHTTPError(c *gin.Context, errorType string) {
	if a.metrics != nil {
		a.metrics.RecordHTTPError(errorType, c.FullPath())
	}
}
