package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/inculture/skopelos-chatbot/internal/content"
	"github.com/inculture/skopelos-chatbot/internal/conversation"
	"github.com/inculture/skopelos-chatbot/internal/ctxutil"
	domerrors "github.com/inculture/skopelos-chatbot/internal/errors"
	"github.com/inculture/skopelos-chatbot/internal/i18n"
	"github.com/inculture/skopelos-chatbot/internal/locale"
	"github.com/inculture/skopelos-chatbot/internal/logger"
	"github.com/inculture/skopelos-chatbot/internal/metrics"
	"github.com/inculture/skopelos-chatbot/internal/navigation"
	"github.com/inculture/skopelos-chatbot/internal/stringutil"
	"github.com/inculture/skopelos-chatbot/internal/weather"
)

// DefaultMaxMessageLength bounds a single message, in characters.
const DefaultMaxMessageLength = 500

// ChapterSource supplies the current chapter catalog.
type ChapterSource interface {
	Chapters() []content.Chapter
}

// WeatherSource supplies the latest conditions, or nil.
type WeatherSource interface {
	Current() *weather.Current
}

// Refresher reloads locale-dependent data.
type Refresher interface {
	Refresh(ctx context.Context, l locale.Locale) error
}

// Processor is the conversation panel: it owns the transcript, the
// navigation dispatcher and the active locale, and runs the submit path.
// Calls are serialized; one user talks to one panel.
type Processor struct {
	resolver   *Registry
	chapters   ChapterSource
	weather    WeatherSource
	refreshers []Refresher
	navigator  navigation.Navigator
	delay      time.Duration
	maxLen     int
	logger     *logger.Logger
	metrics    *metrics.Metrics

	mu         sync.Mutex
	locale     locale.Locale
	transcript *conversation.Transcript
	dispatcher *navigation.Dispatcher

	background sync.WaitGroup
}

// ProcessorConfig holds configuration for creating a new Processor.
type ProcessorConfig struct {
	Resolver         *Registry
	Chapters         ChapterSource
	Weather          WeatherSource
	Refreshers       []Refresher
	Navigator        navigation.Navigator
	NavigationDelay  time.Duration
	MaxMessageLength int
	Locale           locale.Locale
	Logger           *logger.Logger
	Metrics          *metrics.Metrics
}

// NewProcessor creates a processor with a freshly greeted transcript.
func NewProcessor(cfg ProcessorConfig) *Processor {
	l := cfg.Locale
	if !l.IsValid() {
		l = locale.Default
	}
	maxLen := cfg.MaxMessageLength
	if maxLen <= 0 {
		maxLen = DefaultMaxMessageLength
	}
	navigator := cfg.Navigator
	if navigator == nil {
		navigator = navigation.NavigatorFunc(func(navigation.Route, navigation.Params) {})
	}

	p := &Processor{
		resolver:   cfg.Resolver,
		chapters:   cfg.Chapters,
		weather:    cfg.Weather,
		refreshers: cfg.Refreshers,
		navigator:  navigator,
		delay:      cfg.NavigationDelay,
		maxLen:     maxLen,
		logger:     cfg.Logger.WithModule("bot"),
		metrics:    cfg.Metrics,
		locale:     l,
		transcript: conversation.NewTranscript(i18n.Get(l).Greeting),
	}
	p.dispatcher = p.newDispatcher()
	p.transcript.OnAppend(p.onTurn)
	if p.metrics != nil {
		p.metrics.SetTranscriptTurns(p.transcript.Len())
	}
	return p
}

// onTurn runs after every transcript append, outside the transcript lock.
func (p *Processor) onTurn(msg conversation.Message) {
	turns := p.transcript.Len()
	if p.metrics != nil {
		p.metrics.SetTranscriptTurns(turns)
	}
	p.logger.WithField("origin", msg.Origin).WithField("turns", turns).Debug("Transcript turn appended")
}

func (p *Processor) newDispatcher() *navigation.Dispatcher {
	d := navigation.NewDispatcher(p.navigator, p.delay)
	d.SetMetrics(p.metrics)
	return d
}

// Submit handles one user message, typed or tapped as a quick reply.
// Blank messages, messages that normalize to nothing and oversized
// messages are rejected without touching the transcript. Otherwise the raw
// text is appended as a user turn and the resolved intent either appends a
// bot turn or issues a deep link.
func (p *Processor) Submit(ctx context.Context, text string) (Result, error) {
	if stringutil.IsBlank(text) {
		return Result{}, fmt.Errorf("%w: empty message", domerrors.ErrInvalidInput)
	}
	trimmed := strings.TrimSpace(text)
	if n := utf8.RuneCountInString(trimmed); n > p.maxLen {
		return Result{}, domerrors.NewValidationError("text",
			fmt.Sprintf("message has %d characters, maximum is %d", n, p.maxLen))
	}
	normalized := stringutil.Normalize(trimmed)
	if normalized == "" {
		return Result{}, fmt.Errorf("%w: message has no matchable text", domerrors.ErrInvalidInput)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	start := time.Now()
	p.transcript.AppendUser(text)

	req := Request{Text: normalized, Locale: p.locale}
	if p.chapters != nil {
		req.Chapters = p.chapters.Chapters()
	}
	if p.weather != nil {
		req.Weather = p.weather.Current()
	}

	res := p.resolver.Resolve(req)
	if res.Target != nil {
		// Navigation answers with a deep link only; no bot turn.
		p.dispatcher.Dispatch(*res.Target)
	} else {
		p.transcript.AppendBot(res.Reply)
	}
	duration := time.Since(start)

	if p.metrics != nil {
		p.metrics.RecordMessage(string(res.Intent), duration.Seconds())
	}
	log := p.logger.WithField("intent", string(res.Intent)).WithField("locale", p.locale.String())
	if res.Keyword != "" {
		log = log.WithField("keyword", res.Keyword)
	}
	log.DebugContext(ctx, "Message resolved")

	return res, nil
}

// QuickReplies returns the canned chips for the active locale.
func (p *Processor) QuickReplies() []string {
	return i18n.QuickReplies(p.Locale())
}

// Labels returns the panel labels for the active locale.
func (p *Processor) Labels() i18n.Labels {
	return i18n.Get(p.Locale()).Labels
}

// Locale returns the active locale.
func (p *Processor) Locale() locale.Locale {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.locale
}

// Transcript returns the live transcript.
func (p *Processor) Transcript() *conversation.Transcript {
	return p.transcript
}

// Messages returns a copy of the transcript.
func (p *Processor) Messages() []conversation.Message {
	return p.transcript.Messages()
}

// PendingNavigation returns the number of deep links waiting for their delay.
func (p *Processor) PendingNavigation() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dispatcher.Pending()
}

// Reset closes and reopens the panel: pending deep links are cancelled and
// the transcript goes back to a single greeting in the active locale.
func (p *Processor) Reset(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	cancelled := p.dispatcher.Close()
	p.dispatcher = p.newDispatcher()
	p.transcript.Reset(i18n.Get(p.locale).Greeting)

	p.logger.WithField("cancelled_navigation", cancelled).InfoContext(ctx, "Conversation reset")
}

// SetLocale switches the active locale and reloads locale-dependent data in
// the background. The transcript is left as is.
func (p *Processor) SetLocale(ctx context.Context, l locale.Locale) error {
	if !l.IsValid() {
		return fmt.Errorf("%w: %q", domerrors.ErrUnsupportedLocale, string(l))
	}

	p.mu.Lock()
	previous := p.locale
	p.locale = l
	p.mu.Unlock()

	p.logger.WithField("from", previous.String()).WithField("to", l.String()).InfoContext(ctx, "Locale changed")

	bgCtx := ctxutil.WithLocale(ctxutil.PreserveTracing(ctx), l.String())
	p.background.Add(1)
	go func() {
		defer p.background.Done()
		_ = p.refresh(bgCtx, l)
	}()
	return nil
}

// Refresh reloads locale-dependent data for the active locale and waits
// for it. Failures are logged by each refresher and returned joined;
// stale results and disabled sources are not failures.
func (p *Processor) Refresh(ctx context.Context) error {
	return p.refresh(ctx, p.Locale())
}

func (p *Processor) refresh(ctx context.Context, l locale.Locale) error {
	errs := make([]error, len(p.refreshers))
	var wg sync.WaitGroup
	for i, r := range p.refreshers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := r.Refresh(ctx, l)
			if err == nil || domerrors.IsStaleResponse(err) || errors.Is(err, domerrors.ErrUnavailable) {
				return
			}
			errs[i] = err
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}

// Wait blocks until background refreshes started by SetLocale finish.
func (p *Processor) Wait() {
	p.background.Wait()
}

// Close tears the panel down: pending deep links are cancelled and later
// ones dropped. It waits for background refreshes.
func (p *Processor) Close() {
	p.mu.Lock()
	cancelled := p.dispatcher.Close()
	p.mu.Unlock()

	p.background.Wait()
	p.logger.WithField("cancelled_navigation", cancelled).Debug("Conversation closed")
}
