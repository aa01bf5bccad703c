package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edgard/morningbot/internal/anniversary"
	"github.com/edgard/morningbot/internal/config"
	"github.com/edgard/morningbot/internal/message"
	"github.com/edgard/morningbot/internal/quotes"
	"github.com/edgard/morningbot/internal/render"
	"github.com/edgard/morningbot/internal/weather"
)

// Sender delivers the composed greeting to the destination chat.
type Sender interface {
	SendText(ctx context.Context, text string) error
	SendPhoto(ctx context.Context, filename string, data []byte, caption string) error
}

// WeatherSource reports the current weather.
type WeatherSource interface {
	Fetch(ctx context.Context) weather.Result
}

// QuoteSource supplies the quote of the day.
type QuoteSource interface {
	Pick() quotes.Result
}

// ImageComposer overlays the quote on the background picture.
type ImageComposer interface {
	Compose(quote string) render.Image
}

// Greeter runs the morning pipeline: gather the roster, weather and quote,
// optionally compose an image, then deliver exactly one message.
type Greeter struct {
	cfg     *config.Config
	weather WeatherSource
	quotes  QuoteSource
	images  ImageComposer
	sender  Sender
	now     func() time.Time
	dryRun  bool
	log     *slog.Logger
}

// GreeterOption customizes a Greeter.
type GreeterOption func(*Greeter)

// WithWeather replaces the weather source.
func WithWeather(w WeatherSource) GreeterOption {
	return func(g *Greeter) { g.weather = w }
}

// WithQuotes replaces the quote source.
func WithQuotes(q QuoteSource) GreeterOption {
	return func(g *Greeter) { g.quotes = q }
}

// WithComposer replaces the image composer. A nil composer disables images.
func WithComposer(c ImageComposer) GreeterOption {
	return func(g *Greeter) { g.images = c }
}

// WithClock sets the time source used to decide what today is.
func WithClock(now func() time.Time) GreeterOption {
	return func(g *Greeter) { g.now = now }
}

// WithDryRun makes RunOnce log the message instead of sending it.
func WithDryRun(dryRun bool) GreeterOption {
	return func(g *Greeter) { g.dryRun = dryRun }
}

// NewGreeter wires the pipeline stages from cfg. Options override the defaults.
func NewGreeter(cfg *config.Config, sender Sender, logger *slog.Logger, opts ...GreeterOption) *Greeter {
	if logger == nil {
		logger = slog.Default()
	}

	g := &Greeter{
		cfg:     cfg,
		weather: weather.NewClient(cfg.Weather, logger),
		quotes:  quotes.NewPicker(cfg.Quotes.Path, logger),
		sender:  sender,
		now:     time.Now,
		log:     logger.With("component", "greeter"),
	}
	if cfg.Image.Enabled {
		g.images = render.NewComposer(cfg.Image, logger)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RunOnce composes and delivers one greeting. Only a delivery failure is
// returned; every other stage degrades to fallback content.
func (g *Greeter) RunOnce(ctx context.Context) error {
	today := g.now()
	if g.cfg.Location != nil {
		today = today.In(g.cfg.Location)
	}
	g.log.Info("Composing morning greeting", "date", today.Format(time.DateOnly))

	in := message.Input{
		Roster:  anniversary.Roster(g.cfg.Roster, today),
		Weather: g.weather.Fetch(ctx),
		Quote:   g.quotes.Pick(),
		Texts:   g.cfg.Messages,
	}

	var img render.Image
	if in.Quote.OK() && g.images != nil {
		img = g.images.Compose(in.Quote.Quote)
	}

	if len(img.Data) > 0 {
		caption := message.Caption(in)
		if g.dryRun {
			g.log.Info("Dry run, photo not sent", "bytes", len(img.Data), "rendered", img.Rendered, "caption", caption)
			return nil
		}
		return g.report(g.sender.SendPhoto(ctx, g.cfg.Image.Filename, img.Data, caption))
	}

	text := message.Text(in)
	if g.dryRun {
		g.log.Info("Dry run, message not sent", "text", text)
		return nil
	}
	return g.report(g.sender.SendText(ctx, text))
}

func (g *Greeter) report(err error) error {
	if err != nil {
		g.log.Error("❌ Ошибка при отправке: "+err.Error(), "error", err)
		return fmt.Errorf("failed to deliver greeting: %w", err)
	}
	g.log.Info("✅ Сообщение отправлено")
	return nil
}
