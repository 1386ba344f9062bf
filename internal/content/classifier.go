// Package content turns one captured text blob into a classification: a
// primary type with its variant fields, two ranked tags and a confidence.
package content

import (
	"context"
	"net/url"
	"slices"
	"strings"

	"github.com/pbaille/snipstack/internal/chain"
	"github.com/pbaille/snipstack/internal/classifier"
	"github.com/pbaille/snipstack/internal/domain"
	"github.com/pbaille/snipstack/internal/logging"
	"github.com/pbaille/snipstack/internal/patterns"
)

// MaxTags is the number of tags every classification ends with.
const MaxTags = 2

// DefaultPromptPrefix is how many characters of a capture the remote
// classifier sees.
const DefaultPromptPrefix = 1500

// Remote is the remote text-classification collaborator.
type Remote interface {
	Classify(ctx context.Context, content string, prefixLen int) (*classifier.ClassifyResult, error)
}

// TitleFetcher resolves a page title for link snippets.
type TitleFetcher interface {
	FetchTitle(ctx context.Context, rawURL string) (string, error)
}

// Options configures a Classifier. Remote and Titles may be nil.
type Options struct {
	Thresholds   patterns.Thresholds
	PromptPrefix int
	Remote       Remote
	Titles       TitleFetcher
}

// Classification is the outcome for one capture.
type Classification struct {
	Kind       domain.Kind
	Tags       []string
	Confidence float64
	Language   patterns.Language
	Stage      string
}

// Type returns the primary type.
func (c Classification) Type() domain.Type {
	if c.Kind == nil {
		return domain.TypeText
	}
	return c.Kind.Type()
}

// Classifier runs the classification chain. It holds no per-call state.
type Classifier struct {
	th     patterns.Thresholds
	prefix int
	remote Remote
	titles TitleFetcher
}

// New creates a Classifier. Zero thresholds fall back to the defaults.
func New(opts Options) *Classifier {
	if opts.Thresholds == (patterns.Thresholds{}) {
		opts.Thresholds = patterns.DefaultThresholds()
	}
	if opts.PromptPrefix <= 0 {
		opts.PromptPrefix = DefaultPromptPrefix
	}
	return &Classifier{
		th:     opts.Thresholds,
		prefix: opts.PromptPrefix,
		remote: opts.Remote,
		titles: opts.Titles,
	}
}

type input struct {
	text string
	app  *domain.SourceApp
}

// draft is a chain stage's answer before the shared post-processing.
type draft struct {
	typ   domain.Type
	tags  []string
	lang  patterns.Language
	conf  float64
	color string
}

// Classify classifies text. It never fails: collaborator errors fall through
// to the deterministic rules. ok is false only for empty input.
func (c *Classifier) Classify(ctx context.Context, text string, app *domain.SourceApp) (Classification, bool) {
	if strings.TrimSpace(text) == "" {
		return Classification{}, false
	}

	in := input{text: text, app: app}
	res, _ := chain.First(ctx, in,
		chain.Strategy[input, draft]{Name: "color", Run: colorStage},
		chain.Strategy[input, draft]{Name: "url", Run: urlStage},
		chain.Strategy[input, draft]{Name: "signature", Run: c.signatureStage},
		chain.Strategy[input, draft]{Name: "remote", Run: c.remoteStage},
		chain.Strategy[input, draft]{Name: "rules", Run: c.rulesStage},
	)
	d := res.Value

	contact := c.upgradeMessage(&d, in)
	d.tags = ensureTagFloor(d.tags, d.typ)

	out := Classification{
		Kind:       c.buildKind(ctx, d, in, contact),
		Tags:       d.tags,
		Confidence: d.conf,
		Language:   d.lang,
		Stage:      res.Stage,
	}
	logging.Debug("classified capture", "stage", out.Stage, "type", out.Type(), "tags", strings.Join(out.Tags, ","))
	return out, true
}

func colorStage(_ context.Context, in input) (draft, error) {
	v, ok := patterns.IsColorLiteral(in.text)
	if !ok {
		return draft{}, chain.ErrNoMatch
	}
	return draft{typ: domain.TypeColor, tags: []string{"color", "design"}, conf: 1, color: v.Value}, nil
}

func urlStage(_ context.Context, in input) (draft, error) {
	if !patterns.IsURL(in.text) {
		return draft{}, chain.ErrNoMatch
	}
	return draft{typ: domain.TypeLink, tags: []string{"link", "url"}, conf: 1}, nil
}

// signatureStage accepts text that both scores as code and carries a
// language signature, so unambiguous code never depends on the remote call.
func (c *Classifier) signatureStage(_ context.Context, in input) (draft, error) {
	if !c.th.LooksLikeCode(in.text) {
		return draft{}, chain.ErrNoMatch
	}
	lang, ok := patterns.DetectLanguageMarkers(in.text)
	if !ok {
		return draft{}, chain.ErrNoMatch
	}
	return draft{typ: domain.TypeCode, tags: []string{"code", string(lang)}, lang: lang, conf: 0.9}, nil
}

func (c *Classifier) remoteStage(ctx context.Context, in input) (draft, error) {
	if c.remote == nil {
		return draft{}, chain.ErrNoMatch
	}
	res, err := c.remote.Classify(ctx, in.text, c.prefix)
	if err != nil {
		return draft{}, err
	}

	r := rankTags(res.Tags, func() (patterns.Language, bool) {
		return DetectLanguage(in.text)
	})
	if len(r.tags) == 0 {
		return draft{}, chain.ErrNoMatch
	}
	return draft{typ: r.typ, tags: r.tags, lang: r.lang, conf: res.Confidence}, nil
}

// upgradeMessage turns conversational text into a message and returns the
// contact it found.
func (c *Classifier) upgradeMessage(d *draft, in input) string {
	name, hasName := patterns.NamePrefix(in.text)
	appName := ""
	if in.app != nil {
		appName = in.app.Name
	}

	if d.typ == domain.TypeText {
		reported := patterns.HasReportingVerb(in.text) && len(in.text) <= c.th.MessageLengthCeiling
		if hasName || reported || patterns.IsMessagingApp(appName) {
			d.typ = domain.TypeMessage
		}
	}
	if d.typ != domain.TypeMessage {
		return ""
	}

	if !slices.Contains(d.tags, "message") {
		rest := d.tags
		if len(rest) > MaxTags-1 {
			rest = rest[:MaxTags-1]
		}
		d.tags = append([]string{"message"}, rest...)
	}

	switch {
	case hasName:
		return name
	case appName != "":
		return appName
	}
	return "Unknown"
}

// secondaryTag is the floor tag used when the type tag is already present.
var secondaryTag = map[domain.Type]string{
	domain.TypeCode:    "snippet",
	domain.TypeLink:    "url",
	domain.TypeText:    "clipboard",
	domain.TypeMessage: "conversation",
	domain.TypeColor:   "design",
	domain.TypeQuote:   "quote",
	domain.TypeTweet:   "social",
}

func ensureTagFloor(tags []string, typ domain.Type) []string {
	for _, candidate := range []string{string(typ), secondaryTag[typ], "clipboard", "snippet"} {
		if len(tags) >= MaxTags {
			break
		}
		if candidate != "" && !slices.Contains(tags, candidate) {
			tags = append(tags, candidate)
		}
	}
	if len(tags) > MaxTags {
		tags = tags[:MaxTags]
	}
	return tags
}

func (c *Classifier) buildKind(ctx context.Context, d draft, in input, contact string) domain.Kind {
	switch d.typ {
	case domain.TypeCode:
		return domain.Code{Path: "snippet." + patterns.Extension(d.lang)}
	case domain.TypeLink:
		return domain.Link{Title: c.linkTitle(ctx, strings.TrimSpace(in.text))}
	case domain.TypeColor:
		return domain.Color{Value: d.color}
	case domain.TypeMessage:
		return domain.Message{Contact: contact}
	}
	return domain.Text{}
}

func (c *Classifier) linkTitle(ctx context.Context, raw string) string {
	if c.titles != nil {
		title, err := c.titles.FetchTitle(ctx, raw)
		if err == nil && title != "" {
			return title
		}
		if err != nil {
			logging.Warn("fetch link title failed", "url", raw, "err", err)
		}
	}
	return hostOf(raw)
}

func hostOf(raw string) string {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return strings.TrimPrefix(u.Host, "www.")
}
