// Package dates resolves natural-language date phrases such as "yesterday
// evening" or "April 30 and May 1" into a canonical domain.DateRange.
package dates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pbaille/snipstack/internal/chain"
	"github.com/pbaille/snipstack/internal/classifier"
	"github.com/pbaille/snipstack/internal/domain"
)

// ErrUnresolved is returned when no strategy understood the phrase.
var ErrUnresolved = errors.New("date phrase unresolved")

// Remote is the remote date-resolution collaborator.
type Remote interface {
	ResolveDateRange(ctx context.Context, phrase string, now time.Time) (*classifier.DateRangeResult, error)
}

// Options configures a Resolver.
type Options struct {
	Remote Remote
	// Smart enables the remote stage.
	Smart bool
	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

// Resolver runs the phrase table, the natural-language parser and the
// remote collaborator in that order.
type Resolver struct {
	remote Remote
	smart  atomic.Bool
	now    func() time.Time
	parser *naturalParser
}

type request struct {
	phrase string // normalized
	raw    string
	now    time.Time
}

// New creates a Resolver.
func New(opts Options) *Resolver {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	r := &Resolver{
		remote: opts.Remote,
		now:    opts.Now,
		parser: newNaturalParser(),
	}
	r.smart.Store(opts.Smart)
	return r
}

// SetSmart toggles the remote stage.
func (r *Resolver) SetSmart(on bool) { r.smart.Store(on) }

// Resolve turns phrase into a normalized range. When every strategy fails it
// returns a range whose Label is the raw phrase together with ErrUnresolved.
func (r *Resolver) Resolve(ctx context.Context, phrase string) (domain.DateRange, error) {
	raw := strings.TrimSpace(phrase)
	if raw == "" {
		return domain.DateRange{}, ErrUnresolved
	}
	req := request{phrase: normalize(raw), raw: raw, now: r.now()}

	res, ok := chain.First(ctx, req,
		chain.Strategy[request, domain.DateRange]{Name: "phrase", Run: phraseStage},
		chain.Strategy[request, domain.DateRange]{Name: "natural", Run: r.parser.run},
		chain.Strategy[request, domain.DateRange]{Name: "remote", Run: r.remoteStage},
	)
	if !ok {
		return domain.DateRange{Label: raw}, fmt.Errorf("resolve %q: %w", raw, ErrUnresolved)
	}
	dr := res.Value.Normalize()
	if dr.Label == "" {
		dr.Label = raw
	}
	return dr, nil
}

func (r *Resolver) remoteStage(ctx context.Context, req request) (domain.DateRange, error) {
	if r.remote == nil || !r.smart.Load() {
		return domain.DateRange{}, chain.ErrNoMatch
	}
	res, err := r.remote.ResolveDateRange(ctx, req.raw, req.now)
	if err != nil {
		return domain.DateRange{}, err
	}
	return fromRemote(res, req.now.Location())
}

func fromRemote(res *classifier.DateRangeResult, loc *time.Location) (domain.DateRange, error) {
	from, err := time.ParseInLocation("2006-01-02", res.From, loc)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("parse from date: %w", err)
	}
	to, err := time.ParseInLocation("2006-01-02", res.To, loc)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("parse to date: %w", err)
	}

	dr := domain.DateRange{From: from, To: to, Label: res.Display}
	if res.FromTime != "" && res.ToTime != "" {
		ft, err := domain.ParseClock(res.FromTime)
		if err != nil {
			return domain.DateRange{}, err
		}
		tt, err := domain.ParseClock(res.ToTime)
		if err != nil {
			return domain.DateRange{}, err
		}
		dr.FromTime, dr.ToTime = &ft, &tt
	}
	return dr, nil
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
