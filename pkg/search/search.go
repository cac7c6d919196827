// Package search finds the items missing for a requirement by probing it
// with hypothetical progressions.
//
// Requirements are opaque predicates, so the search treats them as black
// boxes: it starts from everything it may add, shrinks that to a locally
// minimal set, then bans members of each set found to uncover alternatives.
// Predicates are expected to be monotone.
package search

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/jwebster45206/smz3-tracker/pkg/progression"
)

const (
	DefaultMaxProbes  = 20000
	DefaultMaxBans    = 3
	DefaultMaxResults = 8
)

// Options bound a search. Zero values use the defaults.
type Options struct {
	// Candidates are the tokens the search may add. Nil means Candidates().
	Candidates []Token
	// MaxProbes caps the number of predicate evaluations.
	MaxProbes int
	// MaxBans caps how many tokens are excluded at once when looking for
	// alternatives.
	MaxBans int
	// MaxResults caps the number of option sets returned.
	MaxResults int
}

func (o Options) withDefaults() Options {
	if o.Candidates == nil {
		o.Candidates = Candidates()
	}
	if o.MaxProbes <= 0 {
		o.MaxProbes = DefaultMaxProbes
	}
	if o.MaxBans <= 0 {
		o.MaxBans = DefaultMaxBans
	}
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	return o
}

// Result is the outcome of a search.
type Result struct {
	// Options are alternative sets of tokens. Adding every token of any one
	// set to the baseline satisfies the requirement, and no single token
	// can be left out. Repeated tokens mean more than one unit is needed.
	Options [][]Token
	// Satisfied is set when the baseline already meets the requirement.
	Satisfied bool
	// Unsatisfiable is set when even every candidate together does not
	// meet it, which points at a malformed requirement.
	Unsatisfiable bool
	// Exhausted is set when the probe budget or the context ran out. The
	// options found so far are still valid but may be incomplete.
	Exhausted bool
	// Probes counts predicate evaluations.
	Probes int
}

// Names renders each option as display names with repeated tokens
// collapsed, e.g. "Power Bomb (2)".
func (r Result) Names() [][]string {
	out := make([][]string, 0, len(r.Options))
	for _, opt := range r.Options {
		out = append(out, names(opt))
	}
	return out
}

// String renders the options as a hint: "X, or Y and Z".
func (r Result) String() string {
	parts := make([]string, 0, len(r.Options))
	for _, opt := range r.Names() {
		parts = append(parts, joinAnd(opt))
	}
	return strings.Join(parts, ", or ")
}

func names(opt []Token) []string {
	var out []string
	for i := 0; i < len(opt); {
		j := i
		for j < len(opt) && opt[j] == opt[i] {
			j++
		}
		if n := j - i; n > 1 {
			out = append(out, fmt.Sprintf("%s (%d)", opt[i], n))
		} else {
			out = append(out, opt[i].String())
		}
		i = j
	}
	return out
}

func joinAnd(words []string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	}
	return strings.Join(words[:len(words)-1], ", ") + " and " + words[len(words)-1]
}

// dim is one candidate with the counts the search moves between.
type dim struct {
	tok       Token
	base, top int
}

type searcher struct {
	ctx       context.Context
	req       func(progression.Progression) bool
	baseline  progression.Progression
	dims      []dim
	memo      map[progression.Progression]bool
	probes    int
	maxProbes int
	exhausted bool
}

// MissingRequiredItems returns the sets of tokens that, added to baseline,
// satisfy req.
func MissingRequiredItems(ctx context.Context, req func(progression.Progression) bool, baseline progression.Progression, opts Options) Result {
	opts = opts.withDefaults()
	s := &searcher{
		ctx:       ctx,
		req:       req,
		baseline:  baseline,
		memo:      make(map[progression.Progression]bool),
		maxProbes: opts.MaxProbes,
	}
	seenTokens := mapset.New[Token]()
	for _, tok := range opts.Candidates {
		if seenTokens.Has(tok) {
			continue
		}
		seenTokens.Put(tok)
		base := s.count(baseline, tok)
		if top := max(base, tok.limit()); top > base {
			s.dims = append(s.dims, dim{tok: tok, base: base, top: top})
		}
	}

	var res Result
	base := make([]int, len(s.dims))
	for i, d := range s.dims {
		base[i] = d.base
	}
	if s.probe(base) {
		res.Satisfied = true
		res.Probes = s.probes
		return res
	}

	seenOptions := mapset.New[string]()
	seenBans := mapset.New[string]()
	queue := [][]int{nil}
	for len(queue) > 0 && len(res.Options) < opts.MaxResults && !s.exhausted {
		bans := queue[0]
		queue = queue[1:]

		banned := mapset.New[int]()
		for _, i := range bans {
			banned.Put(i)
		}
		counts, ok := s.find(banned)
		if !ok {
			if bans == nil && !s.exhausted {
				res.Unsatisfiable = true
			}
			continue
		}
		if key := countsKey(counts); !seenOptions.Has(key) {
			seenOptions.Put(key)
			res.Options = append(res.Options, s.tokens(counts))
		}
		if len(bans) >= opts.MaxBans {
			continue
		}
		for i, n := range counts {
			if n == s.dims[i].base {
				continue
			}
			next := append(slices.Clone(bans), i)
			slices.Sort(next)
			if key := countsKey(next); !seenBans.Has(key) {
				seenBans.Put(key)
				queue = append(queue, next)
			}
		}
	}

	slices.SortStableFunc(res.Options, func(a, b []Token) int { return len(a) - len(b) })
	res.Exhausted = s.exhausted
	res.Probes = s.probes
	return res
}

// find shrinks the largest allowed progression to a locally minimal one.
// Whole tokens are dropped first, then surplus units one at a time.
func (s *searcher) find(banned mapset.Set[int]) ([]int, bool) {
	counts := s.start(banned)
	if !s.probe(counts) {
		return nil, false
	}
	for i, d := range s.dims {
		if counts[i] == d.base {
			continue
		}
		prev := counts[i]
		counts[i] = d.base
		if !s.probe(counts) {
			counts[i] = prev
		}
		if s.exhausted {
			return nil, false
		}
	}
	for i, d := range s.dims {
		for counts[i] > d.base {
			counts[i]--
			if !s.probe(counts) {
				counts[i]++
				break
			}
		}
		if s.exhausted {
			return nil, false
		}
	}
	return counts, true
}

func (s *searcher) start(banned mapset.Set[int]) []int {
	counts := make([]int, len(s.dims))
	for i, d := range s.dims {
		if banned.Has(i) {
			counts[i] = d.base
		} else {
			counts[i] = d.top
		}
	}
	return counts
}

// probe evaluates the requirement at counts. Once the budget is spent it
// reports false and marks the search exhausted.
func (s *searcher) probe(counts []int) bool {
	p := s.build(counts)
	if v, ok := s.memo[p]; ok {
		return v
	}
	if s.probes >= s.maxProbes || s.ctx.Err() != nil {
		s.exhausted = true
		return false
	}
	s.probes++
	v := s.req(p)
	s.memo[p] = v
	return v
}

func (s *searcher) build(counts []int) progression.Progression {
	p := s.baseline
	for i, d := range s.dims {
		n := counts[i]
		if n == d.base {
			continue
		}
		switch d.tok.Kind {
		case KindItem:
			p = p.WithCount(d.tok.Item, n)
		case KindReward:
			p = p.WithRewardCount(d.tok.Reward, n)
		case KindBoss:
			p = p.WithBoss(d.tok.Boss, n > 0)
		}
	}
	return p
}

func (s *searcher) count(p progression.Progression, tok Token) int {
	switch tok.Kind {
	case KindReward:
		return p.CountReward(tok.Reward)
	case KindBoss:
		if p.Defeated(tok.Boss) {
			return 1
		}
		return 0
	}
	return p.Count(tok.Item)
}

func (s *searcher) tokens(counts []int) []Token {
	var out []Token
	for i, d := range s.dims {
		for n := d.base; n < counts[i]; n++ {
			out = append(out, d.tok)
		}
	}
	return out
}

func countsKey(counts []int) string {
	var sb strings.Builder
	for i, n := range counts {
		fmt.Fprintf(&sb, "%d:%d,", i, n)
	}
	return sb.String()
}
