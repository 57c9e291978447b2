package agent

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pkordes/park-tracker/internal/domain"
	"github.com/pkordes/park-tracker/internal/render"
)

// isoDate is the layout stored in a visit's start marker.
const isoDate = "2006-01-02"

var (
	sepTo    = regexp.MustCompile(`(?i) to `)
	sepOn    = regexp.MustCompile(`(?i) on `)
	sepFor   = regexp.MustCompile(`(?i) for `)
	partyArg = regexp.MustCompile(`party\s+(\d+)`)
)

// findInRegion handles "find parks in <region>".
func (r *Resolver) findInRegion(ctx context.Context, _, lower string) error {
	_, region, _ := strings.Cut(lower, " in ")
	region = strings.TrimSpace(region)
	parks, err := r.cfg.Parks.List(ctx, domain.ParkFilter{State: region})
	if err != nil {
		return err
	}
	return render.Parks(r.out, parks, false)
}

// planVisit handles "plan visit to <park> [on <date>] [for <N>]".
func (r *Resolver) planVisit(ctx context.Context, text, _ string) error {
	_, rest, _ := cutFold(text, sepTo)

	party := 1
	if head, tail, ok := cutFold(rest, sepFor); ok {
		rest = head
		party = leadingInt(tail)
	}
	parkName, datePart, _ := cutFold(rest, sepOn)
	parkName = strings.TrimSpace(parkName)
	datePart = strings.TrimSpace(datePart)

	if parkName == "" {
		r.println("Agent: could not parse park name for plan visit")
		return nil
	}

	var start *string
	if datePart != "" {
		if d, err := r.cfg.ParseDate(datePart); err == nil {
			start = domain.StringPtr(d.Format(isoDate))
		} else {
			r.log.Debug("date not understood", zap.String("text", datePart), zap.Error(err))
		}
	}

	v, ok, err := r.addVisitTo(ctx, parkName, domain.Visit{Start: start, PartySize: party})
	if err != nil || !ok {
		return err
	}
	when := v.StartOrEmpty()
	if when == "" {
		when = "(no date)"
	}
	r.printf("Agent: planned visit to %s on %s for %d people\n", parkName, when, v.PartySize)
	return nil
}

func (r *Resolver) importCmd(ctx context.Context, _, _ string) error {
	return r.importParks(ctx)
}

func (r *Resolver) listCmd(ctx context.Context, _, _ string) error {
	r.println("Agent: listing parks")
	return r.listParks(ctx)
}

// addParkCmd handles "add park <name>[,] [<region>]". A trailing token of at
// most three characters is taken as the region code.
func (r *Resolver) addParkCmd(ctx context.Context, text, _ string) error {
	rest := strings.TrimSpace(text[len("add park"):])
	if rest == "" {
		r.println(`Agent: please provide a park name after "add park"`)
		return nil
	}

	parts := strings.FieldsFunc(rest, func(c rune) bool { return unicode.IsSpace(c) || c == ',' })
	name, state := rest, ""
	if n := len(parts); n >= 2 && utf8.RuneCountInString(parts[n-1]) <= 3 {
		state = parts[n-1]
		name = strings.Join(parts[:n-1], " ")
	}
	return r.addPark(ctx, name, state)
}

// addVisitCmd handles "add visit to <park> [party N]". Only the single token
// after " to " is used as the park name.
func (r *Resolver) addVisitCmd(ctx context.Context, text, lower string) error {
	park := ""
	if _, after, ok := cutFold(text, sepTo); ok {
		if f := strings.Fields(after); len(f) > 0 {
			park = f[0]
		}
	}
	party := 1
	if m := partyArg.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			party = n
		}
	}
	if park == "" {
		r.println(`Agent: could not parse park name for visit. Try "add visit to <park> party N"`)
		return nil
	}

	v, ok, err := r.addVisitTo(ctx, park, domain.Visit{PartySize: party})
	if err != nil || !ok {
		return err
	}
	r.printf("Agent: added visit to %s (party %d)\n", park, v.PartySize)
	return nil
}

// ---- shared store actions --------------------------------------------------

func (r *Resolver) listParks(ctx context.Context) error {
	parks, err := r.cfg.Parks.List(ctx, domain.ParkFilter{})
	if err != nil {
		return err
	}
	return render.Parks(r.out, parks, false)
}

func (r *Resolver) importParks(ctx context.Context) error {
	r.printf("Agent: importing parks from %s\n", r.cfg.ImportSource)
	res, err := r.cfg.Importer.Import(ctx, r.cfg.ImportSource)
	if err != nil {
		if soft(err) {
			r.log.Warn("import failed", zap.String("source", r.cfg.ImportSource), zap.Error(err))
			r.printf("Agent: import failed: %v\n", err)
			return nil
		}
		return err
	}
	r.printf("Imported parks: added=%d, skipped=%d\n", res.Added, res.Skipped)
	return nil
}

func (r *Resolver) addPark(ctx context.Context, name, state string) error {
	p, err := r.cfg.Parks.Add(ctx, domain.Park{Name: name, State: domain.StringPtr(state)})
	if err != nil {
		if soft(err) {
			r.printf("Agent: could not add park: %v\n", err)
			return nil
		}
		return err
	}
	r.printf("Agent: added park %s (%s)\n", p.Name, p.StateOrEmpty())
	return nil
}

// addVisitTo records attrs against the park named parkName. It reports false
// without error when no such park exists.
func (r *Resolver) addVisitTo(ctx context.Context, parkName string, attrs domain.Visit) (domain.Visit, bool, error) {
	park, err := r.cfg.Parks.FindByName(ctx, parkName)
	if errors.Is(err, domain.ErrNotFound) {
		r.printf("Agent: park %q not found; create it first.\n", parkName)
		return domain.Visit{}, false, nil
	}
	if err != nil {
		return domain.Visit{}, false, err
	}

	attrs.ParkID = park.ID
	v, err := r.cfg.Visits.Add(ctx, attrs)
	if err != nil {
		return domain.Visit{}, false, err
	}
	return v, true, nil
}

// cutFold is strings.Cut with a case-insensitive separator.
func cutFold(s string, sep *regexp.Regexp) (before, after string, found bool) {
	loc := sep.FindStringIndex(s)
	if loc == nil {
		return s, "", false
	}
	return s[:loc[0]], s[loc[1]:], true
}

// leadingInt parses the first field of s, defaulting to 1.
func leadingInt(s string) int {
	f := strings.Fields(s)
	if len(f) == 0 {
		return 1
	}
	n, err := strconv.Atoi(f[0])
	if err != nil {
		return 1
	}
	return n
}
