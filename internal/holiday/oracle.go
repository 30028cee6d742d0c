package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rostercore/shiftopt/internal/logging"
)

const dateLayout = "2006-01-02"

// Oracle is the capability the Constraint Compiler's backup-coverage
// subpass depends on: the set of external-calendar holidays falling
// within a date range. Implementations must never block compilation
// on a lookup failure — an empty set is always an acceptable answer.
type Oracle interface {
	Holidays(ctx context.Context, from, to time.Time) (map[string]bool, error)
}

// StaticOracle is a fixed, caller-supplied holiday set. It is the
// fake used by tests (spec §9 "a static-set fake (for tests)").
type StaticOracle struct {
	dates map[string]bool
}

// NewStaticOracle builds a StaticOracle from a list of YYYY-MM-DD
// date strings.
func NewStaticOracle(dates ...string) StaticOracle {
	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	return StaticOracle{dates: set}
}

func (s StaticOracle) Holidays(_ context.Context, from, to time.Time) (map[string]bool, error) {
	out := make(map[string]bool)
	for d := range s.dates {
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			continue
		}
		if !t.Before(from) && !t.After(to) {
			out[d] = true
		}
	}
	return out, nil
}

// OfflineOracle computes holidays locally via Generate, with no
// network dependency — deterministic and safe to use as the fallback
// path when a network-backed oracle is unavailable.
type OfflineOracle struct{}

func (OfflineOracle) Holidays(_ context.Context, from, to time.Time) (map[string]bool, error) {
	out := make(map[string]bool)
	for year := from.Year(); year <= to.Year(); year++ {
		defs, err := Generate(year)
		if err != nil {
			continue
		}
		for _, d := range defs {
			if !d.Date.Before(from) && !d.Date.After(to) {
				out[d.Date.Format(dateLayout)] = true
			}
		}
	}
	return out, nil
}

// NetworkOracle fetches holidays from an external calendar service,
// memoizing by year in-process (spec §5 "may maintain a process-wide
// memoized cache... access must be internally synchronized;
// initialization is lazy and failure yields an empty set"). BaseURL is
// expected to accept ?year=YYYY and return a JSON array of
// {"date":"YYYY-MM-DD","name":"..."} objects.
type NetworkOracle struct {
	BaseURL string
	Client  *http.Client
	Log     logging.Sink

	mu    sync.Mutex
	cache map[int]map[string]bool
}

// NewNetworkOracle builds a NetworkOracle with sane defaults.
func NewNetworkOracle(baseURL string, sink logging.Sink) *NetworkOracle {
	return &NetworkOracle{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 5 * time.Second},
		Log:     logging.OrDefault(sink),
		cache:   make(map[int]map[string]bool),
	}
}

type networkHoliday struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

func (n *NetworkOracle) Holidays(ctx context.Context, from, to time.Time) (map[string]bool, error) {
	out := make(map[string]bool)
	for year := from.Year(); year <= to.Year(); year++ {
		yearSet, err := n.yearSet(ctx, year)
		if err != nil {
			n.Log.Warn("holiday oracle lookup failed, continuing with empty set", logging.Fields{
				"year": year, "error": err.Error(),
			})
			continue
		}
		for d := range yearSet {
			t, err := time.Parse(dateLayout, d)
			if err != nil {
				continue
			}
			if !t.Before(from) && !t.After(to) {
				out[d] = true
			}
		}
	}
	return out, nil
}

func (n *NetworkOracle) yearSet(ctx context.Context, year int) (map[string]bool, error) {
	n.mu.Lock()
	if cached, ok := n.cache[year]; ok {
		n.mu.Unlock()
		return cached, nil
	}
	n.mu.Unlock()

	set, err := n.fetch(ctx, year)
	if err != nil {
		return nil, err
	}

	n.mu.Lock()
	n.cache[year] = set
	n.mu.Unlock()
	return set, nil
}

func (n *NetworkOracle) fetch(ctx context.Context, year int) (map[string]bool, error) {
	url := fmt.Sprintf("%s?year=%d", n.BaseURL, year)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := n.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday oracle: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var entries []networkHoliday
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(entries))
	for _, e := range entries {
		set[e.Date] = true
	}
	return set, nil
}
