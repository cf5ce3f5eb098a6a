package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/benassi/liftlog/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrNotResolved   = errors.New("exercise name not resolved")
	ErrEntryNotFound = errors.New("catalog entry not found")
)

type MovementType string

const (
	TypeStrength MovementType = "strength"
	TypeCardio   MovementType = "cardio"
	TypeMobility MovementType = "mobility"
)

func (mt MovementType) IsValid() bool {
	switch mt {
	case TypeStrength, TypeCardio, TypeMobility:
		return true
	default:
		return false
	}
}

// Entry is the static catalog metadata for one canonical exercise
type Entry struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Aliases      []string     `json:"aliases"`
	Category     string       `json:"category"`
	Type         MovementType `json:"type"`
	IsBodyweight bool         `json:"isBodyweight"`
}

type entriesRepo interface {
	ListAll(ctx context.Context) ([]Entry, error)
}

// Catalog resolves free-text exercise names to canonical catalog entries.
// Entries are loaded once at startup; resolution results are kept in an
// in-process freecache since the same handful of names is resolved over
// and over for every logged workout.
type Catalog struct {
	byID      map[string]Entry
	byName    map[string]string // normalized name/alias -> entry ID
	resolved  *freecache.Cache
	cacheTTL  int // seconds
	cacheSize int
}

func NewCatalog(ctx context.Context, repo entriesRepo) (*Catalog, error) {
	entries, err := repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog entries: %w", err)
	}
	return NewCatalogFromEntries(entries), nil
}

func NewCatalogFromEntries(entries []Entry) *Catalog {
	megabyte := 1024 * 1024
	c := &Catalog{
		byID:     make(map[string]Entry, len(entries)),
		byName:   make(map[string]string),
		resolved: freecache.NewCache(2 * megabyte),
		cacheTTL: 60 * 60, // resolution results are static, expiry is just housekeeping
	}

	for _, e := range entries {
		c.byID[e.ID] = e
		c.byName[Normalize(e.Name)] = e.ID
		c.byName[Normalize(e.ID)] = e.ID
		for _, alias := range e.Aliases {
			c.byName[Normalize(alias)] = e.ID
		}
	}

	log.Debugf("catalog loaded: %d entries, %d resolvable names", len(c.byID), len(c.byName))
	return c
}

// Normalize trims, lower-cases and collapses inner whitespace.
// Used both for catalog matching and for record keys.
func Normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// ResolveCanonicalID maps a free-text exercise name to a canonical catalog
// entry ID. Matching order: exact normalized name/alias, then unique
// prefix, then best token overlap. Returns ErrNotResolved when nothing
// matches at all.
func (c *Catalog) ResolveCanonicalID(ctx context.Context, freeText string) (_ string, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "catalog.resolve")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("name", freeText))

	normalized := Normalize(freeText)
	if normalized == "" {
		return "", ErrNotResolved
	}

	if cached, err := c.resolved.Get([]byte(normalized)); err == nil {
		return string(cached), nil
	}

	id, err := c.resolve(normalized)
	if err != nil {
		return "", err
	}

	if err := c.resolved.Set([]byte(normalized), []byte(id), c.cacheTTL); err != nil {
		log.Tracef("catalog: cache resolution [%s]: %s", normalized, err)
	}
	return id, nil
}

func (c *Catalog) resolve(normalized string) (string, error) {
	if id, ok := c.byName[normalized]; ok {
		return id, nil
	}

	// unique prefix match, e.g. "incline bench" -> "incline bench press"
	var prefixMatch string
	prefixMatches := 0
	for name, id := range c.byName {
		if strings.HasPrefix(name, normalized) {
			prefixMatches++
			prefixMatch = id
		}
	}
	if prefixMatches == 1 {
		return prefixMatch, nil
	}

	// fall back to the candidate sharing the most name tokens
	tokens := strings.Fields(normalized)
	bestScore := 0
	bestID := ""
	for name, id := range c.byName {
		nameTokens := strings.Fields(name)
		score := 0
		for _, t := range tokens {
			for _, nt := range nameTokens {
				if t == nt {
					score++
					break
				}
			}
		}
		if score > bestScore {
			bestScore = score
			bestID = id
		}
	}
	if bestID != "" {
		return bestID, nil
	}

	return "", ErrNotResolved
}

// Lookup returns the catalog entry for a canonical ID
func (c *Catalog) Lookup(_ context.Context, id string) (*Entry, error) {
	entry, ok := c.byID[id]
	if !ok {
		return nil, ErrEntryNotFound
	}
	return &entry, nil
}
