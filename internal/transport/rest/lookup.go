package rest

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/heartmarshall/jisho-backend/internal/deinflect"
	"github.com/heartmarshall/jisho-backend/internal/domain"
)

type lookupService interface {
	Variants(query string, settings domain.LookupSettings) []string
	Search(ctx context.Context, variants []string, settings domain.LookupSettings) ([]domain.Entry, error)
	Deinflect(query string) []deinflect.Deinflection
}

type tagResolver interface {
	ResolveKnown(ctx context.Context, tagString string) ([]domain.Tag, error)
}

// LookupHandler serves the word lookup API.
type LookupHandler struct {
	log      *slog.Logger
	lookup   lookupService
	tags     tagResolver
	defaults domain.LookupSettings
}

// NewLookupHandler creates a LookupHandler. defaults apply to every request
// that does not override them.
func NewLookupHandler(logger *slog.Logger, lookup lookupService, tags tagResolver, defaults domain.LookupSettings) *LookupHandler {
	return &LookupHandler{
		log:      logger.With("handler", "lookup"),
		lookup:   lookup,
		tags:     tags,
		defaults: defaults,
	}
}

// LookupResponse is the body of GET /api/lookup.
type LookupResponse struct {
	Query    string          `json:"query"`
	Variants []string        `json:"variants"`
	Entries  []EntryResponse `json:"entries"`
}

// EntryResponse is one dictionary entry with its tags resolved.
type EntryResponse struct {
	ID             string        `json:"id"`
	Dictionary     string        `json:"dictionary"`
	Expression     string        `json:"expression"`
	Reading        string        `json:"reading"`
	Glossary       []string      `json:"glossary"`
	Score          int           `json:"score"`
	Sequence       int           `json:"sequence"`
	Rules          string        `json:"rules,omitempty"`
	DefinitionTags []TagResponse `json:"definition_tags"`
	TermTags       []TagResponse `json:"term_tags"`
}

// TagResponse is a resolved tag.
type TagResponse struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Order    int    `json:"order"`
	Score    int    `json:"score"`
}

// Lookup handles GET /api/lookup?q=WORD[&deconjugate=][&bilingual_first=][&disabled=a,b].
func (h *LookupHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := r.URL.Query()

	if !params.Has("q") {
		writeError(ctx, h.log, w, domain.NewValidationError("q", "required"))
		return
	}
	query := params.Get("q")

	settings, err := h.settings(params)
	if err != nil {
		writeError(ctx, h.log, w, err)
		return
	}

	variants := h.lookup.Variants(query, settings)
	entries, err := h.lookup.Search(ctx, variants, settings)
	if err != nil {
		writeError(ctx, h.log, w, err)
		return
	}

	resolved, err := h.resolveEntries(ctx, entries)
	if err != nil {
		writeError(ctx, h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, LookupResponse{
		Query:    query,
		Variants: variants,
		Entries:  resolved,
	})
}

// DeinflectionResponse is one candidate dictionary form.
type DeinflectionResponse struct {
	Term  string   `json:"term"`
	Rules []string `json:"rules"`
	Tags  []string `json:"tags"`
}

// Deinflect handles GET /api/deinflect?q=WORD.
func (h *LookupHandler) Deinflect(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	if !params.Has("q") {
		writeError(r.Context(), h.log, w, domain.NewValidationError("q", "required"))
		return
	}

	ds := h.lookup.Deinflect(params.Get("q"))
	out := make([]DeinflectionResponse, len(ds))
	for i, d := range ds {
		rules := d.Rules
		if rules == nil {
			rules = []string{}
		}
		tags := d.Tag.Names()
		if tags == nil {
			tags = []string{}
		}
		out[i] = DeinflectionResponse{Term: d.Term, Rules: rules, Tags: tags}
	}
	writeJSON(w, http.StatusOK, out)
}

// settings applies request overrides to the defaults. A present "disabled"
// parameter replaces the default set, so "disabled=" enables everything.
func (h *LookupHandler) settings(params url.Values) (domain.LookupSettings, error) {
	s := h.defaults
	var errs []domain.FieldError

	parseBool := func(name string, dst *bool) {
		if !params.Has(name) {
			return
		}
		v, err := strconv.ParseBool(params.Get(name))
		if err != nil {
			errs = append(errs, domain.FieldError{Field: name, Message: "must be a boolean"})
			return
		}
		*dst = v
	}
	parseBool("deconjugate", &s.ShouldDeconjugate)
	parseBool("bilingual_first", &s.BilingualFirst)

	if params.Has("disabled") {
		var ids []string
		for _, v := range params["disabled"] {
			ids = append(ids, strings.Split(v, ",")...)
		}
		s.DisabledDictionaries = domain.NewDictionarySet(ids...)
	}

	if len(errs) > 0 {
		return domain.LookupSettings{}, domain.NewValidationErrors(errs)
	}
	return s, nil
}

// resolveEntries converts entries to responses. Tag strings repeat heavily
// across entries, so each distinct string is resolved once per request.
func (h *LookupHandler) resolveEntries(ctx context.Context, entries []domain.Entry) ([]EntryResponse, error) {
	cache := make(map[string][]TagResponse)
	resolve := func(s string) ([]TagResponse, error) {
		if tags, ok := cache[s]; ok {
			return tags, nil
		}
		known, err := h.tags.ResolveKnown(ctx, s)
		if err != nil {
			return nil, err
		}
		tags := make([]TagResponse, len(known))
		for i, t := range known {
			tags[i] = TagResponse{Name: t.Name, Category: t.Category, Notes: t.Notes, Order: t.Order, Score: t.Score}
		}
		cache[s] = tags
		return tags, nil
	}

	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		defTags, err := resolve(e.DefinitionTags)
		if err != nil {
			return nil, err
		}
		termTags, err := resolve(e.TermTags)
		if err != nil {
			return nil, err
		}
		glossary := e.Glossary
		if glossary == nil {
			glossary = []string{}
		}
		out = append(out, EntryResponse{
			ID:             e.ID.String(),
			Dictionary:     e.DictionaryID,
			Expression:     e.Expression,
			Reading:        e.Reading,
			Glossary:       glossary,
			Score:          e.Score,
			Sequence:       e.Sequence,
			Rules:          e.Rules,
			DefinitionTags: defTags,
			TermTags:       termTags,
		})
	}
	return out, nil
}
