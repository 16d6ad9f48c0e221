// Package i18n holds the user-facing message catalog. Services and handlers
// refer to messages by key; the catalog in use can be swapped at startup.
package i18n

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"go-absensi/internal/shared/contextutil"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var (
	Indonesian = language.Indonesian
	English    = language.English
)

// Messages maps a language to its key -> format string table.
type Messages map[language.Tag]map[string]string

type Localizer struct {
	fallback  language.Tag
	supported []language.Tag
	matcher   language.Matcher
	catalog   *catalog.Builder
	messages  Messages
}

// NewLocalizer builds a catalog from messages. The fallback language must be
// present in messages and is used when a request does not match any entry.
func NewLocalizer(fallback language.Tag, messages Messages) (*Localizer, error) {
	if _, ok := messages[fallback]; !ok {
		return nil, fmt.Errorf("i18n: fallback language %s has no messages", fallback)
	}

	builder := catalog.NewBuilder(catalog.Fallback(fallback))
	others := make([]language.Tag, 0, len(messages))
	for tag, entries := range messages {
		if tag != fallback {
			others = append(others, tag)
		}
		for key, msg := range entries {
			if err := builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("i18n: set %s/%s: %w", tag, key, err)
			}
		}
	}

	// urutan tag menentukan pemenang saat matcher seri
	sort.Slice(others, func(i, j int) bool { return others[i].String() < others[j].String() })
	supported := append([]language.Tag{fallback}, others...)

	return &Localizer{
		fallback:  fallback,
		supported: supported,
		matcher:   language.NewMatcher(supported),
		catalog:   builder,
		messages:  messages,
	}, nil
}

func MustNewLocalizer(fallback language.Tag, messages Messages) *Localizer {
	l, err := NewLocalizer(fallback, messages)
	if err != nil {
		panic(err)
	}
	return l
}

func (l *Localizer) Fallback() language.Tag {
	return l.fallback
}

// Supported lists the fallback first, then the other languages by tag.
func (l *Localizer) Supported() []language.Tag {
	return append([]language.Tag(nil), l.supported...)
}

// Match resolves the first candidate (a lang code or an Accept-Language
// header value) that matches a supported language.
func (l *Localizer) Match(candidates ...string) language.Tag {
	for _, raw := range candidates {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(raw)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, conf := l.matcher.Match(tags...)
		if conf == language.No {
			continue
		}
		return l.supported[idx]
	}
	return l.fallback
}

func (l *Localizer) Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(l.catalog))
}

// PrinterFromContext uses the language negotiated by the request middleware.
func (l *Localizer) PrinterFromContext(ctx context.Context) *message.Printer {
	return l.Printer(contextutil.GetLanguage(ctx, l.fallback))
}

// Has reports whether key is translated for tag (or for the fallback).
func (l *Localizer) Has(tag language.Tag, key string) bool {
	if entries, ok := l.messages[tag]; ok {
		if _, ok := entries[key]; ok {
			return true
		}
	}
	_, ok := l.messages[l.fallback][key]
	return ok
}

func (l *Localizer) T(ctx context.Context, key string, args ...any) string {
	return l.PrinterFromContext(ctx).Sprintf(key, args...)
}

var current atomic.Pointer[Localizer]

func init() {
	current.Store(MustNewLocalizer(Indonesian, Builtin()))
}

// Default returns the process-wide localizer.
func Default() *Localizer {
	return current.Load()
}

// SetDefault swaps the process-wide localizer, typically once at startup.
func SetDefault(l *Localizer) {
	if l != nil {
		current.Store(l)
	}
}

// T translates key with the default localizer and the request language.
func T(ctx context.Context, key string, args ...any) string {
	return Default().T(ctx, key, args...)
}

var weekdayKeys = [...]string{
	time.Sunday:    "weekday.short.sun",
	time.Monday:    "weekday.short.mon",
	time.Tuesday:   "weekday.short.tue",
	time.Wednesday: "weekday.short.wed",
	time.Thursday:  "weekday.short.thu",
	time.Friday:    "weekday.short.fri",
	time.Saturday:  "weekday.short.sat",
}

// WeekdayShort returns the abbreviated weekday name ("Sen", "Mon").
func WeekdayShort(p *message.Printer, d time.Weekday) string {
	return p.Sprintf(weekdayKeys[d])
}
