package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync/atomic"
)

// sections of the kernel which emit debug records
const (
	SectionUniverse  = "universe"
	SectionSubtype   = "subtype"
	SectionConstEval = "consteval"
	SectionCache     = "cache"
	SectionSession   = "session"
)

var enabledSections atomic.Pointer[[]string]

func init() {
	enabledSections.Store(&[]string{SectionUniverse, SectionConstEval})
}

var level = new(slog.LevelVar)

var LoggerOpts = &slog.HandlerOptions{
	AddSource: true,
	Level:     level,
	ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == "time" {
			return slog.Attr{}
		}
		if render := attrRenderer.Load(); render != nil {
			return (*render)(a)
		}
		return a
	},
}

var attrRenderer atomic.Pointer[func(slog.Attr) slog.Attr]

// SetAttrRenderer installs render to rewrite the attributes of records that are emitted
func SetAttrRenderer(render func(slog.Attr) slog.Attr) {
	attrRenderer.Store(&render)
}

var DefaultLogger = New(os.Stderr)

// New is a logger writing text records to w, filtered by the enabled sections
func New(w io.Writer) *slog.Logger {
	return slog.New(&filteringHandler{underlying: slog.NewTextHandler(w, LoggerOpts)})
}

// Section is DefaultLogger scoped to one section
func Section(name string) *slog.Logger {
	return DefaultLogger.With("section", name)
}

func SetLevel(l slog.Level) {
	level.Set(l)
}

// SetSections replaces the sections whose debug and info records are emitted.
// Warnings and errors are always emitted.
func SetSections(sections ...string) {
	s := slices.Clone(sections)
	enabledSections.Store(&s)
}

func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(s))
	return l, err
}

var _ slog.Handler = &filteringHandler{}

type filteringHandler struct {
	underlying slog.Handler
	sections   []string
}

func sectionEnabled(name string) bool {
	return slices.ContainsFunc(*enabledSections.Load(), func(section string) bool {
		return strings.HasPrefix(name, section)
	})
}

func (f filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return f.underlying.Enabled(ctx, level)
}

func (f filteringHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level >= slog.LevelWarn {
		return f.underlying.Handle(ctx, record)
	}
	wantSection := slices.ContainsFunc(f.sections, sectionEnabled)
	record.Attrs(func(attr slog.Attr) bool {
		wantSection = wantSection || attr.Key == "section" && sectionEnabled(attr.Value.String())
		// iterate as long as we have not found our section
		return !wantSection
	})
	if !wantSection {
		return nil
	}
	return f.underlying.Handle(ctx, record)
}

func (f filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var newAttrs []slog.Attr
	sections := slices.Clone(f.sections)

	// keep the section attribute in filteringHandler, so that it is checked on every record
	for _, attr := range attrs {
		if attr.Key == "section" {
			sections = append(sections, attr.Value.String())
		}
		newAttrs = append(newAttrs, attr)
	}
	return &filteringHandler{
		underlying: f.underlying.WithAttrs(newAttrs),
		sections:   sections,
	}
}

func (f filteringHandler) WithGroup(name string) slog.Handler {
	return &filteringHandler{
		underlying: f.underlying.WithGroup(name),
		sections:   f.sections,
	}
}
