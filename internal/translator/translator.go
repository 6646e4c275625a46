// Package translator serves the board's user-facing text from embedded TOML
// message catalogues.
package translator

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"onething/internal/datefmt"
	"onething/internal/tasks"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const (
	LanguageEn = "en"
	LanguageFr = "fr"
)

//go:embed locales/*.toml
var locales embed.FS

// Translator localizes messages for one language.
type Translator struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	lang      language.Tag
	logger    *zap.Logger
}

// New loads every embedded catalogue and picks the closest match for lang.
// Unknown languages fall back to English.
func New(lang string, logger *zap.Logger) (*Translator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(locales, "locales/*.toml")
	if err != nil {
		return nil, fmt.Errorf("failed to list catalogues: %w", err)
	}
	for _, f := range files {
		data, err := locales.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f, err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, path.Base(f)); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", f, err)
		}
	}

	tags := bundle.LanguageTags()
	requested, err := language.Parse(lang)
	if err != nil {
		logger.Warn("unknown language, using English", zap.String("lang", lang), zap.Error(err))
		requested = language.English
	}
	_, idx, _ := language.NewMatcher(tags).Match(requested)
	tag := tags[idx]

	return &Translator{
		bundle:    bundle,
		localizer: i18n.NewLocalizer(bundle, tag.String(), LanguageEn),
		lang:      tag,
		logger:    logger,
	}, nil
}

// Supported lists the languages with a catalogue.
func (t *Translator) Supported() []string {
	var out []string
	for _, tag := range t.bundle.LanguageTags() {
		out = append(out, tag.String())
	}
	return out
}

// Lang returns the language in use.
func (t *Translator) Lang() string {
	return t.lang.String()
}

// T returns the message for id. A missing message falls back to id itself.
func (t *Translator) T(id string) string {
	return t.Tf(id, nil)
}

// Tf returns the message for id with its template filled from data.
func (t *Translator) Tf(id string, data map[string]any) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		t.logger.Warn("translation not found", zap.String("lang", t.Lang()), zap.String("message_id", id), zap.Error(err))
		return id
	}
	return msg
}

var bucketMessages = map[tasks.BucketID][2]string{
	tasks.BucketTimeSensitive: {"bucketTimeSensitiveTitle", "bucketTimeSensitiveDescription"},
	tasks.BucketImportant:     {"bucketImportantTitle", "bucketImportantDescription"},
	tasks.BucketWhenAvailable: {"bucketWhenAvailableTitle", "bucketWhenAvailableDescription"},
}

// BucketTitle returns the localized title of a bucket.
func (t *Translator) BucketTitle(b tasks.Bucket) string {
	ids, ok := bucketMessages[b.ID]
	if !ok {
		return b.Title
	}
	return t.T(ids[0])
}

// BucketDescription returns the localized description of a bucket.
func (t *Translator) BucketDescription(b tasks.Bucket) string {
	ids, ok := bucketMessages[b.ID]
	if !ok {
		return b.Description
	}
	return t.T(ids[1])
}

// DateLabels returns the words and layouts for datefmt.FormatDate.
func (t *Translator) DateLabels() datefmt.Labels {
	return datefmt.Labels{
		Today:       t.T("today"),
		Tomorrow:    t.T("tomorrow"),
		Yesterday:   t.T("yesterday"),
		ShortLayout: t.T("dateShortLayout"),
		LongLayout:  t.T("dateLongLayout"),
	}
}

// Status returns the label for a deadline status.
func (t *Translator) Status(s datefmt.Status) string {
	switch s {
	case datefmt.StatusOverdue:
		return t.T("statusOverdue")
	case datefmt.StatusToday:
		return t.T("statusToday")
	case datefmt.StatusTomorrow:
		return t.T("statusTomorrow")
	default:
		return t.T("statusUpcoming")
	}
}

// Error turns a store error into a message fit for the status line.
func (t *Translator) Error(err error) string {
	var capErr *tasks.CapacityError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &capErr):
		title := capErr.Title
		if b, ok := bucketMessages[capErr.Bucket]; ok {
			title = t.T(b[0])
		}
		return t.Tf("capacityExceeded", map[string]any{"Max": capErr.Max, "Bucket": title})
	case errors.Is(err, tasks.ErrNotFound):
		return t.T("taskNotFound")
	case errors.Is(err, tasks.ErrInvalidInput):
		return t.T("invalidInput")
	default:
		return t.T("unexpectedError")
	}
}
