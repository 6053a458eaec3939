package i18n

import (
	"fmt"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// BaseLocale is the source locale. Message keys are the English strings.
const BaseLocale = "en-US"

// Message keys shared across the TUI.
const (
	Workspace          = "Workspace"
	Location           = "Location"
	Published          = "Published"
	PublishedNote      = "Create a published template that's available for use immediately."
	CreateTemplate     = "Create template"
	Creating           = "Creating"
	TemplateCreated    = "Template created, go ahead and customize it"
	CollectionsFailed  = "Collections could not be loaded, please reload the app"
	TemplatizeIntro    = "Creating a template from %s is a non-destructive action – we'll make a copy of the document and turn it into a template that can be used as a starting point for new documents."
	SubmitFailed       = "Could not create template: %v"
	NoLocationsAllowed = "You do not have permission to create documents in any location"
)

var translations = map[string]map[string]string{
	"de-DE": {
		Workspace:          "Arbeitsbereich",
		Location:           "Speicherort",
		Published:          "Veröffentlicht",
		PublishedNote:      "Eine veröffentlichte Vorlage erstellen, die sofort verwendet werden kann.",
		CreateTemplate:     "Vorlage erstellen",
		Creating:           "Wird erstellt",
		TemplateCreated:    "Vorlage erstellt, jetzt kannst du sie anpassen",
		CollectionsFailed:  "Sammlungen konnten nicht geladen werden, bitte lade die App neu",
		TemplatizeIntro:    "Eine Vorlage aus %s zu erstellen ist nicht destruktiv – wir kopieren das Dokument und machen daraus eine Vorlage, die als Ausgangspunkt für neue Dokumente dient.",
		SubmitFailed:       "Vorlage konnte nicht erstellt werden: %v",
		NoLocationsAllowed: "Du darfst an keinem Speicherort Dokumente erstellen",
	},
}

var (
	defaultCatalog = mustBuild()
	supported      = supportedTags()
	matcher        = language.NewMatcher(supported)
)

func supportedTags() []language.Tag {
	tags := []language.Tag{language.MustParse(BaseLocale)}
	locales := make([]string, 0, len(translations))
	for locale := range translations {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	for _, locale := range locales {
		tags = append(tags, language.MustParse(locale))
	}
	return tags
}

func mustBuild() *catalog.Builder {
	b, err := build(translations)
	if err != nil {
		panic(err)
	}
	return b
}

func build(messages map[string]map[string]string) (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale)))
	locales := make([]string, 0, len(messages))
	for locale := range messages {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		for key, value := range messages[locale] {
			if err := b.SetString(tag, key, value); err != nil {
				return nil, fmt.Errorf("register %q for %s: %w", key, locale, err)
			}
		}
	}
	return b, nil
}

// Translator renders message keys in one locale.
type Translator struct {
	printer *message.Printer
}

// New returns a translator for locale, falling back to English for unknown
// or unparsable locales.
func New(locale string) Translator {
	tag := supported[0]
	if parsed, err := language.Parse(locale); err == nil {
		if _, index, confidence := matcher.Match(parsed); confidence != language.No {
			tag = supported[index]
		}
	}
	return Translator{printer: message.NewPrinter(tag, message.Catalog(defaultCatalog))}
}

// T translates key, formatting args into it.
func (t Translator) T(key string, args ...any) string {
	if t.printer == nil {
		return fmt.Sprintf(key, args...)
	}
	return t.printer.Sprintf(key, args...)
}
