package retention

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"mkvslim/internal/apperr"
	"mkvslim/internal/language"
	"mkvslim/internal/streams"
)

// SubtitlePreference selects subtitles by language and, optionally, by a
// case-insensitive title prefix.
type SubtitlePreference struct {
	Language    string
	TitlePrefix string
}

// ParseSubtitlePreference parses "lang" or "lang, title prefix". An empty
// language is rejected; an empty prefix means no title requirement.
func ParseSubtitlePreference(value string) (SubtitlePreference, error) {
	lang, prefix, _ := strings.Cut(value, ",")
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return SubtitlePreference{}, apperr.Validation("subtitle preference",
			fmt.Sprintf("language code cannot be empty in %q; use \"language\" or \"language, title prefix\"", value))
	}
	return SubtitlePreference{Language: lang, TitlePrefix: strings.TrimSpace(prefix)}, nil
}

// ParseSubtitlePreferences parses each value, failing on the first invalid one.
func ParseSubtitlePreferences(values []string) ([]SubtitlePreference, error) {
	prefs := make([]SubtitlePreference, 0, len(values))
	for _, value := range values {
		pref, err := ParseSubtitlePreference(value)
		if err != nil {
			return nil, err
		}
		prefs = append(prefs, pref)
	}
	return prefs, nil
}

// String renders the preference in its parseable form.
func (p SubtitlePreference) String() string {
	if p.TitlePrefix == "" {
		return p.Language
	}
	return p.Language + ", " + p.TitlePrefix
}

// Matches reports whether the subtitle stream satisfies the preference.
func (p SubtitlePreference) Matches(d streams.Descriptor) bool {
	if !language.Match(d.Language, p.Language) {
		return false
	}
	if p.TitlePrefix == "" {
		return true
	}
	if d.Title == "" {
		return false
	}
	fold := cases.Fold()
	return strings.HasPrefix(fold.String(d.Title), fold.String(p.TitlePrefix))
}
