package language

import (
	"strings"
)

// names maps ISO 639-2/T codes to English names. The lowercased names are
// also accepted as input.
var names = map[string]string{
	"ara": "Arabic",
	"ben": "Bengali",
	"bul": "Bulgarian",
	"cat": "Catalan",
	"ces": "Czech",
	"dan": "Danish",
	"deu": "German",
	"ell": "Greek",
	"eng": "English",
	"est": "Estonian",
	"fas": "Persian",
	"fin": "Finnish",
	"fra": "French",
	"heb": "Hebrew",
	"hin": "Hindi",
	"hrv": "Croatian",
	"hun": "Hungarian",
	"ind": "Indonesian",
	"isl": "Icelandic",
	"ita": "Italian",
	"jpn": "Japanese",
	"kor": "Korean",
	"lav": "Latvian",
	"lit": "Lithuanian",
	"msa": "Malay",
	"nld": "Dutch",
	"nor": "Norwegian",
	"pol": "Polish",
	"por": "Portuguese",
	"ron": "Romanian",
	"rus": "Russian",
	"slk": "Slovak",
	"slv": "Slovenian",
	"spa": "Spanish",
	"srp": "Serbian",
	"swe": "Swedish",
	"tam": "Tamil",
	"tel": "Telugu",
	"tha": "Thai",
	"tur": "Turkish",
	"ukr": "Ukrainian",
	"vie": "Vietnamese",
	"zho": "Chinese",
	"und": "Undetermined",
}

// twoLetter maps ISO 639-1 codes to their 639-2/T form.
var twoLetter = map[string]string{
	"ar": "ara", "bn": "ben", "bg": "bul", "ca": "cat", "cs": "ces",
	"da": "dan", "de": "deu", "el": "ell", "en": "eng", "et": "est",
	"fa": "fas", "fi": "fin", "fr": "fra", "he": "heb", "hi": "hin",
	"hr": "hrv", "hu": "hun", "id": "ind", "is": "isl", "it": "ita",
	"ja": "jpn", "ko": "kor", "lv": "lav", "lt": "lit", "ms": "msa",
	"nl": "nld", "no": "nor", "nb": "nor", "nn": "nor", "pl": "pol",
	"pt": "por", "ro": "ron", "ru": "rus", "sk": "slk", "sl": "slv",
	"es": "spa", "sr": "srp", "sv": "swe", "ta": "tam", "te": "tel",
	"th": "tha", "tr": "tur", "uk": "ukr", "vi": "vie", "zh": "zho",
}

// bibliographic maps ISO 639-2/B variants, common in Matroska files, to
// their terminology codes.
var bibliographic = map[string]string{
	"chi": "zho",
	"cze": "ces",
	"dut": "nld",
	"fre": "fra",
	"ger": "deu",
	"gre": "ell",
	"ice": "isl",
	"may": "msa",
	"per": "fas",
	"rum": "ron",
	"slo": "slk",
}

var byName = func() map[string]string {
	m := make(map[string]string, len(names))
	for code, name := range names {
		m[strings.ToLower(name)] = code
	}
	return m
}()

// Normalize trims whitespace and NUL padding and lowercases a language tag.
func Normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(code, "\u0000", "")))
}

// canonical resolves a tag to its ISO 639-2/T code when recognized and to the
// normalized tag otherwise. IETF tags ("en-US") reduce to their primary
// subtag.
func canonical(code string) (string, bool) {
	code = Normalize(code)
	if code == "" {
		return "", false
	}
	if _, ok := names[code]; ok {
		return code, true
	}
	if iso, ok := byName[code]; ok {
		return iso, true
	}
	primary := code
	if i := strings.IndexAny(code, "-_"); i > 0 {
		primary = code[:i]
	}
	if _, ok := names[primary]; ok {
		return primary, true
	}
	if iso, ok := twoLetter[primary]; ok {
		return iso, true
	}
	if iso, ok := bibliographic[primary]; ok {
		return iso, true
	}
	return code, false
}

// Match reports whether two language tags name the same language. Tags are
// compared case-insensitively and recognized ISO 639-1, 639-2/T, 639-2/B and
// English-name forms are equivalent ("en", "eng", "English"). An empty tag
// never matches.
func Match(a, b string) bool {
	ca, _ := canonical(a)
	cb, _ := canonical(b)
	return ca != "" && ca == cb
}

// DisplayName returns the English name of a recognized tag, "Unknown" for an
// empty one and the uppercased tag otherwise.
func DisplayName(code string) string {
	iso, known := canonical(code)
	switch {
	case iso == "":
		return "Unknown"
	case known:
		return names[iso]
	default:
		return strings.ToUpper(iso)
	}
}

// tagKeys are the metadata keys probed for a track language, in order.
var tagKeys = []string{"language", "language_ietf", "lang"}

// ExtractFromTags returns the normalized language from stream tags, matching
// keys case-insensitively.
func ExtractFromTags(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	for _, key := range tagKeys {
		for k, value := range tags {
			if !strings.EqualFold(k, key) {
				continue
			}
			if value = Normalize(value); value != "" {
				return value
			}
		}
	}
	return ""
}
