package language

import (
	"testing"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"eng", "eng", true},
		{"ENG", "eng", true},
		{"en", "eng", true},
		{"english", "eng", true},
		{"fre", "fra", true},
		{"fr", "fre", true},
		{"ger", "deu", true},
		{"cze", "ces", true},
		{"en-US", "eng", true},
		{"pt_BR", "por", true},
		{"German", "ger", true},
		{"zh-Hant", "chi", true},
		{"en-GB", "en", true},
		{"rum", "ro", true},
		{"und", "und", true},
		{"xyz", "xyz", true},
		{"eng", "jpn", false},
		{"xyz", "xyw", false},
		{"", "eng", false},
		{"eng", "", false},
		{"", "", false},
		{" ", "und", false},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			if got := Match(tt.a, tt.b); got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "English"},
		{"eng", "English"},
		{"spa", "Spanish"},
		{"fre", "French"},
		{"jpn", "Japanese"},
		{"und", "Undetermined"},
		{"", "Unknown"},
		{"xyz", "XYZ"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := DisplayName(tt.input); result != tt.expected {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestExtractFromTags(t *testing.T) {
	tests := []struct {
		name     string
		tags     map[string]string
		expected string
	}{
		{"nil", nil, ""},
		{"lowercase key", map[string]string{"language": "ENG"}, "eng"},
		{"uppercase key", map[string]string{"LANGUAGE": "jpn"}, "jpn"},
		{"nul padded", map[string]string{"language": "eng\u0000"}, "eng"},
		{"blank falls through", map[string]string{"language": " ", "lang": "ger"}, "ger"},
		{"ietf key", map[string]string{"Language_IETF": "en-US"}, "en-us"},
		{"no language", map[string]string{"title": "Main"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := ExtractFromTags(tt.tags); result != tt.expected {
				t.Errorf("ExtractFromTags(%v) = %q, want %q", tt.tags, result, tt.expected)
			}
		})
	}
}
