package retention

import (
	"slices"

	"mkvslim/internal/language"
	"mkvslim/internal/streams"
)

// NoDefault marks a Decision without a chosen default track of a kind.
const NoDefault = -1

// Decision is the outcome of Select for one file.
type Decision struct {
	// Retained holds kept stream indices in ascending order.
	Retained        []int
	DefaultAudio    int
	DefaultSubtitle int
}

// Keeps reports whether index is retained.
func (d Decision) Keeps(index int) bool {
	_, found := slices.BinarySearch(d.Retained, index)
	return found
}

// Empty reports whether nothing would survive the remux.
func (d Decision) Empty() bool {
	return len(d.Retained) == 0
}

// WantsDefault returns the default flag the stream should carry. Only audio and
// subtitle flags are managed; other kinds keep their current flag.
func (d Decision) WantsDefault(s streams.Descriptor) bool {
	switch s.Kind {
	case streams.Audio:
		return d.DefaultAudio != NoDefault && s.Index == d.DefaultAudio
	case streams.Subtitle:
		return d.DefaultSubtitle != NoDefault && s.Index == d.DefaultSubtitle
	default:
		return s.Default
	}
}

// Select decides which streams to keep and which audio and subtitle tracks
// become default. The input is not modified.
func Select(list []streams.Descriptor, audioPrefs []string, subtitlePrefs []SubtitlePreference) Decision {
	decision := Decision{DefaultAudio: NoDefault, DefaultSubtitle: NoDefault}

	preferredAudioPresent := false
	for _, s := range list {
		if s.Kind == streams.Audio && matchesAny(s.Language, audioPrefs) {
			preferredAudioPresent = true
			break
		}
	}

	var audio, subtitles []streams.Descriptor
	for _, s := range list {
		keep := false
		switch s.Kind {
		case streams.Audio:
			if matchesAny(s.Language, audioPrefs) {
				keep = true
			} else if !s.HasLanguage() && !preferredAudioPresent {
				keep = true
			}
			if keep {
				audio = append(audio, s)
			}
		case streams.Subtitle:
			for _, pref := range subtitlePrefs {
				if pref.Matches(s) {
					keep = true
					break
				}
			}
			if keep {
				subtitles = append(subtitles, s)
			}
		default:
			keep = true
		}
		if keep {
			decision.Retained = append(decision.Retained, s.Index)
		}
	}
	slices.Sort(decision.Retained)
	sortByIndex(audio)
	sortByIndex(subtitles)

	decision.DefaultAudio = chooseDefaultAudio(audio, audioPrefs)
	decision.DefaultSubtitle = chooseDefaultSubtitle(subtitles, subtitlePrefs)
	return decision
}

func chooseDefaultAudio(retained []streams.Descriptor, prefs []string) int {
	if len(retained) == 0 {
		return NoDefault
	}
	for _, pref := range prefs {
		for _, s := range retained {
			if language.Match(s.Language, pref) {
				return s.Index
			}
		}
	}
	return retained[0].Index
}

func chooseDefaultSubtitle(retained []streams.Descriptor, prefs []SubtitlePreference) int {
	for _, pref := range prefs {
		for _, s := range retained {
			if pref.Matches(s) {
				return s.Index
			}
		}
	}
	return NoDefault
}

// IsNecessary reports whether applying decision requires a remux: a stream is
// dropped, or a retained audio or subtitle track carries the wrong default flag.
func IsNecessary(list []streams.Descriptor, decision Decision) bool {
	if len(decision.Retained) != len(list) {
		return true
	}
	for _, s := range list {
		if !decision.Keeps(s.Index) {
			return true
		}
		if s.Kind != streams.Audio && s.Kind != streams.Subtitle {
			continue
		}
		if s.Default != decision.WantsDefault(s) {
			return true
		}
	}
	return false
}

// Partition splits list into retained and removed streams.
func Partition(list []streams.Descriptor, decision Decision) (kept, removed []streams.Descriptor) {
	for _, s := range list {
		if decision.Keeps(s.Index) {
			kept = append(kept, s)
		} else {
			removed = append(removed, s)
		}
	}
	return kept, removed
}

func matchesAny(lang string, prefs []string) bool {
	for _, pref := range prefs {
		if language.Match(lang, pref) {
			return true
		}
	}
	return false
}

func sortByIndex(list []streams.Descriptor) {
	slices.SortStableFunc(list, func(a, b streams.Descriptor) int {
		return a.Index - b.Index
	})
}
