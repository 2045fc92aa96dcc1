package transfer

import (
	"strings"
)

// Mode is the requested transfer behaviour for files that need no remux.
type Mode int

const (
	// HardLinkOrCopy tries a hard link and falls back to copying on any error.
	HardLinkOrCopy Mode = iota
	Move
	Copy
	HardLink
)

func (m Mode) String() string {
	switch m {
	case Move:
		return "Move"
	case Copy:
		return "Copy"
	case HardLink:
		return "HardLink"
	default:
		return "HardLinkOrCopy"
	}
}

// ParseMode maps a transfer-mode hint to a Mode. Matching ignores case,
// spaces, dashes and underscores. An empty hint is the default chain; an
// unrecognized hint also yields the default chain but reports ok=false.
func ParseMode(raw string) (mode Mode, ok bool) {
	key := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(raw)))
	switch key {
	case "":
		return HardLinkOrCopy, true
	case "move":
		return Move, true
	case "copy":
		return Copy, true
	case "hardlink":
		return HardLink, true
	case "hardlinkorcopy":
		return HardLinkOrCopy, true
	default:
		return HardLinkOrCopy, false
	}
}

// Strategy records which filesystem operation produced the destination.
type Strategy string

const (
	StrategyRename     Strategy = "rename"
	StrategyCopyDelete Strategy = "copy+delete"
	StrategyCopy       Strategy = "copy"
	StrategyHardLink   Strategy = "hardlink"
)

// Outcome reports a completed transfer.
type Outcome struct {
	Strategy Strategy
	Bytes    int64
}
