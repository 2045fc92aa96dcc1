package mkvmerge

import (
	"fmt"
	"strconv"
	"strings"

	"mkvslim/internal/apperr"
	"mkvslim/internal/retention"
	"mkvslim/internal/streams"
)

// DefaultBinary is the mkvmerge executable name.
const DefaultBinary = "mkvmerge"

// Command is a synthesized mkvmerge invocation.
type Command struct {
	Binary string
	Source string
	Output string
	Args   []string
}

// String renders the command for display, quoting arguments with spaces.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Binary)
	for _, arg := range c.Args {
		if arg == "" || strings.ContainsAny(arg, " \t\"'\\$") {
			arg = strconv.Quote(arg)
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

// WithOutput returns a copy of c writing to output instead.
func (c Command) WithOutput(output string) Command {
	args := append([]string(nil), c.Args...)
	if len(args) >= 2 && args[0] == "-o" {
		args[1] = output
	}
	c.Args = args
	c.Output = output
	return c
}

type selector struct {
	kind    streams.Kind
	include string
	exclude string
}

// Attachments are never dropped, so they have no selector.
var selectors = []selector{
	{streams.Video, "--video-tracks", "--no-video"},
	{streams.Audio, "--audio-tracks", "--no-audio"},
	{streams.Subtitle, "--subtitle-tracks", "--no-subtitles"},
}

// Build synthesizes the mkvmerge arguments that apply decision to source.
//
// A kind gets a selector only when some of its tracks are dropped. Every
// retained audio and subtitle track gets an explicit default flag.
func Build(list []streams.Descriptor, decision retention.Decision, source, output string) (Command, error) {
	if strings.TrimSpace(source) == "" || strings.TrimSpace(output) == "" {
		return Command{}, apperr.Validation("build command", "source and output paths are required")
	}
	if decision.Empty() {
		return Command{}, apperr.Validation("build command", "no streams would be retained")
	}

	known := make(map[int]streams.Descriptor, len(list))
	for _, s := range list {
		known[s.Index] = s
	}
	for _, idx := range decision.Retained {
		if _, ok := known[idx]; !ok {
			return Command{}, apperr.Validation("build command", fmt.Sprintf("retained index %d is not a stream of the file", idx))
		}
	}
	for _, idx := range []int{decision.DefaultAudio, decision.DefaultSubtitle} {
		if idx != retention.NoDefault && !decision.Keeps(idx) {
			return Command{}, apperr.Validation("build command", fmt.Sprintf("default index %d is not retained", idx))
		}
	}

	args := []string{"-o", output}
	for _, sel := range selectors {
		var all, kept []int
		for _, s := range list {
			if s.Kind != sel.kind {
				continue
			}
			all = append(all, s.Index)
			if decision.Keeps(s.Index) {
				kept = append(kept, s.Index)
			}
		}
		switch {
		case len(kept) == len(all):
			// nothing dropped; mkvmerge copies the whole kind
		case len(kept) == 0:
			args = append(args, sel.exclude)
		default:
			args = append(args, sel.include, joinIndices(kept))
		}
	}

	for _, kind := range []streams.Kind{streams.Audio, streams.Subtitle} {
		for _, idx := range decision.Retained {
			s := known[idx]
			if s.Kind != kind {
				continue
			}
			flag := "0"
			if decision.WantsDefault(s) {
				flag = "1"
			}
			args = append(args, "--default-track-flag", strconv.Itoa(idx)+":"+flag)
		}
	}

	args = append(args, source)
	return Command{Binary: DefaultBinary, Source: source, Output: output, Args: args}, nil
}

func joinIndices(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ",")
}
