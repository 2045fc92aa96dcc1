package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"mkvslim/internal/language"
	"mkvslim/internal/pipeline"
	"mkvslim/internal/retention"
	"mkvslim/internal/streams"
)

// attachmentListLimit is the attachment count above which repeated types are
// summarized instead of listed.
const (
	attachmentListLimit   = 10
	attachmentPreviewRows = 5
)

var attachmentTypeNames = map[string]string{
	"ttf":     "TrueType Font",
	"otf":     "OpenType Font",
	"woff":    "Web Font",
	"woff2":   "Web Font",
	"jpg":     "JPEG Image",
	"jpeg":    "JPEG Image",
	"png":     "PNG Image",
	"gif":     "GIF Image",
	"webp":    "WebP Image",
	"pdf":     "PDF Document",
	"txt":     "Text File",
	"unknown": "Unknown File",
}

func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// writeStreamReport prints one table per stream kind followed by the size
// summary.
func writeStreamReport(w io.Writer, list []streams.Descriptor, decision retention.Decision, source streams.Source) {
	p := painter{enabled: colorEnabled(w)}
	byKind := map[streams.Kind][]streams.Descriptor{}
	for _, d := range list {
		byKind[d.Kind] = append(byKind[d.Kind], d)
	}

	if source == streams.SourceFallback {
		fmt.Fprintln(w, p.warn("Track details unavailable; the file will be transferred unchanged."))
	}

	sections := []struct {
		kind  streams.Kind
		title string
		write func(io.Writer, []streams.Descriptor, retention.Decision, painter)
	}{
		{streams.Video, "Video", writeVideoTable},
		{streams.Audio, "Audio", writeAudioTable},
		{streams.Subtitle, "Subtitles", writeSubtitleTable},
		{streams.Attachment, "Attachments", writeAttachmentTable},
		{streams.Unknown, "Other", writeUnknownTable},
	}
	for _, section := range sections {
		items := byKind[section.kind]
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s (%d)\n", p.heading(section.title), len(items))
		section.write(w, items, decision, p)
	}
	writeSizeSummary(w, list, decision)
}

func writeVideoTable(w io.Writer, items []streams.Descriptor, decision retention.Decision, p painter) {
	rows := make([][]string, 0, len(items))
	for _, d := range items {
		rows = append(rows, []string{
			strconv.Itoa(d.Index),
			dash(d.Codec),
			dash(d.Resolution()),
			formatFrameRate(d.FrameRate),
			yesNo(d.HDR),
			formatSize(d.SizeBytes),
			streamStatus(d, decision, p),
		})
	}
	headers := []string{"#", "Codec", "Resolution", "FPS", "HDR", "Size", "Status"}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignCenter, alignRight, alignLeft}
	fmt.Fprintln(w, renderTable(headers, rows, aligns))
}

func writeAudioTable(w io.Writer, items []streams.Descriptor, decision retention.Decision, p painter) {
	rows := make([][]string, 0, len(items))
	for _, d := range items {
		rows = append(rows, []string{
			strconv.Itoa(d.Index),
			dash(d.Codec),
			formatLanguage(d.Language),
			formatChannels(d.Channels),
			formatSampleRate(d.SampleRate),
			formatSize(d.SizeBytes),
			yesNo(d.Default),
			streamStatus(d, decision, p),
		})
	}
	headers := []string{"#", "Codec", "Language", "Channels", "Sample Rate", "Size", "Default", "Status"}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignCenter, alignLeft}
	fmt.Fprintln(w, renderTable(headers, rows, aligns))
}

func writeSubtitleTable(w io.Writer, items []streams.Descriptor, decision retention.Decision, p painter) {
	rows := make([][]string, 0, len(items))
	for _, d := range items {
		format := d.SubtitleFormat
		if format == "" {
			format = d.Codec
		}
		rows = append(rows, []string{
			strconv.Itoa(d.Index),
			dash(format),
			formatLanguage(d.Language),
			dash(d.Title),
			yesNo(d.Default),
			yesNo(d.Forced),
			streamStatus(d, decision, p),
		})
	}
	headers := []string{"#", "Format", "Language", "Title", "Default", "Forced", "Status"}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignCenter, alignCenter, alignLeft}
	fmt.Fprintln(w, renderTable(headers, rows, aligns))
}

func writeAttachmentTable(w io.Writer, items []streams.Descriptor, _ retention.Decision, _ painter) {
	headers := []string{"#", "Type", "Title", "Size"}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignRight}
	row := func(d streams.Descriptor) []string {
		return []string{strconv.Itoa(d.Index), attachmentType(d), dash(d.Title), formatSize(d.SizeBytes)}
	}

	counts := map[string]int{}
	sizes := map[string]int64{}
	for _, d := range items {
		kind := attachmentType(d)
		counts[kind]++
		sizes[kind] += d.SizeBytes
	}

	if len(items) <= attachmentListLimit || len(counts) == len(items) {
		rows := make([][]string, 0, len(items))
		for _, d := range items {
			rows = append(rows, row(d))
		}
		fmt.Fprintln(w, renderTable(headers, rows, aligns))
		return
	}

	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	summary := make([][]string, 0, len(kinds))
	for _, kind := range kinds {
		summary = append(summary, []string{kind, strconv.Itoa(counts[kind]), formatSize(sizes[kind])})
	}
	fmt.Fprintln(w, renderTable([]string{"Type", "Count", "Size"}, summary, []columnAlignment{alignLeft, alignRight, alignRight}))

	preview := make([][]string, 0, attachmentPreviewRows)
	for _, d := range items[:attachmentPreviewRows] {
		preview = append(preview, row(d))
	}
	fmt.Fprintln(w, renderTable(headers, preview, aligns))
	fmt.Fprintf(w, "... and %d more\n", len(items)-attachmentPreviewRows)
}

func writeUnknownTable(w io.Writer, items []streams.Descriptor, decision retention.Decision, p painter) {
	rows := make([][]string, 0, len(items))
	for _, d := range items {
		rows = append(rows, []string{strconv.Itoa(d.Index), dash(d.Codec), streamStatus(d, decision, p)})
	}
	fmt.Fprintln(w, renderTable([]string{"#", "Codec", "Status"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft}))
}

func writeSizeSummary(w io.Writer, list []streams.Descriptor, decision retention.Decision) {
	kept, removed := retention.Partition(list, decision)
	before := streams.TotalBytes(list)
	after := streams.TotalBytes(kept)

	fmt.Fprintln(w)
	if before <= 0 {
		fmt.Fprintln(w, "Original size:     unknown")
	} else {
		fmt.Fprintf(w, "Original size:     %s\n", humanize.IBytes(uint64(before)))
		fmt.Fprintf(w, "After processing:  %s\n", humanize.IBytes(uint64(after)))
		fmt.Fprintf(w, "Space savings:     %s\n", formatSavings(before, before-after))
	}
	fmt.Fprintf(w, "Streams to remove: %d\n", len(removed))
}

// streamStatus labels a stream KEEP, KEEP (default) or REMOVE.
func streamStatus(d streams.Descriptor, decision retention.Decision, p painter) string {
	if !decision.Keeps(d.Index) {
		return p.remove("REMOVE")
	}
	if (d.Kind == streams.Audio || d.Kind == streams.Subtitle) && decision.WantsDefault(d) {
		return p.keep("KEEP (default)")
	}
	return p.keep("KEEP")
}

func attachmentType(d streams.Descriptor) string {
	key := strings.ToLower(strings.TrimSpace(d.Codec))
	if key == "" || key == "none" || strings.Contains(key, "/") {
		if ext := strings.TrimPrefix(filepath.Ext(d.Title), "."); ext != "" {
			key = strings.ToLower(ext)
		}
	}
	if key == "" {
		key = "unknown"
	}
	if name, ok := attachmentTypeNames[key]; ok {
		return name
	}
	return strings.ToUpper(key)
}

func writeResult(w io.Writer, result pipeline.Result) {
	verb := "Remuxed"
	switch {
	case result.DryRun && result.Action == pipeline.ActionMerge:
		verb = "Would remux"
	case result.DryRun:
		verb = "Would transfer"
	case result.Action == pipeline.ActionTransfer:
		verb = "Transferred (" + string(result.Transfer.Strategy) + ")"
	}
	fmt.Fprintf(w, "%s %s -> %s\n", verb, result.Source, result.Destination)
	if result.Command != nil {
		fmt.Fprintf(w, "Command: %s\n", result.Command.String())
	}
	if saved := result.Saved(); saved > 0 {
		fmt.Fprintf(w, "Saved %s\n", formatSavings(result.BytesBefore, saved))
	}
}

func writeBatchSummary(w io.Writer, result *pipeline.BatchResult) {
	p := painter{enabled: colorEnabled(w)}
	fmt.Fprintf(w, "\n%s\n", p.heading("Summary"))
	rows := [][]string{
		{"Files", strconv.Itoa(result.Total)},
		{"Successful", strconv.Itoa(result.Successful)},
		{"Failed", strconv.Itoa(result.Failed)},
		{"Remuxed", strconv.Itoa(result.Merged)},
		{"Transferred", strconv.Itoa(result.Transferred)},
		{"Space saved", humanize.IBytes(uint64(max(result.BytesSaved, 0)))},
	}
	fmt.Fprintln(w, renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))

	if failed := result.FailedFiles(); len(failed) > 0 {
		errorRows := make([][]string, 0, len(failed))
		for _, path := range failed {
			errorRows = append(errorRows, []string{path, result.Errors[path]})
		}
		fmt.Fprintln(w, renderTable([]string{"File", "Error"}, errorRows, nil))
	}
	fmt.Fprintln(w, result.Outcome().String())
}

func formatSavings(before, saved int64) string {
	if before <= 0 || saved <= 0 {
		return "0 B (0.0%)"
	}
	return fmt.Sprintf("%s (%.1f%%)", humanize.IBytes(uint64(saved)), float64(saved)*100/float64(before))
}

func formatSize(bytes int64) string {
	if bytes <= 0 {
		return "-"
	}
	return humanize.IBytes(uint64(bytes))
}

func formatLanguage(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return "-"
	}
	name := language.DisplayName(code)
	if strings.EqualFold(name, code) {
		return code
	}
	return fmt.Sprintf("%s (%s)", code, name)
}

func formatFrameRate(fps float64) string {
	if fps <= 0 {
		return "-"
	}
	value := strconv.FormatFloat(fps, 'f', 3, 64)
	value = strings.TrimRight(strings.TrimRight(value, "0"), ".")
	return value
}

func formatChannels(channels int) string {
	switch channels {
	case 0:
		return "-"
	case 1:
		return "1 (mono)"
	case 2:
		return "2 (stereo)"
	case 6:
		return "6 (5.1)"
	case 8:
		return "8 (7.1)"
	default:
		return strconv.Itoa(channels)
	}
}

func formatSampleRate(rate int) string {
	if rate <= 0 {
		return "-"
	}
	return strconv.Itoa(rate) + " Hz"
}

func dash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
