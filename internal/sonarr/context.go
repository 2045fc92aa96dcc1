package sonarr

import (
	"log/slog"
	"os"
	"strings"
)

const envPrefix = "sonarr_"

// Context holds the Sonarr custom script environment. Keys are lowercased
// with the sonarr_ prefix removed, so SONARR_SERIES_TITLE is "series_title".
type Context struct {
	values map[string]string
}

// FromEnviron collects Sonarr variables from the process environment.
func FromEnviron() Context {
	return Parse(os.Environ())
}

// Parse collects Sonarr variables from KEY=VALUE pairs. Matching on the prefix
// and key is case-insensitive; a later duplicate wins.
func Parse(environ []string) Context {
	values := make(map[string]string)
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(key)
		if !strings.HasPrefix(key, envPrefix) || len(key) == len(envPrefix) {
			continue
		}
		values[strings.TrimPrefix(key, envPrefix)] = value
	}
	return Context{values: values}
}

// Get returns the raw value for key (without the sonarr_ prefix).
func (c Context) Get(key string) (string, bool) {
	value, ok := c.values[strings.ToLower(key)]
	return value, ok
}

func (c Context) get(key string) string {
	value, _ := c.Get(key)
	return value
}

// IsPresent reports whether the process was started by Sonarr. Only the
// variables Sonarr always sets for import events are considered.
func (c Context) IsPresent() bool {
	for _, key := range []string{"sourcepath", "instancename", "series_id"} {
		if _, ok := c.values[key]; ok {
			return true
		}
	}
	return false
}

// TransferMode returns the transfer mode hint, empty when absent.
func (c Context) TransferMode() string {
	return strings.TrimSpace(c.get("transfermode"))
}

func (c Context) SourcePath() string      { return c.get("sourcepath") }
func (c Context) DestinationPath() string { return c.get("destinationpath") }
func (c Context) SeriesTitle() string     { return c.get("series_title") }

// Episode formats the season and episode numbers as S<season>E<episodes>,
// or returns empty when either is missing.
func (c Context) Episode() string {
	season := strings.TrimSpace(c.get("episodefile_seasonnumber"))
	episodes := strings.TrimSpace(c.get("episodefile_episodenumbers"))
	if season == "" || episodes == "" {
		return ""
	}
	return "S" + season + "E" + episodes
}

// LogAttrs returns the identifying fields for structured logs.
func (c Context) LogAttrs() []slog.Attr {
	if !c.IsPresent() {
		return nil
	}
	attrs := []slog.Attr{}
	if v := c.get("instancename"); v != "" {
		attrs = append(attrs, slog.String("sonarr_instance", v))
	}
	if v := c.SeriesTitle(); v != "" {
		attrs = append(attrs, slog.String("sonarr_series", v))
	}
	if v := c.Episode(); v != "" {
		attrs = append(attrs, slog.String("sonarr_episode", v))
	}
	if v := c.TransferMode(); v != "" {
		attrs = append(attrs, slog.String("sonarr_transfer_mode", v))
	}
	return attrs
}
