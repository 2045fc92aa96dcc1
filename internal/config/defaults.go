package config

const (
	defaultConfigPath   = "~/.config/mkvslim/config.toml"
	defaultMkvmerge     = "mkvmerge"
	defaultFFprobe      = "ffprobe"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	defaultTransferMode = "hardlink_or_copy"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Audio: Audio{
			KeepLanguages: []string{"eng", "jpn", "und"},
		},
		Subtitles: Subtitles{
			KeepLanguages: []string{"eng", "spa"},
		},
		Processing: Processing{
			TransferMode: defaultTransferMode,
		},
		Tools: Tools{
			Mkvmerge: defaultMkvmerge,
			FFprobe:  defaultFFprobe,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
