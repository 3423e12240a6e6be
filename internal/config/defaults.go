package config

const (
	defaultSourceDir  = "~/Downloads"
	defaultLogDir     = "~/.local/share/shelve/logs"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
	defaultRunWorkers = 4
)

// DefaultCategories returns the built-in category table used when a config
// file does not supply its own. Extensions are stored without the leading dot.
func DefaultCategories() map[string][]string {
	return map[string][]string{
		"images":    {"jpg", "jpeg", "png", "gif", "bmp", "svg", "webp"},
		"documents": {"pdf", "doc", "docx", "txt", "rtf", "odt", "xls", "xlsx", "ppt", "pptx"},
		"archives":  {"zip", "rar", "7z", "tar", "gz"},
		"audio":     {"mp3", "wav", "ogg", "m4a"},
		"video":     {"mp4", "avi", "mov", "mkv", "wmv", "flv"},
		"code":      {"py", "js", "ts", "html", "css", "java", "c", "cpp", "h", "sh", "go"},
		"data":      {"json", "csv", "xml", "db", "sqlite"},
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDir: defaultSourceDir,
			LogDir:    defaultLogDir,
		},
		Categories: DefaultCategories(),
		Run: Run{
			Workers:        defaultRunWorkers,
			SkipHidden:     true,
			PruneEmptyDirs: true,
			FreeSpaceCheck: true,
		},
		Journal: Journal{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
