package styles

// Config describes one rewrite style: the editorial voice a source article
// is rewritten into, plus the model and image settings used on the way.
type Config struct {
	Name         string `yaml:"-"` // Derived from filename (without .yml extension)
	SystemPrompt string `yaml:"system_prompt"`
	Model        string `yaml:"model"`
	Enabled      bool   `yaml:"enabled"`

	Image      ImageSettings      `yaml:"image"`
	Extraction ExtractionSettings `yaml:"extraction"`
}

type ImageSettings struct {
	Size    string `yaml:"size"`
	Quality string `yaml:"quality"`
}

type ExtractionSettings struct {
	UseReadability bool `yaml:"use_readability"`
}

// DefaultName is the style used when a submission names none.
const DefaultName = "gen-alpha"

// Default returns the built-in style matching the site's house voice. It
// is registered even when the styles directory is empty.
func Default() *Config {
	return &Config{
		Name:         DefaultName,
		SystemPrompt: "You are a writer for a news site aimed at Gen Alpha. Rewrite the article you are given so it is simple, fun, and engaging for a young audience. Start with a short, punchy headline on the first line.",
		Enabled:      true,
		Image: ImageSettings{
			Size:    "1024x1024",
			Quality: "standard",
		},
	}
}
