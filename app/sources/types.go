package sources

// Config describes one watched source feed: an RSS/Atom feed whose new
// article links are submitted into the ingestion pipeline.
type Config struct {
	Name     string         `yaml:"-"` // Derived from filename (without .yml extension)
	URL      string         `yaml:"url"`
	Style    string         `yaml:"style"`
	Settings ConfigSettings `yaml:"settings"`
}

type ConfigSettings struct {
	Enabled         bool `yaml:"enabled"`
	RefreshInterval int  `yaml:"refresh_interval"` // seconds
	MaxItems        int  `yaml:"max_items"`
}
