package cfg

type Cfg struct {
	// Content store configuration
	SpaceID         string
	Environment     string
	AccessToken     string
	ManagementToken string
	DeliveryURL     string
	ManagementURL   string

	// Language model configuration
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	// Application configuration
	Port              string
	DBPath            string
	StylesDir         string
	SourcesDir        string
	WorkerCount       int
	SchedulerInterval int
	FeedCacheTTL      int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
