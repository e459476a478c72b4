package config

// AllConfig holds every configuration file the service reads.
type AllConfig struct {
	Service *ServiceConfig
	Discord *DiscordConfig
	Cache   *CacheConfig
}

// ServiceConfig reflects lipi.json.
type ServiceConfig struct {
	Port            int             `json:"port"`
	DefaultTarget   string          `json:"default_target"`
	MaxUploadMB     int             `json:"max_upload_mb"`
	LineWorkers     int             `json:"line_workers"`
	LineQueue       int             `json:"line_queue"`
	OCR             OCRConfig       `json:"ocr"`
	Transliteration TranslitConfig  `json:"transliteration"`
	Speech          SpeechConfig    `json:"speech"`
	Upstreams       []UpstreamEntry `json:"upstreams,omitempty"`
}

// OCRConfig selects and configures the image-to-text engine.
type OCRConfig struct {
	Engine            string   `json:"engine"` // "vlm" or "tesseract"
	ServerURL         string   `json:"server_url"`
	Model             string   `json:"model"`
	MaxTokens         int      `json:"max_tokens"`
	MaxImageDimension int      `json:"max_image_dimension"`
	Languages         []string `json:"languages"`
	TimeoutSeconds    int      `json:"timeout_seconds"`
}

// TranslitConfig configures the Aksharamukha engine and its cache.
type TranslitConfig struct {
	ServerURL       string `json:"server_url"`
	TimeoutSeconds  int    `json:"timeout_seconds"`
	CacheTTLMinutes int    `json:"cache_ttl_minutes"`
}

// SpeechConfig configures Google Cloud Speech for voice uploads.
type SpeechConfig struct {
	Enabled         bool   `json:"enabled"`
	LanguageCode    string `json:"language_code"`
	CredentialsFile string `json:"credentials_file,omitempty"`
	FFmpegPath      string `json:"ffmpeg_path"`
}

// UpstreamEntry is an extra endpoint for the health checker to poll.
type UpstreamEntry struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
}

// DiscordConfig reflects discord.json. Both fields empty disables the Discord
// log sink.
type DiscordConfig struct {
	Token        string `json:"token"`
	LogChannelID string `json:"log_channel_id"`
}

// CacheConfig reflects cache.json.
type CacheConfig struct {
	Local *ConnectionConfig `json:"local"`
}

// ConnectionConfig holds Redis connection details.
type ConnectionConfig struct {
	Addr     string `json:"addr"`
	Username string `json:"username"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}
