// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "openimpact/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CrawlConfig holds settings for the arXiv crawler.
type CrawlConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxPapers is the maximum number of papers fetched per listing crawl
	// (default 100).
	MaxPapers int `json:"max_papers" yaml:"max_papers"`

	// FetchDelay is the delay between consecutive paper fetches (default 1s).
	FetchDelay time.Duration `json:"fetch_delay" yaml:"fetch_delay"`
}

// StoreConfig holds settings for the paper store.
type StoreConfig struct {
	// DataDir is the directory holding the SQLite database (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// AIConfig holds settings for the summarization model endpoint. The endpoint
// is any OpenAI-compatible chat-completions API; the platform points it at a
// Gemini-compatible base URL by default.
type AIConfig struct {
	// Model is the model identifier (e.g. "gemini-1.5-flash-latest").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the model API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the API base URL. Empty uses the SDK default.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// Temperature is the sampling temperature (default 0.7).
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ServerConfig holds settings for the backend HTTP service.
type ServerConfig struct {
	// Port is the listen port (default 8000).
	Port int `json:"port" yaml:"port"`

	// CacheAddr is the redis address for the search cache. Empty disables
	// caching.
	CacheAddr string `json:"cache_addr,omitempty" yaml:"cache_addr,omitempty"`

	// CachePassword is the redis password, if any.
	CachePassword string `json:"cache_password,omitempty" yaml:"cache_password,omitempty"`

	// CacheTTL is how long cached search responses live (default 5m).
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`
}

// ClientConfig holds settings for the search trigger client.
type ClientConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the backend base endpoint (default "http://localhost:8000").
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// PlatformConfig groups all component configurations.
type PlatformConfig struct {
	Crawl  CrawlConfig  `json:"crawl" yaml:"crawl"`
	Store  StoreConfig  `json:"store" yaml:"store"`
	AI     AIConfig     `json:"ai" yaml:"ai"`
	Server ServerConfig `json:"server" yaml:"server"`
	Client ClientConfig `json:"client" yaml:"client"`
}
