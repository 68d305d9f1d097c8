package config

import (
	"time"

	"github.com/spf13/viper"
)

// GetSummarizerProvider returns the configured summarizer backend.
func GetSummarizerProvider() string {
	return viper.GetString("summarizer.provider")
}

// GetSummarizerModel returns the model name for the summarizer.
func GetSummarizerModel() string {
	return viper.GetString("summarizer.model")
}

// GetOllamaURL returns the Ollama API endpoint.
func GetOllamaURL() string {
	return viper.GetString("summarizer.ollama_url")
}

// GetAPIKey returns the API key for hosted summarizer backends.
func GetAPIKey() string {
	return viper.GetString("summarizer.api_key")
}

// GetLockTimeout returns how long mutating operations wait for the
// repository lock.
func GetLockTimeout() time.Duration {
	return time.Duration(viper.GetInt("lock.timeout_ms")) * time.Millisecond
}

// SnapshotEnabled reports whether commits should capture a files
// snapshot of the enclosing git repository.
func SnapshotEnabled() bool {
	return viper.GetBool("snapshot.enabled")
}
