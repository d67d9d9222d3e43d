package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

const testTerminalsYAML = `
route_prefix: "sea/bi -"
terminals:
  - name: seattle
    alt_names: [sea, " sttl"]
  - name: bainbridge
    alt_names: [bi, bain]
`

func writeTerminalsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "terminals.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "raw-ferry-posts", cfg.KafkaSourceTopic)
	assert.Equal(t, "ferry-wait-observations", cfg.KafkaSinkTopic)
	assert.Equal(t, "ferry-wait-etl", cfg.KafkaGroupID)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.BatchFlushInterval)
	assert.Equal(t, 1000, cfg.DedupeCacheSize)
	assert.Empty(t, cfg.TerminalsFile)
	assert.Equal(t, []string{"edmonds", "kingston"}, cfg.Terminals.Names())
}

func TestLoad_CustomEnv(t *testing.T) {
	path := writeTerminalsFile(t, testTerminalsYAML)

	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SOURCE_TOPIC", "custom-source")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("KAFKA_GROUP_ID", "custom-group")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("BATCH_SIZE", "100")
	t.Setenv("BATCH_FLUSH_INTERVAL", "1s")
	t.Setenv("DEDUPE_CACHE_SIZE", "0")
	t.Setenv("TERMINALS_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-source", cfg.KafkaSourceTopic)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.Equal(t, "custom-group", cfg.KafkaGroupID)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 1*time.Second, cfg.BatchFlushInterval)
	assert.Equal(t, 0, cfg.DedupeCacheSize)
	assert.Equal(t, path, cfg.TerminalsFile)
	assert.Equal(t, []string{"seattle", "bainbridge"}, cfg.Terminals.Names())
	assert.Equal(t, "sea/bi -", cfg.Terminals.RoutePrefix())
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidBatchSize(t *testing.T) {
	t.Setenv("BATCH_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_SIZE")
}

func TestLoad_InvalidBatchFlushInterval(t *testing.T) {
	t.Setenv("BATCH_FLUSH_INTERVAL", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_FLUSH_INTERVAL")
}

func TestLoad_InvalidDedupeCacheSize(t *testing.T) {
	for _, v := range []string{"-1", "lots"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("DEDUPE_CACHE_SIZE", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "DEDUPE_CACHE_SIZE")
		})
	}
}

func TestLoad_MissingTerminalsFile(t *testing.T) {
	t.Setenv("TERMINALS_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestParseTerminals(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		terms, err := ParseTerminals([]byte(testTerminalsYAML))
		require.NoError(t, err)
		assert.Equal(t, []string{"sea", " sttl"}, terms.AltNames()["seattle"])
		assert.Equal(t, []string{"bi", "bain"}, terms.AltNames()["bainbridge"])
	})

	t.Run("route prefix defaults when absent", func(t *testing.T) {
		terms, err := ParseTerminals([]byte("terminals: [{name: edmonds}, {name: kingston}]"))
		require.NoError(t, err)
		assert.Equal(t, "edm/king -", terms.RoutePrefix())
		assert.Empty(t, terms.AltNames()["edmonds"])
	})

	t.Run("explicit empty route prefix", func(t *testing.T) {
		terms, err := ParseTerminals([]byte("route_prefix: \"\"\nterminals: [{name: edmonds}, {name: kingston}]"))
		require.NoError(t, err)
		assert.Empty(t, terms.RoutePrefix())
	})

	t.Run("wrong terminal count", func(t *testing.T) {
		_, err := ParseTerminals([]byte("terminals: [{name: edmonds}]"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid terminals file")
	})

	t.Run("malformed YAML", func(t *testing.T) {
		_, err := ParseTerminals([]byte("terminals: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse terminals file")
	})
}
