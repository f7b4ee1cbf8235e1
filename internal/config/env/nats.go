package env

import (
	"os"

	"prize_pool/internal/config"
)

const (
	natsURLEnvName           = "NATS_URL"
	natsSubjectPrefixEnvName = "NATS_SUBJECT_PREFIX"

	defaultSubjectPrefix = "prize_pool"
)

type natsConfig struct {
	url           string
	subjectPrefix string
}

// NewNATSConfig NATS необязателен: без NATS_URL события уходят в noop
func NewNATSConfig() (config.NATSConfig, error) {
	prefix := os.Getenv(natsSubjectPrefixEnvName)
	if len(prefix) == 0 {
		prefix = defaultSubjectPrefix
	}

	return &natsConfig{
		url:           os.Getenv(natsURLEnvName),
		subjectPrefix: prefix,
	}, nil
}

func (cfg *natsConfig) URL() string {
	return cfg.url
}

func (cfg *natsConfig) SubjectPrefix() string {
	return cfg.subjectPrefix
}
