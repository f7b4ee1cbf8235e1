package env

import (
	"errors"
	"os"

	"prize_pool/internal/config"
)

const (
	auditDirEnvName = "AUDIT_DIR"
)

type auditConfig struct {
	dir string
}

func NewAuditConfig() (config.AuditConfig, error) {
	dir := os.Getenv(auditDirEnvName)
	if len(dir) == 0 {
		return nil, errors.New("audit dir not found")
	}

	return &auditConfig{
		dir: dir,
	}, nil
}

func (cfg *auditConfig) Dir() string {
	return cfg.dir
}
