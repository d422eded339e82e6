package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env     string `env:"ENV" env-default:"local"`
	Storage StorageConfig
	Users   UsersConfig
	Tasks   TasksConfig
}

type StorageConfig struct {
	Dir string `env:"STORAGE_DIR" env-default:".taskvault"`
}

type UsersConfig struct {
	// AvatarMaxBytes caps the size of a data-URI avatar. Defaults to 2 MiB.
	AvatarMaxBytes int `env:"AVATAR_MAX_BYTES" env-default:"2097152"`
}

type TasksConfig struct {
	// MutationDelay reproduces the cosmetic loading pause of the
	// dashboard. It carries no correctness meaning and defaults to zero.
	MutationDelay time.Duration `env:"MUTATION_DELAY" env-default:"0s"`
	PageSize      int           `env:"TASKS_PAGE_SIZE" env-default:"7"`
}
