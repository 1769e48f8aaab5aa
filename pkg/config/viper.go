package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/personsync/pkg/constants"
	"github.com/agentstation/personsync/pkg/errors"
)

// envNames maps each option to the environment variable that may set it.
var envNames = map[string]string{
	KeyBaseURL:     constants.EnvPrefix + "_BASE_URL",
	KeyUsername:    constants.EnvPrefix + "_USERNAME",
	KeyPassword:    constants.EnvPrefix + "_PASSWORD",
	KeyBranchID:    constants.EnvPrefix + "_BRANCH_ID",
	KeyTimeout:     constants.EnvPrefix + "_TIMEOUT",
	KeyProbeMethod: constants.EnvPrefix + "_PROBE_METHOD",
}

// EnvName returns the environment variable bound to an option key.
func EnvName(key string) string {
	return envNames[key]
}

// Load reads configuration in order of precedence:
//  1. Environment variables (PERSONSYNC_BASE_URL, ...)
//  2. .env and .env.local in the working directory
//  3. The config file at path, or .personsync.yaml in $HOME or the working directory
//
// overrides are applied on top, for values set by command-line flags.
// When path is empty and the search finds no file, only the environment is
// used. A path given explicitly must exist; otherwise Load returns an
// *errors.IOError. An unreadable file is a ConfigError. Missing options are
// reported with the environment variables that can set them.
func Load(path string, overrides map[string]any) (Config, error) {
	LoadEnvFiles(".env", ".env.local")

	v, err := newViper(path)
	if err != nil {
		return Config{}, err
	}

	settings := make(map[string]any, len(envNames))
	for key := range envNames {
		if v.IsSet(key) {
			settings[key] = v.Get(key)
		}
	}
	for key, value := range overrides {
		settings[key] = value
	}

	cfg, err := FromMap(settings)
	var cerr *errors.ConfigError
	if stderrors.As(err, &cerr) && len(cerr.Keys) > 0 {
		envs := make([]string, 0, len(cerr.Keys))
		for _, key := range cerr.Keys {
			if env := EnvName(key); env != "" {
				envs = append(envs, env)
			}
		}
		if len(envs) > 0 {
			cerr.Message += " (environment: " + strings.Join(envs, ", ") + ")"
		}
	}
	return cfg, err
}

// LoadEnvFiles loads environment variables from the given .env files.
// Later files do not override variables already set.
func LoadEnvFiles(files ...string) {
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()
	for key, env := range envNames {
		if err := v.BindEnv(key, env); err != nil {
			return nil, errors.NewConfigError(component, "binding "+env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.DefaultConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if stderrors.As(err, &notFound) {
			return v, nil
		}
		if path != "" && os.IsNotExist(err) {
			return nil, errors.WrapIO("read", filepath.Clean(path), err)
		}
		return nil, errors.NewConfigError(component, "reading config file", err)
	}
	return v, nil
}
