package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/scrub-cli/scrub/constant"
	"github.com/scrub-cli/scrub/filesystem"
	"github.com/scrub-cli/scrub/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps config keys onto environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// FileName is the name of the config file inside where.Config().
const FileName = constant.Scrub + ".toml"

// Setup registers defaults and environment bindings, then reads the config file if
// there is one. A missing file is not an error.
func Setup() error {
	viper.SetConfigName(constant.Scrub)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Scrub)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, k := range EnvExposed {
		viper.MustBindEnv(k)
	}

	viper.SetTypeByDefaultValue(true)
	for k, field := range Default {
		viper.SetDefault(k, field.Value)
	}

	err := viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return nil
	}

	return err
}

// Validate checks the effective value of every field, wherever it came from.
func Validate() error {
	var errs []error

	for k, field := range Default {
		if _, err := field.Parse([]string{fmt.Sprint(viper.Get(k))}); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Write persists the current settings, creating the config file when needed.
func Write() error {
	err := viper.WriteConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return viper.SafeWriteConfig()
	}

	return err
}
