package commands

import "dario.cat/mergo"

func mergeConfig(dst *Config, src Config) error {
	return mergo.Merge(dst, src, mergo.WithOverride)
}
