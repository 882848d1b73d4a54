// Package cli defines the sightwords root command and its flags. Flag
// values are bound to viper keys so they can also come from
// ~/.sightwords.yaml or SIGHTWORDS_* environment variables, and custom
// word themes are read from the config file.
package cli
