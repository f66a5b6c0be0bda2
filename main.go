package main

import (
	"github.com/quarterly-sec/qs-api/cmd"

	"github.com/spf13/viper"
)

func configureViper() {
	// read config file
	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	viper.AddConfigPath("/etc/qs-api/")
	viper.AddConfigPath("$HOME/.config/qs-api")
	viper.AddConfigPath(".")

	// the config file is optional; every setting has an env var or flag
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(err)
		}
	}
}

func main() {
	configureViper()
	cmd.Execute()
}
