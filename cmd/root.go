/*
 * Nuts bankid
 * Copyright (C) 2020. Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nuts-foundation/nuts-bankid/configuration"
)

var configPath string
var configName string

var rootCmd = &cobra.Command{
	Use:   "nuts-bankid",
	Short: "BankID gateway for web applications",
	Long:  `Gateway that lets web applications authenticate users and sign documents through BankID.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", ".", "directory the config file lives in")
	rootCmd.PersistentFlags().StringVar(&configName, "config-name", "nuts-bankid", "name of the config file, without extension")
}

// InitConfig loads and validates the configuration. Commands that need the
// configuration use it as their PersistentPreRun.
func InitConfig(cmd *cobra.Command, args []string) {
	config, err := configuration.LoadConfigFromFile(configPath, configName)
	if err != nil {
		logrus.WithError(err).Panicf("Could not load configuration from %s/%s.yaml", configPath, configName)
	}
	appConfig = config
}

// appConfig is set by InitConfig before a command runs.
var appConfig *configuration.BankIDConfiguration

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
