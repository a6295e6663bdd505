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

// Package configuration loads the gateway configuration from a yaml file.
package configuration

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/nuts-foundation/nuts-bankid/logging"
	"github.com/nuts-foundation/nuts-bankid/pkg/services"
	"github.com/nuts-foundation/nuts-bankid/pkg/services/relyingparty"
)

// BankIDConfiguration is the root configuration of the gateway.
type BankIDConfiguration struct {
	HTTPPort    int    `mapstructure:"http_port"`
	HTTPAddress string `mapstructure:"http_address"`
	// Domain is the domain name end users reach this gateway on. It is
	// reported to BankID as the referring domain.
	Domain string `mapstructure:"domain"`

	RelyingParty RelyingPartyConfiguration `mapstructure:"relying_party"`

	// Optional requirement defaults per order type.
	AuthenticationRequirements *services.Requirements `mapstructure:"authentication_requirements"`
	SigningRequirements        *services.Requirements `mapstructure:"signing_requirements"`
}

// RelyingPartyConfiguration configures the mutual TLS client for the BankID
// relying-party API.
type RelyingPartyConfiguration struct {
	URL                  string `mapstructure:"url"`
	ConnectTimeoutMillis int    `mapstructure:"connect_timeout_millis"`
	ReadTimeoutMillis    int    `mapstructure:"read_timeout_millis"`

	ClientCertStorePath     string `mapstructure:"client_cert_store_path"`
	ClientCertStorePassword string `mapstructure:"client_cert_store_password"`
	TrustStorePath          string `mapstructure:"trust_store_path"`
	TrustStorePassword      string `mapstructure:"trust_store_password"`
}

func LoadConfigFromFile(path, filename string) (*BankIDConfiguration, error) {
	config := BankIDConfiguration{}
	config.SetDefaults()
	if err := config.LoadFromFile(path, filename); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (config *BankIDConfiguration) LoadFromFile(path, filename string) error {
	logging.Log().Infof("Loading config from %s/%s.yaml", path, filename)
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(filename)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(&config)
}

func (config *BankIDConfiguration) SetDefaults() {
	config.HTTPPort = 3000
	config.HTTPAddress = "localhost"
	config.RelyingParty.URL = "https://appapi2.test.bankid.com/rp/v6.0"
}

func (config *BankIDConfiguration) Validate() error {
	if config.Domain == "" {
		return errors.New("domain is required")
	}
	if config.RelyingParty.URL == "" {
		return errors.New("relying_party.url is required")
	}
	return nil
}

// Address is the host:port the HTTP server binds to.
func (config *BankIDConfiguration) Address() string {
	return fmt.Sprintf("%s:%d", config.HTTPAddress, config.HTTPPort)
}

// RelyingPartyConfig converts the configuration to the client's config type.
func (config *BankIDConfiguration) RelyingPartyConfig() relyingparty.Config {
	return relyingparty.Config{
		URL:                     config.RelyingParty.URL,
		ConnectTimeout:          time.Duration(config.RelyingParty.ConnectTimeoutMillis) * time.Millisecond,
		ReadTimeout:             time.Duration(config.RelyingParty.ReadTimeoutMillis) * time.Millisecond,
		ClientCertStorePath:     config.RelyingParty.ClientCertStorePath,
		ClientCertStorePassword: config.RelyingParty.ClientCertStorePassword,
		TrustStorePath:          config.RelyingParty.TrustStorePath,
		TrustStorePassword:      config.RelyingParty.TrustStorePassword,
	}
}
