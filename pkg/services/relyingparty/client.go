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

package relyingparty

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"strings"
	"time"

	pkgErrors "github.com/pkg/errors"
	"software.sslmate.com/src/go-pkcs12"

	"github.com/nuts-foundation/nuts-bankid/logging"
	"github.com/nuts-foundation/nuts-bankid/pkg/services"
)

// ErrInvalidConfiguration is returned by NewClient when the TLS material is
// missing or cannot be loaded. The process must not serve traffic after it.
var ErrInvalidConfiguration = errors.New("invalid relying party configuration")

// ErrStartFailed is returned when an auth or sign order could not be created.
var ErrStartFailed = errors.New("failed to start transaction")

// ErrCollectFailed is returned when the status of an order could not be collected.
var ErrCollectFailed = errors.New("failed to collect transaction")

// ErrCancelFailed is returned when the relying party did not confirm a cancel.
var ErrCancelFailed = errors.New("failed to cancel transaction")

const (
	defaultConnectTimeout = 5 * time.Second
	defaultReadTimeout    = 5 * time.Second
)

// Config holds the connection settings for the relying-party API.
type Config struct {
	// URL is the base url of the relying-party API, e.g.
	// https://appapi2.test.bankid.com/rp/v6.0
	URL string

	// ConnectTimeout bounds TCP/TLS connection establishment,
	// ReadTimeout bounds the time to the first byte of a response.
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration

	// ClientCertStore is a password protected PKCS#12 store holding the
	// relying-party certificate and key used for mutual TLS.
	ClientCertStorePath     string
	ClientCertStorePassword string

	// TrustStore is a password protected PKCS#12 store holding the
	// relying-party API server CA certificates.
	TrustStorePath     string
	TrustStorePassword string
}

// Client talks to the BankID relying-party API over mutual TLS. A single
// Client is safe for concurrent use and should live for the whole process.
type Client struct {
	config     Config
	httpClient *http.Client
}

var _ services.RelyingParty = (*Client)(nil)

// NewClient builds the shared TLS context and connection pool. It fails fast
// on missing or unreadable TLS material.
func NewClient(config Config) (*Client, error) {
	if config.ConnectTimeout == 0 {
		config.ConnectTimeout = defaultConnectTimeout
	}
	if config.ReadTimeout == 0 {
		config.ReadTimeout = defaultReadTimeout
	}

	tlsConfig, err := newTLSConfig(config)
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: config.ConnectTimeout,
		}).DialContext,
		TLSHandshakeTimeout:   config.ConnectTimeout,
		ResponseHeaderTimeout: config.ReadTimeout,
		TLSClientConfig:       tlsConfig,
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Transport: transport},
	}, nil
}

func newTLSConfig(config Config) (*tls.Config, error) {
	if strings.TrimSpace(config.TrustStorePath) == "" {
		return nil, fmt.Errorf("%w: trust store path is not configured", ErrInvalidConfiguration)
	}
	if strings.TrimSpace(config.ClientCertStorePath) == "" {
		return nil, fmt.Errorf("%w: client cert store path is not configured", ErrInvalidConfiguration)
	}
	if strings.TrimSpace(config.TrustStorePassword) == "" {
		return nil, fmt.Errorf("%w: trust store password is not configured", ErrInvalidConfiguration)
	}
	if strings.TrimSpace(config.ClientCertStorePassword) == "" {
		return nil, fmt.Errorf("%w: client cert store password is not configured", ErrInvalidConfiguration)
	}

	clientCert, err := loadClientCertStore(config.ClientCertStorePath, config.ClientCertStorePassword)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	trustPool, err := loadTrustStore(config.TrustStorePath, config.TrustStorePassword)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	return &tls.Config{
		MinVersion:   tls.VersionTLS12,
		Certificates: []tls.Certificate{clientCert},
		RootCAs:      trustPool,
	}, nil
}

func loadClientCertStore(path, password string) (tls.Certificate, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return tls.Certificate{}, pkgErrors.Wrap(err, "failed to open client cert store")
	}

	key, cert, caCerts, err := pkcs12.DecodeChain(data, password)
	if err != nil {
		return tls.Certificate{}, pkgErrors.Wrap(err, "failed to decode client cert store")
	}

	chain := [][]byte{cert.Raw}
	for _, caCert := range caCerts {
		chain = append(chain, caCert.Raw)
	}

	return tls.Certificate{
		Certificate: chain,
		PrivateKey:  key,
		Leaf:        cert,
	}, nil
}

func loadTrustStore(path, password string) (*x509.CertPool, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, pkgErrors.Wrap(err, "failed to open trust store")
	}

	certs, err := pkcs12.DecodeTrustStore(data, password)
	if err != nil {
		return nil, pkgErrors.Wrap(err, "failed to decode trust store")
	}

	pool := x509.NewCertPool()
	for _, cert := range certs {
		pool.AddCert(cert)
	}

	return pool, nil
}

// CheckConnection issues an unauthenticated GET against the auth endpoint.
// The relying party must answer 405 there: any other status, a 200 included,
// means the channel is broken or misconfigured.
func (c *Client) CheckConnection() services.ConnectionStatus {
	start := time.Now()

	request, err := http.NewRequest(http.MethodGet, c.endpoint("auth"), nil)
	if err != nil {
		return services.ConnectionStatus{Healthy: false, Latency: time.Since(start)}
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		logging.Log().Warnf("Got error while checking connection with BankID RP: %v", err)
		return services.ConnectionStatus{Healthy: false, Latency: time.Since(start)}
	}
	defer response.Body.Close()

	status := services.ConnectionStatus{
		Healthy: response.StatusCode == http.StatusMethodNotAllowed,
		Latency: time.Since(start),
	}
	if !status.Healthy {
		logging.Log().Warnf("Got unexpected HTTP status from BankID RP: %d", response.StatusCode)
	}

	return status
}

// StartAuthentication creates an authentication order.
func (c *Client) StartAuthentication(request services.StartAuthenticationRequest) (*services.StartTransactionResponse, error) {
	return c.startTransaction("auth", request)
}

// StartSignature creates a signature order.
func (c *Client) StartSignature(request services.StartSignatureRequest) (*services.StartTransactionResponse, error) {
	return c.startTransaction("sign", request)
}

func (c *Client) startTransaction(path string, request interface{}) (*services.StartTransactionResponse, error) {
	start := time.Now()

	body, err := c.post(path, request)
	if err != nil {
		logging.Log().Warnf("Query to start %s transaction failed after %s: %v", path, time.Since(start), err)
		return nil, fmt.Errorf("%w: %v", ErrStartFailed, err)
	}

	response := &services.StartTransactionResponse{}
	if err := json.Unmarshal(body, response); err != nil {
		logging.Log().Warnf("Response to start %s transaction could not be read: %v", path, err)
		return nil, fmt.Errorf("%w: malformed response", ErrStartFailed)
	}
	if response.OrderRef == "" || response.AutoStartToken == "" {
		logging.Log().Warnf("Response to start %s transaction misses required fields", path)
		return nil, fmt.Errorf("%w: incomplete response", ErrStartFailed)
	}

	return response, nil
}

// Collect retrieves the current status of an order. Callers should keep
// collecting every two seconds as long as the status indicates pending.
func (c *Client) Collect(orderRef string) (*services.CollectResponse, error) {
	body, err := c.post("collect", services.CollectRequest{OrderRef: orderRef})
	if err != nil {
		logging.Log().Warnf("Query to collect transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrCollectFailed, err)
	}

	response := &services.CollectResponse{}
	if err := json.Unmarshal(body, response); err != nil {
		logging.Log().Warnf("Response to collect transaction could not be read: %v", err)
		return nil, fmt.Errorf("%w: malformed response", ErrCollectFailed)
	}
	if response.OrderRef == "" {
		logging.Log().Warnf("Response to collect transaction misses the orderRef")
		return nil, fmt.Errorf("%w: incomplete response", ErrCollectFailed)
	}

	return response, nil
}

// Cancel aborts an ongoing order. The relying party confirms a cancel with
// an empty JSON object and nothing else counts as success.
func (c *Client) Cancel(orderRef string) error {
	body, err := c.post("cancel", services.CollectRequest{OrderRef: orderRef})
	if err != nil {
		logging.Log().Warnf("Query to cancel transaction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrCancelFailed, err)
	}

	if strings.TrimSpace(string(body)) != "{}" {
		return fmt.Errorf("%w: unexpected response body", ErrCancelFailed)
	}

	return nil
}

func (c *Client) post(path string, payload interface{}) ([]byte, error) {
	content, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequest(http.MethodPost, c.endpoint(path), bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	body, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("expected status 200 but got %d with message %q", response.StatusCode, body)
	}

	return body, nil
}

func (c *Client) endpoint(path string) string {
	return strings.TrimSuffix(c.config.URL, "/") + "/" + path
}
