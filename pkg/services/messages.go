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

package services

import (
	"fmt"
	"strings"
)

// RiskRequirement is the highest transaction risk the relying party accepts.
type RiskRequirement string

const (
	// RiskLow only accepts low risk transactions.
	RiskLow RiskRequirement = "low"
	// RiskModerate accepts low and moderate risk transactions.
	RiskModerate RiskRequirement = "moderate"
)

// Requirements restricts how an authentication or signature order may be
// completed. All fields are optional on the wire.
type Requirements struct {
	// CardReader is class1 or class2, combine with CertificatePolicies for
	// a smart card to avoid undefined behavior.
	CardReader string `json:"cardReader,omitempty" mapstructure:"cardreader"`
	// CertificatePolicies lists accepted oids in the user certificate,
	// one wildcard allowed from position 5, e.g. 1.2.752.78.*
	CertificatePolicies []string `json:"certificatePolicies,omitempty" mapstructure:"certificatepolicies"`
	// PinCode forces the user to sign with their PIN code even when
	// biometrics are activated.
	PinCode *bool `json:"pinCode,omitempty" mapstructure:"pincode"`
	// MRTD requires machine readable travel document information.
	MRTD *bool `json:"mrtd,omitempty" mapstructure:"mrtd"`
	// PersonalNumber restricts completion to one specific BankID.
	PersonalNumber string          `json:"personalNumber,omitempty" mapstructure:"personalnumber"`
	Risk           RiskRequirement `json:"risk,omitempty" mapstructure:"risk"`
}

const (
	referringDomainMinLength  = 3
	userAgentMaxLength        = 256
	deviceIdentifierMaxLength = 64
)

// AdditionalWebData describes the web session a transaction was started from.
// It feeds the relying-party risk indication.
type AdditionalWebData struct {
	ReferringDomain  string `json:"referringDomain"`
	UserAgent        string `json:"userAgent"`
	DeviceIdentifier string `json:"deviceIdentifier"`
}

// NewAdditionalWebData validates the mandatory web metadata. User agent and
// device identifier are truncated to the wire maximums.
func NewAdditionalWebData(referringDomain, userAgent, deviceIdentifier string) (AdditionalWebData, error) {
	if len(referringDomain) < referringDomainMinLength {
		return AdditionalWebData{}, fmt.Errorf("referringDomain cannot be empty or shorter than %d characters", referringDomainMinLength)
	}
	if strings.TrimSpace(userAgent) == "" {
		return AdditionalWebData{}, fmt.Errorf("userAgent cannot be empty")
	}
	if strings.TrimSpace(deviceIdentifier) == "" {
		return AdditionalWebData{}, fmt.Errorf("deviceIdentifier cannot be empty")
	}

	if len(userAgent) > userAgentMaxLength {
		userAgent = userAgent[:userAgentMaxLength]
	}
	if len(deviceIdentifier) > deviceIdentifierMaxLength {
		deviceIdentifier = deviceIdentifier[:deviceIdentifierMaxLength]
	}

	return AdditionalWebData{
		ReferringDomain:  referringDomain,
		UserAgent:        userAgent,
		DeviceIdentifier: deviceIdentifier,
	}, nil
}

// StartAuthenticationRequest is the wire format of an auth order.
type StartAuthenticationRequest struct {
	EndUserIP             string             `json:"endUserIp"`
	UserVisibleData       string             `json:"userVisibleData,omitempty"`
	UserVisibleDataFormat string             `json:"userVisibleDataFormat,omitempty"`
	UserNonVisibleData    string             `json:"userNonVisibleData,omitempty"`
	ReturnRisk            bool               `json:"returnRisk,omitempty"`
	Requirement           *Requirements      `json:"requirement,omitempty"`
	Web                   *AdditionalWebData `json:"web,omitempty"`
}

// StartSignatureRequest is the wire format of a sign order.
// Unlike authentication the user visible data is mandatory.
type StartSignatureRequest struct {
	EndUserIP             string             `json:"endUserIp"`
	UserVisibleData       string             `json:"userVisibleData"`
	UserVisibleDataFormat string             `json:"userVisibleDataFormat,omitempty"`
	UserNonVisibleData    string             `json:"userNonVisibleData,omitempty"`
	Requirement           *Requirements      `json:"requirement,omitempty"`
	Web                   *AdditionalWebData `json:"web,omitempty"`
}

// StartTransactionResponse is returned by the auth and sign endpoints.
type StartTransactionResponse struct {
	OrderRef       string `json:"orderRef"`
	AutoStartToken string `json:"autoStartToken"`
	QRStartToken   string `json:"qrStartToken"`
	QRStartSecret  string `json:"qrStartSecret"`
}

// CollectRequest is the wire format of collect and cancel calls.
type CollectRequest struct {
	OrderRef string `json:"orderRef"`
}

// CollectResponse is returned by the collect endpoint.
type CollectResponse struct {
	OrderRef       string          `json:"orderRef"`
	Status         string          `json:"status"`
	HintCode       string          `json:"hintCode,omitempty"`
	CompletionData *CompletionData `json:"completionData,omitempty"`
}

// CompletionData is only present once an order completed. The relying party
// expects it to be kept for future reference and audits.
type CompletionData struct {
	User            *UserData   `json:"user,omitempty"`
	Device          *DeviceData `json:"device,omitempty"`
	BankIDIssueDate string      `json:"bankIdIssueDate,omitempty"`
	// Signature is a base64 encoded XML digital signature document.
	Signature    string `json:"signature,omitempty"`
	OCSPResponse string `json:"ocspResponse,omitempty"`
	Risk         string `json:"risk,omitempty"`
}

// UserData identifies the end user of a completed order.
type UserData struct {
	PersonalNumber *string `json:"personalNumber,omitempty"`
	Name           string  `json:"name,omitempty"`
	GivenName      string  `json:"givenName,omitempty"`
	Surname        string  `json:"surname,omitempty"`
}

// DeviceData identifies the device that completed an order.
type DeviceData struct {
	IPAddress string `json:"ipAddress,omitempty"`
	UHI       string `json:"uhi,omitempty"`
}
