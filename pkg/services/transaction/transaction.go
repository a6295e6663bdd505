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

// Package transaction orchestrates BankID transactions: it starts orders,
// throttles collect polling, generates QR payloads and extracts the signed
// proof of completed orders.
package transaction

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nuts-foundation/nuts-bankid/logging"
	"github.com/nuts-foundation/nuts-bankid/pkg/models"
	"github.com/nuts-foundation/nuts-bankid/pkg/services"
	"github.com/nuts-foundation/nuts-bankid/pkg/services/signature"
)

// ErrInvalidRequest is returned for caller-input violations. The message
// names the violated constraint.
var ErrInvalidRequest = errors.New("invalid transaction request")

// hint code under which the client shows an animated QR code
const hintOutstandingTransaction = "outstandingTransaction"

// userVisibleDataFormatMarkdown is the only accepted non-default format.
const userVisibleDataFormatMarkdown = "simpleMarkdownV1"

// post-encoding length limits per the relying-party API
const (
	authVisibleMaxLength    = 1500
	authNonVisibleMaxLength = 1500
	signVisibleMaxLength    = 40000
	signNonVisibleMaxLength = 200000
)

// Config holds the operator supplied requirement defaults. They are merged
// under the forced risk ceiling, never over it.
type Config struct {
	AuthenticationRequirements *services.Requirements
	SigningRequirements        *services.Requirements
}

// StartRequest carries the caller input for a new auth or sign order.
type StartRequest struct {
	EndUserIP       string
	UserVisibleData string
	// UserVisibleDataFormat is empty or simpleMarkdownV1.
	UserVisibleDataFormat string
	UserNonVisibleData    string
	// PinCode overrides the configured PIN requirement for this order.
	PinCode *bool
	Web     WebContext
}

// WebContext describes the web session an order is started from.
// All fields are mandatory.
type WebContext struct {
	ReferringDomain  string
	UserAgent        string
	DeviceIdentifier string
}

// Service drives the transaction state machine. It holds no state of its
// own: transactions live in the session-keyed store.
type Service struct {
	relyingParty services.RelyingParty
	store        services.TransactionStore
	audit        services.AuditLogger
	config       Config

	// now is replaced in tests
	now func() time.Time
}

// NewService wires the orchestrator to its collaborators.
func NewService(relyingParty services.RelyingParty, store services.TransactionStore, audit services.AuditLogger, config Config) *Service {
	return &Service{
		relyingParty: relyingParty,
		store:        store,
		audit:        audit,
		config:       config,
		now:          time.Now,
	}
}

// StartAuthentication starts an authentication order for the session.
// A pending order for the same session is cancelled first.
func (s *Service) StartAuthentication(sessionID string, request StartRequest) (*services.Transaction, error) {
	s.cancelPending(sessionID)

	wireRequest := services.StartAuthenticationRequest{
		EndUserIP:   request.EndUserIP,
		ReturnRisk:  true,
		Requirement: s.requirement(s.config.AuthenticationRequirements, request.PinCode),
	}

	if request.UserVisibleData != "" {
		visibleData, err := encodeUserData(request.UserVisibleData, authVisibleMaxLength, "userVisibleData")
		if err != nil {
			return nil, err
		}
		wireRequest.UserVisibleData = visibleData.String()

		if wireRequest.UserVisibleDataFormat, err = visibleDataFormat(request.UserVisibleDataFormat); err != nil {
			return nil, err
		}
	}

	if request.UserNonVisibleData != "" {
		nonVisibleData, err := encodeUserData(request.UserNonVisibleData, authNonVisibleMaxLength, "userNonVisibleData")
		if err != nil {
			return nil, err
		}
		wireRequest.UserNonVisibleData = nonVisibleData.String()
	}

	web, err := services.NewAdditionalWebData(request.Web.ReferringDomain, request.Web.UserAgent, request.Web.DeviceIdentifier)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	wireRequest.Web = &web

	startResponse, err := s.relyingParty.StartAuthentication(wireRequest)
	if err != nil {
		logging.Log().Infof("Failed to start authentication: %v", err)
		return nil, err
	}

	tx := services.NewTransaction(*startResponse, s.now())
	s.store.Put(sessionID, tx)

	return tx, nil
}

// StartSigning starts a signature order for the session. The user visible
// data is mandatory. A pending order for the same session is cancelled first.
func (s *Service) StartSigning(sessionID string, request StartRequest) (*services.Transaction, error) {
	s.cancelPending(sessionID)

	if strings.TrimSpace(request.UserVisibleData) == "" {
		return nil, fmt.Errorf("%w: userVisibleData is required for signing", ErrInvalidRequest)
	}

	visibleData, err := encodeUserData(request.UserVisibleData, signVisibleMaxLength, "userVisibleData")
	if err != nil {
		return nil, err
	}

	wireRequest := services.StartSignatureRequest{
		EndUserIP:       request.EndUserIP,
		UserVisibleData: visibleData.String(),
		Requirement:     s.requirement(s.config.SigningRequirements, request.PinCode),
	}

	if wireRequest.UserVisibleDataFormat, err = visibleDataFormat(request.UserVisibleDataFormat); err != nil {
		return nil, err
	}

	if request.UserNonVisibleData != "" {
		nonVisibleData, err := encodeUserData(request.UserNonVisibleData, signNonVisibleMaxLength, "userNonVisibleData")
		if err != nil {
			return nil, err
		}
		wireRequest.UserNonVisibleData = nonVisibleData.String()
	}

	web, err := services.NewAdditionalWebData(request.Web.ReferringDomain, request.Web.UserAgent, request.Web.DeviceIdentifier)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	wireRequest.Web = &web

	startResponse, err := s.relyingParty.StartSignature(wireRequest)
	if err != nil {
		logging.Log().Infof("Failed to start signing: %v", err)
		return nil, err
	}

	tx := services.NewTransaction(*startResponse, s.now())
	s.store.Put(sessionID, tx)

	return tx, nil
}

// Collect returns the current state of the session's transaction. The
// relying party is only called when the throttle allows it, otherwise the
// cached response is replayed.
func (s *Service) Collect(sessionID string) (*services.CollectResult, error) {
	tx := s.store.Get(sessionID)
	if tx == nil {
		return nil, services.ErrTransactionNotFound
	}

	collectResponse := tx.LastCollectResponse
	if s.shouldCollect(tx) {
		response, err := s.relyingParty.Collect(tx.OrderRef)
		if err != nil {
			return nil, err
		}

		status := services.StatusFromString(response.Status)

		// Keep the completion data of every finished order for
		// compliance and audits.
		if status == services.StatusComplete {
			s.audit.LogCollectResponse(response)
		}

		tx.LastCollectResponse = response
		tx.LastCollect = s.now()
		tx.Status = status
		s.store.Put(sessionID, tx)

		collectResponse = response
	}

	result := &services.CollectResult{
		Transaction: tx,
		Status:      services.StatusFromString(collectResponse.Status),
		HintCode:    collectResponse.HintCode,
	}

	// Only pending orders waiting for a device hand-off show a QR code.
	if result.Status == services.StatusPending && result.HintCode == hintOutstandingTransaction {
		elapsedSeconds := int64(s.now().Sub(tx.StartTime) / time.Second)
		qrData, err := QRData(tx.QRStartToken, tx.QRStartSecret, elapsedSeconds)
		if err != nil {
			logging.Log().Warnf("Could not generate QR data: %v", err)
		} else {
			result.QRCode = qrData
		}
	}

	if result.Status == services.StatusComplete {
		completionResult, err := s.completionResult(collectResponse)
		if err != nil {
			return nil, err
		}
		result.CompletionResult = completionResult
	}

	return result, nil
}

// Cancel aborts the session's transaction. Once a local record existed the
// caller is always told the cancel succeeded: the relying-party outcome does
// not matter to a user who abandoned the flow, and the record is removed
// either way.
func (s *Service) Cancel(sessionID string) error {
	tx := s.store.Get(sessionID)
	if tx == nil {
		return services.ErrTransactionNotFound
	}

	if err := s.relyingParty.Cancel(tx.OrderRef); err != nil {
		logging.Log().Infof("Failed to cancel transaction: %v", err)
	}
	s.store.Delete(sessionID)

	return nil
}

// cancelPending cancels a pending order before a new one is started.
// Best effort: a failed cancel never blocks the new order.
func (s *Service) cancelPending(sessionID string) {
	tx := s.store.Get(sessionID)
	if tx == nil || tx.Status.Terminal() {
		return
	}

	if err := s.Cancel(sessionID); err != nil {
		logging.Log().Infof("Failed to cancel pending transaction: %v", err)
	}
}

// shouldCollect applies the polling throttle: call the relying party on the
// first collect, and after that only while the cached status is pending and
// more than one second passed since the cached response. A terminal cached
// status is replayed forever without another network call.
func (s *Service) shouldCollect(tx *services.Transaction) bool {
	if tx.LastCollectResponse == nil || tx.LastCollect.IsZero() {
		return true
	}

	return s.now().Sub(tx.LastCollect) > time.Second &&
		strings.EqualFold(tx.LastCollectResponse.Status, "pending")
}

func (s *Service) completionResult(response *services.CollectResponse) (*services.CompletionResult, error) {
	if response.CompletionData == nil {
		return nil, fmt.Errorf("%w: completion data missing", signature.ErrSignatureMalformed)
	}

	signatureBlob, err := models.NewBase64String(response.CompletionData.Signature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", signature.ErrSignatureMalformed, err)
	}

	digSig, err := signature.ParseDigitalSignature(signatureBlob)
	if err != nil {
		return nil, err
	}

	completionResult := &services.CompletionResult{}
	if user := response.CompletionData.User; user != nil {
		completionResult.Name = user.Name
		completionResult.PersonalNumber = user.PersonalNumber
	}

	// the signature of an authentication order carries no visible data
	if digSig.UserVisibleData != "" {
		signedText, err := base64.StdEncoding.DecodeString(digSig.UserVisibleData)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid visible data encoding: %v", signature.ErrSignatureMalformed, err)
		}
		completionResult.SignedText = string(signedText)
	}

	return completionResult, nil
}

func (s *Service) requirement(defaults *services.Requirements, pinCode *bool) *services.Requirements {
	requirement := services.Requirements{}
	if defaults != nil {
		requirement = *defaults
	}

	// Hard security policy: only low risk transactions are accepted,
	// whatever the configuration says.
	requirement.Risk = services.RiskLow
	requirement.PinCode = pinCode

	return &requirement
}

func encodeUserData(data string, maxLength int, name string) (models.Base64String, error) {
	encoded, err := models.NewBase64String(base64.StdEncoding.EncodeToString([]byte(data)))
	if err != nil {
		return models.Base64String{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if len(encoded.String()) > maxLength {
		return models.Base64String{}, fmt.Errorf("%w: %s exceeds %d characters after encoding", ErrInvalidRequest, name, maxLength)
	}

	return encoded, nil
}

func visibleDataFormat(format string) (string, error) {
	if format != "" && format != userVisibleDataFormatMarkdown {
		return "", fmt.Errorf("%w: only %s is accepted as userVisibleDataFormat", ErrInvalidRequest, userVisibleDataFormatMarkdown)
	}
	return format, nil
}
