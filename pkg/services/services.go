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

import "time"

//go:generate mockgen -source services.go -destination mock/services.go -package mock

// RelyingParty is the client interface for the BankID relying-party API.
type RelyingParty interface {
	// CheckConnection verifies the mutual TLS channel to the relying-party
	// API. It reports an outcome rather than returning an error.
	CheckConnection() ConnectionStatus
	StartAuthentication(request StartAuthenticationRequest) (*StartTransactionResponse, error)
	StartSignature(request StartSignatureRequest) (*StartTransactionResponse, error)
	Collect(orderRef string) (*CollectResponse, error)
	Cancel(orderRef string) error
}

// TransactionStore holds at most one Transaction per session.
type TransactionStore interface {
	Get(sessionID string) *Transaction
	Put(sessionID string, transaction *Transaction)
	Delete(sessionID string)
}

// AuditLogger receives the raw collect response of every freshly completed
// transaction. Implementations must not fail the surrounding collect call.
type AuditLogger interface {
	LogCollectResponse(response *CollectResponse)
}

// ConnectionStatus is the outcome of a relying-party connection check.
type ConnectionStatus struct {
	Healthy bool
	Latency time.Duration
}
