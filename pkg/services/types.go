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
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrTransactionNotFound is returned when a session has no BankID transaction.
var ErrTransactionNotFound = errors.New("transaction not found")

// Status is the lifecycle state of a BankID transaction. Once a transaction
// reaches a terminal status it never becomes pending again.
type Status string

const (
	// StatusPending means the order is waiting for a user action.
	StatusPending Status = "pending"
	// StatusComplete means the user signed and the order carries completion data.
	StatusComplete Status = "complete"
	// StatusFailed means the order ended without a signature.
	StatusFailed Status = "failed"
)

// StatusFromString maps a relying-party status string onto a Status.
// Anything unrecognized is treated as failed.
func StatusFromString(status string) Status {
	switch strings.ToLower(status) {
	case "pending":
		return StatusPending
	case "complete":
		return StatusComplete
	default:
		return StatusFailed
	}
}

// Terminal returns true for complete and failed.
func (s Status) Terminal() bool {
	return s == StatusComplete || s == StatusFailed
}

// Transaction is the session-scoped record of one BankID order. It is owned
// by a single session and never shared across sessions.
type Transaction struct {
	// TransactionID is generated locally and never sent to the relying party.
	TransactionID  string
	OrderRef       string
	QRStartToken   string
	QRStartSecret  string
	AutoStartToken string
	StartTime      time.Time
	Status         Status

	// LastCollect and LastCollectResponse cache the most recent relying-party
	// collect call so repeated client polling does not hammer the API.
	LastCollect         time.Time
	LastCollectResponse *CollectResponse
}

// NewTransaction builds a pending Transaction from a start response.
func NewTransaction(start StartTransactionResponse, startTime time.Time) *Transaction {
	return &Transaction{
		TransactionID:  uuid.New().String(),
		OrderRef:       start.OrderRef,
		QRStartToken:   start.QRStartToken,
		QRStartSecret:  start.QRStartSecret,
		AutoStartToken: start.AutoStartToken,
		StartTime:      startTime,
		Status:         StatusPending,
	}
}

// CollectResult is the normalized outcome of a collect call.
type CollectResult struct {
	Transaction *Transaction
	Status      Status
	HintCode    string
	// QRCode is only set while the transaction is pending with
	// hint code outstandingTransaction.
	QRCode string
	// CompletionResult is only set when Status is complete.
	CompletionResult *CompletionResult
}

// CompletionResult carries the identity and signed text of a completed order.
type CompletionResult struct {
	Name string
	// PersonalNumber is nil when the relying party did not return one.
	PersonalNumber *string
	// SignedText is the user visible data recovered from the digital
	// signature, empty when the signature carried none.
	SignedText string
}
