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

package api

// AuthenticationRequest is the request body for starting an authentication.
type AuthenticationRequest struct {
	UserVisibleData       string `json:"userVisibleData,omitempty"`
	UserVisibleDataFormat string `json:"userVisibleDataFormat,omitempty"`
	UserNonVisibleData    string `json:"userNonVisibleData,omitempty"`
	PinCode               *bool  `json:"pinCode,omitempty"`
}

// SignRequest is the request body for starting a signature.
type SignRequest struct {
	UserVisibleData       string `json:"userVisibleData"`
	UserVisibleDataFormat string `json:"userVisibleDataFormat,omitempty"`
	UserNonVisibleData    string `json:"userNonVisibleData,omitempty"`
	PinCode               *bool  `json:"pinCode,omitempty"`
}

// StartResponse is returned when an order was started. The QR start secret
// never leaves the server: QR codes are handed out by CheckTransaction.
type StartResponse struct {
	TransactionID  string `json:"transactionId"`
	AutoStartToken string `json:"autoStartToken"`
}

// CheckResponse is the polled state of the session's transaction.
type CheckResponse struct {
	Status     string              `json:"status"`
	HintCode   string              `json:"hintCode,omitempty"`
	QRCode     string              `json:"qrCode,omitempty"`
	Completion *CompletionResponse `json:"completion,omitempty"`
}

// CompletionResponse carries the outcome of a completed order. The personal
// number is masked before it goes over the wire.
type CompletionResponse struct {
	Name           string  `json:"name,omitempty"`
	PersonalNumber *string `json:"personalNumber,omitempty"`
	SignedText     string  `json:"signedText,omitempty"`
}

// HealthResponse reports the state of the relying-party connection.
type HealthResponse struct {
	Healthy       bool  `json:"healthy"`
	LatencyMillis int64 `json:"latencyMillis"`
}
