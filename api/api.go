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

// Package api exposes the transaction service over HTTP. It binds request
// bodies, manages the session and device cookies and converts internal
// results to wire types. It performs no business logic of its own.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nuts-foundation/nuts-bankid/logging"
	"github.com/nuts-foundation/nuts-bankid/pkg/services"
	"github.com/nuts-foundation/nuts-bankid/pkg/services/transaction"
)

const sessionCookieName = "bankid-session"

// deviceCookieName carries a stable device identifier. The __Secure- prefix
// makes browsers refuse it over plain http.
const deviceCookieName = "__Secure-Device"

// deviceCookieMaxAge is just under the 400 day cap browsers put on cookie
// lifetimes.
const deviceCookieMaxAge = 399 * 24 * time.Hour

// TransactionClient is the part of the transaction service the HTTP layer
// uses.
type TransactionClient interface {
	StartAuthentication(sessionID string, request transaction.StartRequest) (*services.Transaction, error)
	StartSigning(sessionID string, request transaction.StartRequest) (*services.Transaction, error)
	Collect(sessionID string) (*services.CollectResult, error)
	Cancel(sessionID string) error
}

// Wrapper bridges HTTP requests to the transaction service.
type Wrapper struct {
	Client       TransactionClient
	RelyingParty services.RelyingParty
	// Domain is the domain end users are expected to reach this service on.
	Domain string
}

// RegisterRoutes mounts all handlers under /api on the given router.
func (w *Wrapper) RegisterRoutes(router *echo.Echo) {
	router.POST("/api/authentication", w.StartAuthentication)
	router.POST("/api/sign", w.StartSign)
	router.POST("/api/check", w.CheckTransaction)
	router.DELETE("/api/cancel", w.CancelTransaction)
	router.GET("/api/health", w.Health)
}

// StartAuthentication starts an authentication order for the caller's
// session and returns the token needed to start the BankID app.
func (w *Wrapper) StartAuthentication(ctx echo.Context) error {
	request := new(AuthenticationRequest)
	if err := ctx.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Could not parse request body: %s", err))
	}

	startRequest := w.startRequest(ctx)
	startRequest.UserVisibleData = request.UserVisibleData
	startRequest.UserVisibleDataFormat = request.UserVisibleDataFormat
	startRequest.UserNonVisibleData = request.UserNonVisibleData
	startRequest.PinCode = request.PinCode

	tx, err := w.Client.StartAuthentication(w.sessionID(ctx), startRequest)
	if err != nil {
		return startError(err)
	}

	return ctx.JSON(http.StatusCreated, StartResponse{
		TransactionID:  tx.TransactionID,
		AutoStartToken: tx.AutoStartToken,
	})
}

// StartSign starts a signature order for the caller's session.
func (w *Wrapper) StartSign(ctx echo.Context) error {
	request := new(SignRequest)
	if err := ctx.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Could not parse request body: %s", err))
	}

	startRequest := w.startRequest(ctx)
	startRequest.UserVisibleData = request.UserVisibleData
	startRequest.UserVisibleDataFormat = request.UserVisibleDataFormat
	startRequest.UserNonVisibleData = request.UserNonVisibleData
	startRequest.PinCode = request.PinCode

	tx, err := w.Client.StartSigning(w.sessionID(ctx), startRequest)
	if err != nil {
		return startError(err)
	}

	return ctx.JSON(http.StatusCreated, StartResponse{
		TransactionID:  tx.TransactionID,
		AutoStartToken: tx.AutoStartToken,
	})
}

// CheckTransaction returns the current state of the session's transaction.
func (w *Wrapper) CheckTransaction(ctx echo.Context) error {
	result, err := w.Client.Collect(w.sessionID(ctx))
	if err != nil {
		if errors.Is(err, services.ErrTransactionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no transaction for this session")
		}
		logging.Log().WithError(err).Error("error while checking transaction")
		return err
	}

	response := CheckResponse{
		Status:   string(result.Status),
		HintCode: result.HintCode,
		QRCode:   result.QRCode,
	}
	if result.CompletionResult != nil {
		response.Completion = &CompletionResponse{
			Name:           result.CompletionResult.Name,
			PersonalNumber: maskPersonalNumber(result.CompletionResult.PersonalNumber),
			SignedText:     result.CompletionResult.SignedText,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CancelTransaction aborts the session's transaction.
func (w *Wrapper) CancelTransaction(ctx echo.Context) error {
	if err := w.Client.Cancel(w.sessionID(ctx)); err != nil {
		if errors.Is(err, services.ErrTransactionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no transaction for this session")
		}
		logging.Log().WithError(err).Error("error while cancelling transaction")
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Health reports whether the relying-party API can be reached over the
// mutual TLS channel. An unhealthy connection yields a 503 so load balancers
// can act on it.
func (w *Wrapper) Health(ctx echo.Context) error {
	status := w.RelyingParty.CheckConnection()

	response := HealthResponse{
		Healthy:       status.Healthy,
		LatencyMillis: status.Latency.Milliseconds(),
	}
	if !status.Healthy {
		return ctx.JSON(http.StatusServiceUnavailable, response)
	}

	return ctx.JSON(http.StatusOK, response)
}

// startRequest assembles the web context shared by both start operations.
func (w *Wrapper) startRequest(ctx echo.Context) transaction.StartRequest {
	if host := ctx.Request().Host; w.Domain != "" && host != w.Domain {
		logging.Log().Warnf("Request host %q does not match configured domain %q", host, w.Domain)
	}

	return transaction.StartRequest{
		EndUserIP: ctx.RealIP(),
		Web: transaction.WebContext{
			ReferringDomain:  w.Domain,
			UserAgent:        ctx.Request().UserAgent(),
			DeviceIdentifier: w.deviceID(ctx),
		},
	}
}

// sessionID returns the caller's session identifier, minting a session
// cookie on first contact.
func (w *Wrapper) sessionID(ctx echo.Context) string {
	if cookie, err := ctx.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	sessionID := uuid.New().String()
	ctx.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	return sessionID
}

// deviceID returns the stable device identifier, minting the device cookie
// on first contact.
func (w *Wrapper) deviceID(ctx echo.Context) string {
	if cookie, err := ctx.Cookie(deviceCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	deviceID := uuid.New().String()
	ctx.SetCookie(&http.Cookie{
		Name:     deviceCookieName,
		Value:    deviceID,
		Path:     "/",
		MaxAge:   int(deviceCookieMaxAge / time.Second),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	return deviceID
}

func startError(err error) error {
	if errors.Is(err, transaction.ErrInvalidRequest) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	logging.Log().WithError(err).Error("error while starting transaction")
	return err
}

// maskPersonalNumber hides the last four digits of a personal number. Empty
// and absent values pass through untouched, short values are fully masked.
func maskPersonalNumber(personalNumber *string) *string {
	if personalNumber == nil {
		return nil
	}
	value := *personalNumber
	if value == "" {
		return &value
	}

	masked := "XXXX"
	if len(value) > 4 {
		masked = value[:len(value)-4] + "-XXXX"
	}

	return &masked
}
