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

package transaction

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nuts-foundation/nuts-bankid/pkg/services"
	"github.com/nuts-foundation/nuts-bankid/testdata"
)

const testSessionID = "session-1"

type fakeRelyingParty struct {
	startAuthenticationCalls int
	startSignatureCalls      int
	collectCalls             int
	cancelCalls              int

	lastAuthenticationRequest services.StartAuthenticationRequest
	lastSignatureRequest      services.StartSignatureRequest

	startResponse   services.StartTransactionResponse
	collectResponse services.CollectResponse
	startErr        error
	collectErr      error
	cancelErr       error
}

func (f *fakeRelyingParty) CheckConnection() services.ConnectionStatus {
	return services.ConnectionStatus{Healthy: true}
}

func (f *fakeRelyingParty) StartAuthentication(request services.StartAuthenticationRequest) (*services.StartTransactionResponse, error) {
	f.startAuthenticationCalls++
	f.lastAuthenticationRequest = request
	if f.startErr != nil {
		return nil, f.startErr
	}
	response := f.startResponse
	return &response, nil
}

func (f *fakeRelyingParty) StartSignature(request services.StartSignatureRequest) (*services.StartTransactionResponse, error) {
	f.startSignatureCalls++
	f.lastSignatureRequest = request
	if f.startErr != nil {
		return nil, f.startErr
	}
	response := f.startResponse
	return &response, nil
}

func (f *fakeRelyingParty) Collect(orderRef string) (*services.CollectResponse, error) {
	f.collectCalls++
	if f.collectErr != nil {
		return nil, f.collectErr
	}
	response := f.collectResponse
	return &response, nil
}

func (f *fakeRelyingParty) Cancel(orderRef string) error {
	f.cancelCalls++
	return f.cancelErr
}

type recordingAudit struct {
	responses []*services.CollectResponse
}

func (r *recordingAudit) LogCollectResponse(response *services.CollectResponse) {
	r.responses = append(r.responses, response)
}

type serviceFixture struct {
	service      *Service
	relyingParty *fakeRelyingParty
	store        *MemoryStore
	audit        *recordingAudit
	clock        *fakeClock
}

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time {
	return c.current
}

func (c *fakeClock) advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newFixture() *serviceFixture {
	relyingParty := &fakeRelyingParty{
		startResponse: services.StartTransactionResponse{
			OrderRef:       "order-1",
			AutoStartToken: "auto-1",
			QRStartToken:   "67df3917-fa0d-44e5-b327-edcc928297f8",
			QRStartSecret:  "d28db9a7-4cde-429e-a983-359be676944c",
		},
		collectResponse: services.CollectResponse{
			OrderRef: "order-1",
			Status:   "pending",
			HintCode: "outstandingTransaction",
		},
	}
	store := NewMemoryStore()
	audit := &recordingAudit{}
	clock := &fakeClock{current: time.Date(2020, 11, 4, 13, 0, 0, 0, time.UTC)}

	service := NewService(relyingParty, store, audit, Config{})
	service.now = clock.now

	return &serviceFixture{service: service, relyingParty: relyingParty, store: store, audit: audit, clock: clock}
}

func validStartRequest() StartRequest {
	return StartRequest{
		EndUserIP:       "192.0.2.10",
		UserVisibleData: "please log in",
		Web: WebContext{
			ReferringDomain:  "example.com",
			UserAgent:        "Mozilla/5.0",
			DeviceIdentifier: "device-1",
		},
	}
}

func TestService_StartAuthentication(t *testing.T) {
	t.Run("ok - transaction is stored for the session", func(t *testing.T) {
		f := newFixture()

		tx, err := f.service.StartAuthentication(testSessionID, validStartRequest())

		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, "order-1", tx.OrderRef)
		assert.NotEmpty(t, tx.TransactionID)
		assert.Equal(t, services.StatusPending, tx.Status)
		assert.Same(t, tx, f.store.Get(testSessionID))
	})

	t.Run("ok - visible data is base64 encoded on the wire", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.StartAuthentication(testSessionID, validStartRequest())

		if !assert.NoError(t, err) {
			return
		}
		request := f.relyingParty.lastAuthenticationRequest
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("please log in")), request.UserVisibleData)
		assert.True(t, request.ReturnRisk)
	})

	t.Run("ok - risk requirement is always low", func(t *testing.T) {
		f := newFixture()
		f.service.config.AuthenticationRequirements = &services.Requirements{Risk: services.RiskModerate}

		_, err := f.service.StartAuthentication(testSessionID, validStartRequest())

		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, services.RiskLow, f.relyingParty.lastAuthenticationRequest.Requirement.Risk)
	})

	t.Run("ok - a pending transaction is cancelled first", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.StartAuthentication(testSessionID, validStartRequest())
		if !assert.NoError(t, err) {
			return
		}

		_, err = f.service.StartAuthentication(testSessionID, validStartRequest())

		assert.NoError(t, err)
		assert.Equal(t, 1, f.relyingParty.cancelCalls)
		assert.Equal(t, 2, f.relyingParty.startAuthenticationCalls)
	})

	t.Run("error - unknown visible data format", func(t *testing.T) {
		f := newFixture()
		request := validStartRequest()
		request.UserVisibleDataFormat = "html"

		_, err := f.service.StartAuthentication(testSessionID, request)

		assert.True(t, errors.Is(err, ErrInvalidRequest))
	})

	t.Run("error - visible data exceeds limit", func(t *testing.T) {
		f := newFixture()
		request := validStartRequest()
		request.UserVisibleData = string(make([]byte, 2000))

		_, err := f.service.StartAuthentication(testSessionID, request)

		assert.True(t, errors.Is(err, ErrInvalidRequest))
	})

	t.Run("error - referring domain too short", func(t *testing.T) {
		f := newFixture()
		request := validStartRequest()
		request.Web.ReferringDomain = "ab"

		_, err := f.service.StartAuthentication(testSessionID, request)

		assert.True(t, errors.Is(err, ErrInvalidRequest))
	})

	t.Run("error - relying party failure is passed through", func(t *testing.T) {
		f := newFixture()
		f.relyingParty.startErr = errors.New("boom")

		_, err := f.service.StartAuthentication(testSessionID, validStartRequest())

		assert.Error(t, err)
		assert.Nil(t, f.store.Get(testSessionID))
	})
}

func TestService_StartSigning(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		f := newFixture()

		tx, err := f.service.StartSigning(testSessionID, validStartRequest())

		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, "order-1", tx.OrderRef)
		assert.Equal(t, 1, f.relyingParty.startSignatureCalls)
	})

	t.Run("ok - markdown format is accepted", func(t *testing.T) {
		f := newFixture()
		request := validStartRequest()
		request.UserVisibleDataFormat = "simpleMarkdownV1"

		_, err := f.service.StartSigning(testSessionID, request)

		assert.NoError(t, err)
		assert.Equal(t, "simpleMarkdownV1", f.relyingParty.lastSignatureRequest.UserVisibleDataFormat)
	})

	t.Run("error - visible data is required", func(t *testing.T) {
		f := newFixture()
		request := validStartRequest()
		request.UserVisibleData = "  "

		_, err := f.service.StartSigning(testSessionID, request)

		assert.True(t, errors.Is(err, ErrInvalidRequest))
		assert.Equal(t, 0, f.relyingParty.startSignatureCalls)
	})
}

func TestService_Collect(t *testing.T) {
	start := func(t *testing.T, f *serviceFixture) {
		t.Helper()
		_, err := f.service.StartAuthentication(testSessionID, validStartRequest())
		if err != nil {
			t.Fatal(err)
		}
	}

	t.Run("ok - pending with QR code", func(t *testing.T) {
		f := newFixture()
		start(t, f)
		f.clock.advance(time.Second)

		result, err := f.service.Collect(testSessionID)

		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, services.StatusPending, result.Status)
		assert.Equal(t, "outstandingTransaction", result.HintCode)
		assert.Equal(t,
			"bankid.67df3917-fa0d-44e5-b327-edcc928297f8.1.949d559bf23403952a94d103e67743126381eda00f0b3cbddbf7c96b1adcbce2",
			result.QRCode)
	})

	t.Run("ok - no QR code outside the hand-off window", func(t *testing.T) {
		f := newFixture()
		start(t, f)
		f.relyingParty.collectResponse.HintCode = "userSign"

		result, err := f.service.Collect(testSessionID)

		if !assert.NoError(t, err) {
			return
		}
		assert.Empty(t, result.QRCode)
	})

	t.Run("ok - collects within a second replay the cached response", func(t *testing.T) {
		f := newFixture()
		start(t, f)

		_, err := f.service.Collect(testSessionID)
		if !assert.NoError(t, err) {
			return
		}
		f.clock.advance(500 * time.Millisecond)
		result, err := f.service.Collect(testSessionID)

		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, 1, f.relyingParty.collectCalls)
		assert.Equal(t, services.StatusPending, result.Status)
	})

	t.Run("ok - pending status is collected again after a second", func(t *testing.T) {
		f := newFixture()
		start(t, f)

		_, err := f.service.Collect(testSessionID)
		if !assert.NoError(t, err) {
			return
		}
		f.clock.advance(1100 * time.Millisecond)
		_, err = f.service.Collect(testSessionID)

		assert.NoError(t, err)
		assert.Equal(t, 2, f.relyingParty.collectCalls)
	})

	t.Run("ok - terminal status is replayed forever", func(t *testing.T) {
		f := newFixture()
		start(t, f)
		f.relyingParty.collectResponse = services.CollectResponse{
			OrderRef: "order-1",
			Status:   "failed",
			HintCode: "userCancel",
		}

		_, err := f.service.Collect(testSessionID)
		if !assert.NoError(t, err) {
			return
		}
		f.clock.advance(time.Hour)
		result, err := f.service.Collect(testSessionID)

		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, 1, f.relyingParty.collectCalls)
		assert.Equal(t, services.StatusFailed, result.Status)
		assert.Equal(t, "userCancel", result.HintCode)
	})

	t.Run("ok - completed order yields the signed text", func(t *testing.T) {
		f := newFixture()
		start(t, f)
		personalNumber := "190001010101"
		f.relyingParty.collectResponse = services.CollectResponse{
			OrderRef: "order-1",
			Status:   "complete",
			CompletionData: &services.CompletionData{
				User: &services.UserData{
					PersonalNumber: &personalNumber,
					Name:           "Alice Andersson",
				},
				Signature: base64.StdEncoding.EncodeToString([]byte(testdata.ValidSignature)),
			},
		}

		result, err := f.service.Collect(testSessionID)

		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, services.StatusComplete, result.Status)
		if !assert.NotNil(t, result.CompletionResult) {
			return
		}
		assert.Equal(t, "Alice Andersson", result.CompletionResult.Name)
		assert.Equal(t, &personalNumber, result.CompletionResult.PersonalNumber)
		assert.Equal(t, testdata.VisibleText, result.CompletionResult.SignedText)
	})

	t.Run("ok - completed order is audited exactly once", func(t *testing.T) {
		f := newFixture()
		start(t, f)
		f.relyingParty.collectResponse = services.CollectResponse{
			OrderRef: "order-1",
			Status:   "complete",
			CompletionData: &services.CompletionData{
				Signature: base64.StdEncoding.EncodeToString([]byte(testdata.IdentificationSignature)),
			},
		}

		for i := 0; i < 3; i++ {
			_, err := f.service.Collect(testSessionID)
			if !assert.NoError(t, err) {
				return
			}
			f.clock.advance(time.Hour)
		}

		assert.Len(t, f.audit.responses, 1)
	})

	t.Run("error - unknown session", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.Collect("no-such-session")

		assert.True(t, errors.Is(err, services.ErrTransactionNotFound))
	})

	t.Run("error - relying party failure is passed through", func(t *testing.T) {
		f := newFixture()
		start(t, f)
		f.relyingParty.collectErr = errors.New("boom")

		_, err := f.service.Collect(testSessionID)

		assert.Error(t, err)
	})
}

func TestService_Cancel(t *testing.T) {
	t.Run("ok - record is removed", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.StartAuthentication(testSessionID, validStartRequest())
		if !assert.NoError(t, err) {
			return
		}

		err = f.service.Cancel(testSessionID)

		assert.NoError(t, err)
		assert.Nil(t, f.store.Get(testSessionID))
		assert.Equal(t, 1, f.relyingParty.cancelCalls)
	})

	t.Run("ok - relying party failure does not surface", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.StartAuthentication(testSessionID, validStartRequest())
		if !assert.NoError(t, err) {
			return
		}
		f.relyingParty.cancelErr = errors.New("boom")

		err = f.service.Cancel(testSessionID)

		assert.NoError(t, err)
		assert.Nil(t, f.store.Get(testSessionID))
	})

	t.Run("error - unknown session", func(t *testing.T) {
		f := newFixture()

		err := f.service.Cancel("no-such-session")

		assert.True(t, errors.Is(err, services.ErrTransactionNotFound))
	})
}
