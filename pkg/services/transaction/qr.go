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
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
)

// ErrMissingQRStartSecret is returned when a transaction carries no QR secret.
var ErrMissingQRStartSecret = errors.New("missing qr start secret")

// QRData computes the animated QR payload for one QR rotation: the literal
// prefix bankid, the start token, the elapsed whole seconds since the
// transaction started and an HMAC-SHA256 auth code over those seconds keyed
// with the start secret, joined with dots. The client regenerates it roughly
// once per second for as long as the transaction is outstanding.
func QRData(qrStartToken, qrStartSecret string, elapsedSeconds int64) (string, error) {
	if qrStartSecret == "" {
		return "", ErrMissingQRStartSecret
	}

	qrTime := strconv.FormatInt(elapsedSeconds, 10)

	mac := hmac.New(sha256.New, []byte(qrStartSecret))
	mac.Write([]byte(qrTime))
	qrAuthCode := hex.EncodeToString(mac.Sum(nil))

	return strings.Join([]string{"bankid", qrStartToken, qrTime, qrAuthCode}, "."), nil
}
