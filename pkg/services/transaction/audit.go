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
	"encoding/json"

	"github.com/nuts-foundation/nuts-bankid/logging"
	"github.com/nuts-foundation/nuts-bankid/pkg/services"
)

// LogAuditor writes the raw collect response of completed transactions to
// the application log. Operators that need durable audit trails ship these
// records from the log stream.
type LogAuditor struct{}

var _ services.AuditLogger = LogAuditor{}

func (LogAuditor) LogCollectResponse(response *services.CollectResponse) {
	record, err := json.Marshal(response)
	if err != nil {
		logging.Log().WithError(err).Error("Could not serialize audit record")
		return
	}

	logging.Log().WithField("audit", "collect").Info(string(record))
}
