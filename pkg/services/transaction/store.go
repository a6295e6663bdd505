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
	"sync"

	"github.com/nuts-foundation/nuts-bankid/pkg/services"
)

// MemoryStore keeps transactions in process memory. A restart loses all
// in-flight transactions, which BankID users recover from by starting over.
type MemoryStore struct {
	mutex        sync.RWMutex
	transactions map[string]*services.Transaction
}

var _ services.TransactionStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{transactions: map[string]*services.Transaction{}}
}

func (m *MemoryStore) Get(sessionID string) *services.Transaction {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.transactions[sessionID]
}

func (m *MemoryStore) Put(sessionID string, transaction *services.Transaction) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.transactions[sessionID] = transaction
}

func (m *MemoryStore) Delete(sessionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.transactions, sessionID)
}
