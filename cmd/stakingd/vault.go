// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/nextswap/staking-engine/kv"
	"github.com/nextswap/staking-engine/staking"
)

// custodyAddress holds assets pulled into the engine's custody.
var custodyAddress = common.BytesToAddress([]byte("staking-custody"))

// ledgerVault is a simple asset ledger persisted in a kv bucket. It
// tracks per-holder balances and moves amounts between holders and the
// engine's custody address. It stands in for an external token layer.
type ledgerVault struct {
	mu    sync.Mutex
	store kv.Store
}

func newLedgerVault(store kv.Store) *ledgerVault {
	return &ledgerVault{store: kv.Bucket("vault-").NewStore(store)}
}

var _ staking.Vault = (*ledgerVault)(nil)

func balanceKey(asset, holder common.Address) []byte {
	key := make([]byte, 0, common.AddressLength*2)
	key = append(key, asset.Bytes()...)
	return append(key, holder.Bytes()...)
}

func (v *ledgerVault) load(asset, holder common.Address) (*big.Int, error) {
	data, err := v.store.Get(balanceKey(asset, holder))
	if err != nil {
		if v.store.IsNotFound(err) {
			return new(big.Int), nil
		}
		return nil, err
	}
	return new(big.Int).SetBytes(data), nil
}

func (v *ledgerVault) save(asset, holder common.Address, balance *big.Int) error {
	return v.store.Put(balanceKey(asset, holder), balance.Bytes())
}

func (v *ledgerVault) move(asset, from, to common.Address, amount *big.Int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	fromBal, err := v.load(asset, from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return errors.Errorf("vault: %v holds %v of %v, need %v", from, fromBal, asset, amount)
	}
	toBal, err := v.load(asset, to)
	if err != nil {
		return err
	}
	if err := v.save(asset, from, fromBal.Sub(fromBal, amount)); err != nil {
		return err
	}
	return v.save(asset, to, toBal.Add(toBal, amount))
}

func (v *ledgerVault) TransferIn(asset, from common.Address, amount *big.Int) error {
	return v.move(asset, from, custodyAddress, amount)
}

func (v *ledgerVault) TransferOut(asset, to common.Address, amount *big.Int) error {
	return v.move(asset, custodyAddress, to, amount)
}

func (v *ledgerVault) BalanceOf(asset, holder common.Address) (*big.Int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.load(asset, holder)
}

// seed credits a holder unless its balance key already exists, so a
// restart with the same config does not mint twice.
func (v *ledgerVault) seed(asset, holder common.Address, amount *big.Int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	has, err := v.store.Has(balanceKey(asset, holder))
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	return v.save(asset, holder, amount)
}
