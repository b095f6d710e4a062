// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRevertKinds(t *testing.T) {
	err := Cooldown("cooldown not elapsed")
	assert.Equal(t, "cooldown not elapsed", err.Error())
	assert.Equal(t, KindCooldown, err.Kind())
	assert.True(t, IsRevert(err))
	assert.True(t, Is(err, KindCooldown))
	assert.False(t, Is(err, KindLifecycle))
}

func TestWrappedRevert(t *testing.T) {
	err := errors.Wrap(Lifecycle("pool already started"), "start pool")
	assert.True(t, IsRevert(err))
	assert.True(t, Is(err, KindLifecycle))
	assert.Equal(t, KindLifecycle, KindOf(err))
}

func TestNonRevert(t *testing.T) {
	err := errors.New("io failure")
	assert.False(t, IsRevert(err))
	assert.False(t, Is(err, KindTransferFailure))
	assert.Equal(t, KindUnknown, KindOf(err))
	assert.False(t, IsRevert(nil))
}

func TestNewf(t *testing.T) {
	err := Newf(KindConfiguration, "pool %d not found", 7)
	assert.Equal(t, "pool 7 not found", err.Error())
	assert.Equal(t, KindConfiguration, err.Kind())
}
