// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nextswap/staking-engine/staking"
	"github.com/nextswap/staking-engine/staking/pool"
)

// Config declares the schedules, pools and initial vault balances the
// daemon sets up at startup. Setup is idempotent: entries that already
// exist in the state are left alone, so restarts with the same file
// are safe.
type Config struct {
	Admin     string           `yaml:"admin"`
	Schedules []ScheduleConfig `yaml:"schedules"`
	Pools     []PoolConfig     `yaml:"pools"`
	Balances  []BalanceConfig  `yaml:"balances"`
}

type ScheduleConfig struct {
	Asset           string `yaml:"asset"`
	TotalAllocation string `yaml:"totalAllocation"`
	StartTime       uint64 `yaml:"startTime"`
	EndTime         uint64 `yaml:"endTime"`
	ClaimDeadline   uint64 `yaml:"claimDeadline"`
	Sink            string `yaml:"sink"`
}

type PoolConfig struct {
	Name           string `yaml:"name"`
	Kind           string `yaml:"kind"` // token | liquidity
	StakeAsset     string `yaml:"stakeAsset"`
	RewardAsset    string `yaml:"rewardAsset"`
	PairAssetA     string `yaml:"pairAssetA"`
	PairAssetB     string `yaml:"pairAssetB"`
	FeeTier        uint32 `yaml:"feeTier"`
	TotalRewards   string `yaml:"totalRewards"`
	MinDeposit     string `yaml:"minDeposit"`
	CooldownPeriod uint64 `yaml:"cooldownPeriod"`
	StartTime      uint64 `yaml:"startTime"`
	Duration       uint64 `yaml:"duration"`
}

type BalanceConfig struct {
	Asset  string `yaml:"asset"`
	Holder string `yaml:"holder"`
	Amount string `yaml:"amount"`
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	return &cfg, nil
}

func parseAddress(field, s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, errors.Errorf("%s: invalid address %q", field, s)
	}
	return common.HexToAddress(s), nil
}

func parseAmount(field, s string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Errorf("%s: invalid amount %q", field, s)
	}
	return amount, nil
}

func (c *PoolConfig) kind() (pool.Kind, error) {
	switch c.Kind {
	case "token", "":
		return pool.KindToken, nil
	case "liquidity":
		return pool.KindLiquidity, nil
	default:
		return pool.KindUnknown, errors.Errorf("pool %s: unknown kind %q", c.Name, c.Kind)
	}
}

// apply sets up the declared schedules and pools. Existing entries are
// skipped, new ones are created and started.
func (c *Config) apply(engine *staking.Engine) error {
	admin, err := parseAddress("admin", c.Admin)
	if err != nil {
		return err
	}

	for _, sc := range c.Schedules {
		asset, err := parseAddress("schedule.asset", sc.Asset)
		if err != nil {
			return err
		}
		if _, err := engine.GetSchedule(asset); err == nil {
			logger.Debug("schedule already exists", "asset", asset)
			continue
		}
		allocation, err := parseAmount("schedule.totalAllocation", sc.TotalAllocation)
		if err != nil {
			return err
		}
		sink, err := parseAddress("schedule.sink", sc.Sink)
		if err != nil {
			return err
		}
		if err := engine.CreateSchedule(admin, asset, allocation, sc.StartTime, sc.EndTime, sc.ClaimDeadline, sink); err != nil {
			return errors.WithMessagef(err, "schedule %s", sc.Asset)
		}
	}

	existing, err := engine.Pools()
	if err != nil {
		return err
	}
	byName := make(map[string]bool, len(existing))
	for _, p := range existing {
		byName[p.Name] = true
	}

	for _, pc := range c.Pools {
		if byName[pc.Name] {
			logger.Debug("pool already exists", "name", pc.Name)
			continue
		}
		params, err := pc.params()
		if err != nil {
			return err
		}
		id, err := engine.CreatePool(admin, params)
		if err != nil {
			return errors.WithMessagef(err, "pool %s", pc.Name)
		}
		if pc.StartTime == 0 {
			continue
		}
		if err := engine.StartPool(admin, id, pc.Duration, pc.StartTime); err != nil {
			return errors.WithMessagef(err, "start pool %s", pc.Name)
		}
	}
	return nil
}

func (c *PoolConfig) params() (*pool.CreateParams, error) {
	kind, err := c.kind()
	if err != nil {
		return nil, err
	}
	rewardAsset, err := parseAddress("pool.rewardAsset", c.RewardAsset)
	if err != nil {
		return nil, err
	}
	totalRewards, err := parseAmount("pool.totalRewards", c.TotalRewards)
	if err != nil {
		return nil, err
	}
	params := &pool.CreateParams{
		Name:           c.Name,
		Kind:           kind,
		RewardAsset:    rewardAsset,
		FeeTier:        c.FeeTier,
		TotalRewards:   totalRewards,
		CooldownPeriod: c.CooldownPeriod,
	}
	if c.MinDeposit != "" {
		if params.MinDeposit, err = parseAmount("pool.minDeposit", c.MinDeposit); err != nil {
			return nil, err
		}
	}
	if kind == pool.KindToken {
		if params.StakeAsset, err = parseAddress("pool.stakeAsset", c.StakeAsset); err != nil {
			return nil, err
		}
	} else {
		if params.PairAssetA, err = parseAddress("pool.pairAssetA", c.PairAssetA); err != nil {
			return nil, err
		}
		if params.PairAssetB, err = parseAddress("pool.pairAssetB", c.PairAssetB); err != nil {
			return nil, err
		}
	}
	return params, nil
}
