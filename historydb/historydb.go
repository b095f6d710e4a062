// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package historydb

import (
	"context"
	"database/sql"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	_ "github.com/mattn/go-sqlite3" // sqlite driver

	"github.com/nextswap/staking-engine/staking"
)

const actionTableSchema = `
create table if not exists action (
	time decimal(32,0),
	op varchar(32),
	poolID decimal(32,0),
	owner char(42),
	amount blob,
	tokenID decimal(32,0)
);

CREATE INDEX if not exists actionOwner on action(owner);
CREATE INDEX if not exists actionPool on action(poolID);
CREATE INDEX if not exists actionTime on action(time);
`

// HistoryDB stores one row per committed engine mutation and answers
// filtered queries over them. It implements staking.Recorder.
type HistoryDB struct {
	path string
	db   *sql.DB
}

// New creates or opens the history db at the given path.
func New(path string) (historyDB *HistoryDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if historyDB == nil {
			db.Close()
		}
	}()
	if _, err := db.Exec(actionTableSchema); err != nil {
		return nil, err
	}
	return &HistoryDB{path, db}, nil
}

// NewMem creates a history db in ram.
func NewMem() (*HistoryDB, error) {
	return New(":memory:")
}

// Close closes the history db.
func (db *HistoryDB) Close() {
	db.db.Close()
}

func (db *HistoryDB) Path() string {
	return db.path
}

// Record inserts one committed mutation.
func (db *HistoryDB) Record(rec *staking.Record) error {
	var amount []byte
	if rec.Amount != nil {
		amount = rec.Amount.Bytes()
	}
	_, err := db.db.Exec(
		"INSERT INTO action(time, op, poolID, owner, amount, tokenID) VALUES ( ?, ?, ?, ?, ?, ?);",
		rec.Time,
		rec.Op,
		rec.PoolID,
		rec.Owner.Bytes(),
		amount,
		rec.TokenID,
	)
	return err
}

// Filter queries recorded actions.
func (db *HistoryDB) Filter(ctx context.Context, filter *Filter) ([]*Action, error) {
	if filter == nil {
		return db.queryActions(ctx, "SELECT * FROM action ORDER BY rowid ASC")
	}
	var args []any
	stmt := "SELECT * FROM action WHERE 1"
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND time >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND time <= ? "
		}
	}
	if filter.PoolID != nil {
		args = append(args, *filter.PoolID)
		stmt += " AND poolID = ? "
	}
	if filter.Owner != nil {
		args = append(args, filter.Owner.Bytes())
		stmt += " AND owner = ? "
	}
	if filter.Op != "" {
		args = append(args, filter.Op)
		stmt += " AND op = ? "
	}

	if filter.Order == DESC {
		stmt += " ORDER BY rowid DESC "
	} else {
		stmt += " ORDER BY rowid ASC "
	}

	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryActions(ctx, stmt, args...)
}

func (db *HistoryDB) queryActions(ctx context.Context, stmt string, args ...any) ([]*Action, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []*Action
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			time    uint64
			op      string
			poolID  uint64
			owner   []byte
			amount  []byte
			tokenID uint64
		)
		if err := rows.Scan(
			&time,
			&op,
			&poolID,
			&owner,
			&amount,
			&tokenID,
		); err != nil {
			return nil, err
		}
		actions = append(actions, &Action{
			Time:    time,
			Op:      op,
			PoolID:  poolID,
			Owner:   common.BytesToAddress(owner),
			Amount:  new(big.Int).SetBytes(amount),
			TokenID: tokenID,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return actions, nil
}
