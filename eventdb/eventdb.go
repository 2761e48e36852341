// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventdb persists engine events in sqlite so they can be queried
// by kind, participant and time range after the fact.
package eventdb

import (
	"context"
	"database/sql"
	"math/big"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/pangaea-labs/lockstake/engine"
	"github.com/pangaea-labs/lockstake/lockstake"
)

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// TimeRange bounds a filter by event time, inclusive on both sides.
type TimeRange struct {
	From uint64
	To   uint64
}

// Options carries paging parameters.
type Options struct {
	Offset uint64
	Limit  uint64
}

// Filter selects events. Zero-valued fields do not constrain the query.
type Filter struct {
	Kind        string
	Participant *lockstake.Address
	Range       *TimeRange
	Order       Order
	Options     *Options
}

type Store struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New creates or opens an event db at the given path.
func New(path string) (store *Store, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if store == nil {
			db.Close()
		}
	}()
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	return &Store{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem creates an event db in ram.
func NewMem() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() {
	s.db.Close()
}

func (s *Store) Path() string {
	return s.path
}

// Write stores a batch of events in one transaction.
// It implements engine.Sink.
func (s *Store) Write(events []engine.Event) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(
		"INSERT INTO event(kind, participant, amount, points, eventTime, premature, elapsed) VALUES(?,?,?,?,?,?,?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range events {
		ev := &events[i]
		var points []byte
		if ev.Points != nil {
			points = ev.Points.Bytes()
		}
		if _, err = stmt.Exec(
			ev.Kind,
			ev.Participant.Bytes(),
			ev.Amount.Bytes(),
			points,
			ev.Time,
			ev.Premature,
			ev.Elapsed,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Filter queries stored events. A nil filter returns everything in
// insertion order.
func (s *Store) Filter(ctx context.Context, filter *Filter) ([]*engine.Event, error) {
	if filter == nil {
		return s.query(ctx, "SELECT kind, participant, amount, points, eventTime, premature, elapsed FROM event ORDER BY seq ASC")
	}
	var args []any
	stmt := "SELECT kind, participant, amount, points, eventTime, premature, elapsed FROM event WHERE 1"
	if filter.Kind != "" {
		args = append(args, filter.Kind)
		stmt += " AND kind = ? "
	}
	if filter.Participant != nil {
		args = append(args, filter.Participant.Bytes())
		stmt += " AND participant = ? "
	}
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND eventTime >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND eventTime <= ? "
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}

	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return s.query(ctx, stmt, args...)
}

func (s *Store) query(ctx context.Context, stmt string, args ...any) ([]*engine.Event, error) {
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*engine.Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			kind        string
			participant []byte
			amount      []byte
			points      []byte
			eventTime   uint64
			premature   bool
			elapsed     uint64
		)
		if err := rows.Scan(
			&kind,
			&participant,
			&amount,
			&points,
			&eventTime,
			&premature,
			&elapsed,
		); err != nil {
			return nil, err
		}
		ev := &engine.Event{
			Kind:        kind,
			Participant: lockstake.BytesToAddress(participant),
			Amount:      new(big.Int).SetBytes(amount),
			Time:        eventTime,
			Premature:   premature,
			Elapsed:     elapsed,
		}
		if len(points) > 0 {
			ev.Points = new(big.Int).SetBytes(points)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
