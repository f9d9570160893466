package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jroosing/hydrazone/internal/dns"
	"github.com/jroosing/hydrazone/internal/zone"
)

// queryer is satisfied by *sql.DB and *sql.Tx so read helpers can run
// inside or outside a transaction.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// storeTx implements zone.Tx on top of a *sql.Tx.
type storeTx struct {
	tx   *sql.Tx
	now  func() time.Time
	done bool
}

var _ zone.Tx = (*storeTx)(nil)

func (t *storeTx) GetZone(ctx context.Context, name string) (*zone.Zone, error) {
	return getZone(ctx, t.tx, name)
}

func (t *storeTx) CreateZone(ctx context.Context, z *zone.Zone) (int64, error) {
	if _, err := getZone(ctx, t.tx, z.Name); err == nil {
		return 0, fmt.Errorf("%s: %w", z.Name, zone.ErrZoneExists)
	} else if !errors.Is(err, zone.ErrNotFound) {
		return 0, err
	}

	ts := t.now().Unix()
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO zones (name, kind, serial, notified_serial, account, masters, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, dns.FQDN(z.Name), string(z.Kind), z.Serial, z.NotifiedSerial, z.Account, strings.Join(z.Masters, ","), ts, ts)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, fmt.Errorf("%s: %w", z.Name, zone.ErrZoneExists)
		}
		return 0, fmt.Errorf("failed to insert zone %s: %w", z.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read zone id: %w", err)
	}
	z.ID = id
	return id, nil
}

func (t *storeTx) GetRecords(ctx context.Context, zoneID int64, name string, typ dns.Type) ([]zone.Record, error) {
	query, args := recordFilter(`
		SELECT id, zone_id, name, type, content, ttl, prio, disabled
		FROM records
		WHERE zone_id = ?`, zoneID, name, typ)
	return queryRecords(ctx, t.tx, query+" ORDER BY name, type, id", args...)
}

func (t *storeTx) DeleteRecords(ctx context.Context, zoneID int64, name string, typ dns.Type) (int64, error) {
	query, args := recordFilter(`DELETE FROM records WHERE zone_id = ?`, zoneID, name, typ)
	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete records %s %s: %w", name, typ, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted records: %w", err)
	}
	return n, nil
}

func (t *storeTx) InsertRecord(ctx context.Context, zoneID int64, rec zone.Record) (int64, error) {
	var prio sql.NullInt64
	if rec.Priority != nil {
		prio = sql.NullInt64{Int64: int64(*rec.Priority), Valid: true}
	}
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO records (zone_id, name, type, content, ttl, prio, disabled)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, zoneID, dns.NormalizeName(rec.Name), rec.Type.String(), rec.Content, rec.TTL, prio, rec.Disabled)
	if err != nil {
		return 0, fmt.Errorf("failed to insert record %s %s: %w", rec.Name, rec.Type, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read record id: %w", err)
	}
	return id, nil
}

func (t *storeTx) UpdateSerial(ctx context.Context, zoneID int64, serial uint32) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE zones SET serial = ?, updated_at = ? WHERE id = ?`,
		serial, t.now().Unix(), zoneID)
	if err != nil {
		return fmt.Errorf("failed to update serial: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("zone %d: %w", zoneID, zone.ErrNotFound)
	}
	return nil
}

func (t *storeTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	t.done = true
	return nil
}

func (t *storeTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to rollback: %w", err)
	}
	return nil
}

// recordFilter appends optional name and type predicates.
func recordFilter(base string, zoneID int64, name string, typ dns.Type) (string, []any) {
	args := []any{zoneID}
	if name != "" {
		base += " AND name = ?"
		args = append(args, dns.NormalizeName(name))
	}
	if typ != 0 {
		base += " AND type = ?"
		args = append(args, typ.String())
	}
	return base, args
}
