package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jroosing/hydrazone/internal/dns"
	"github.com/jroosing/hydrazone/internal/helpers"
	"github.com/jroosing/hydrazone/internal/zone"
)

const zoneColumns = `id, name, kind, serial, notified_serial, account, masters, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanZone(row rowScanner) (*zone.Zone, error) {
	var (
		z                  zone.Zone
		kind, masters      string
		serial, notified   int64
		createdAt, updated int64
	)
	if err := row.Scan(&z.ID, &z.Name, &kind, &serial, &notified, &z.Account, &masters, &createdAt, &updated); err != nil {
		return nil, err
	}
	z.Kind = zone.Kind(kind)
	z.Serial = helpers.ClampInt64ToUint32(serial)
	z.NotifiedSerial = helpers.ClampInt64ToUint32(notified)
	if masters != "" {
		z.Masters = strings.Split(masters, ",")
	}
	z.CreatedAt = time.Unix(createdAt, 0).UTC()
	z.UpdatedAt = time.Unix(updated, 0).UTC()
	return &z, nil
}

func getZone(ctx context.Context, q queryer, name string) (*zone.Zone, error) {
	row := q.QueryRowContext(ctx, `SELECT `+zoneColumns+` FROM zones WHERE name = ?`, dns.FQDN(name))
	z, err := scanZone(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("zone %s: %w", name, zone.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get zone %s: %w", name, err)
	}
	return z, nil
}

func queryRecords(ctx context.Context, q queryer, query string, args ...any) ([]zone.Record, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []zone.Record
	for rows.Next() {
		var (
			r        zone.Record
			typ      string
			ttl      int64
			prio     sql.NullInt64
			disabled bool
		)
		if err := rows.Scan(&r.ID, &r.ZoneID, &r.Name, &typ, &r.Content, &ttl, &prio, &disabled); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		t, err := dns.ParseType(typ)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", r.ID, err)
		}
		r.Type = t
		r.TTL = helpers.ClampInt64ToUint32(ttl)
		r.Disabled = disabled
		if prio.Valid {
			p := int(prio.Int64)
			r.Priority = &p
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return records, nil
}

// GetZone returns the zone with the given name (case-insensitive).
func (db *DB) GetZone(ctx context.Context, name string) (*zone.Zone, error) {
	return getZone(ctx, db.conn, name)
}

// ListZones returns zones ordered by name and the total zone count.
func (db *DB) ListZones(ctx context.Context, limit, offset int) ([]zone.Zone, int64, error) {
	var total int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM zones`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count zones: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+zoneColumns+` FROM zones ORDER BY name LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query zones: %w", err)
	}
	defer rows.Close()

	var zones []zone.Zone
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan zone: %w", err)
		}
		zones = append(zones, *z)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate zones: %w", err)
	}
	return zones, total, nil
}

// ZoneRecords returns every record of a zone, disabled ones included.
func (db *DB) ZoneRecords(ctx context.Context, zoneID int64) ([]zone.Record, error) {
	return queryRecords(ctx, db.conn, `
		SELECT id, zone_id, name, type, content, ttl, prio, disabled
		FROM records
		WHERE zone_id = ?
		ORDER BY name, type, id`, zoneID)
}

// ZoneUpdate carries the zone metadata that may change outside RRset batches.
type ZoneUpdate struct {
	Kind    *zone.Kind
	Account *string
	Masters []string
}

// UpdateZone changes zone metadata. Nil fields are left untouched.
func (db *DB) UpdateZone(ctx context.Context, name string, u ZoneUpdate) error {
	z, err := getZone(ctx, db.conn, name)
	if err != nil {
		return err
	}
	if u.Kind != nil {
		z.Kind = *u.Kind
	}
	if u.Account != nil {
		z.Account = *u.Account
	}
	if u.Masters != nil {
		z.Masters = u.Masters
	}
	_, err = db.conn.ExecContext(ctx,
		`UPDATE zones SET kind = ?, account = ?, masters = ?, updated_at = ? WHERE id = ?`,
		string(z.Kind), z.Account, strings.Join(z.Masters, ","), db.now().Unix(), z.ID)
	if err != nil {
		return fmt.Errorf("failed to update zone %s: %w", name, err)
	}
	return nil
}

// DeleteZone removes a zone and, through the foreign key, its records.
func (db *DB) DeleteZone(ctx context.Context, name string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM zones WHERE name = ?`, dns.FQDN(name))
	if err != nil {
		return fmt.Errorf("failed to delete zone %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted zones: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("zone %s: %w", name, zone.ErrNotFound)
	}
	return nil
}

// Counts returns the number of zones and records.
func (db *DB) Counts(ctx context.Context) (zones, records int64, err error) {
	err = db.conn.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM zones), (SELECT COUNT(*) FROM records)`).Scan(&zones, &records)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count zones and records: %w", err)
	}
	return zones, records, nil
}

// LookupEnabled returns enabled records at name with one of the given types,
// across all zones.
func (db *DB) LookupEnabled(ctx context.Context, name string, types ...dns.Type) ([]zone.Record, error) {
	query := `
		SELECT id, zone_id, name, type, content, ttl, prio, disabled
		FROM records
		WHERE name = ? AND disabled = 0`
	args := []any{dns.NormalizeName(name)}
	if len(types) > 0 {
		placeholders := make([]string, len(types))
		for i, t := range types {
			placeholders[i] = "?"
			args = append(args, t.String())
		}
		query += " AND type IN (" + strings.Join(placeholders, ",") + ")"
	}
	return queryRecords(ctx, db.conn, query+" ORDER BY type, id", args...)
}

var _ zone.RecordLookup = (*DB)(nil)
