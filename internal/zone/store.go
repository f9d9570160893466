package zone

import (
	"context"

	"github.com/jroosing/hydrazone/internal/dns"
)

// Store opens units of work against the record store.
type Store interface {
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx is one atomic unit of work. Every mutation made through a Tx becomes
// visible to other transactions only after Commit. Rollback after Commit is
// a no-op.
//
// In GetRecords and DeleteRecords an empty name or a zero type match any.
type Tx interface {
	GetZone(ctx context.Context, name string) (*Zone, error)
	CreateZone(ctx context.Context, z *Zone) (int64, error)
	GetRecords(ctx context.Context, zoneID int64, name string, typ dns.Type) ([]Record, error)
	DeleteRecords(ctx context.Context, zoneID int64, name string, typ dns.Type) (int64, error)
	InsertRecord(ctx context.Context, zoneID int64, rec Record) (int64, error)
	UpdateSerial(ctx context.Context, zoneID int64, serial uint32) error
	Commit() error
	Rollback() error
}

// RecordLookup finds enabled records by owner name across all zones.
type RecordLookup interface {
	LookupEnabled(ctx context.Context, name string, types ...dns.Type) ([]Record, error)
}
