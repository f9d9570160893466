package database

import (
	"context"
	"fmt"
	"strings"
)

// SearchResult is a zone or record matching a search-data query.
type SearchResult struct {
	ObjectType string // "zone" or "record"
	Name       string
	Type       string
	Content    string
	Zone       string
}

// Search finds zones whose name contains q, then records whose name or
// content contains q. Each half returns at most max rows.
func (db *DB) Search(ctx context.Context, q string, max int) ([]SearchResult, error) {
	pattern := "%" + escapeLike(q) + "%"
	var results []SearchResult

	rows, err := db.conn.QueryContext(ctx,
		`SELECT name, kind FROM zones WHERE name LIKE ? ESCAPE '\' ORDER BY name LIMIT ?`, pattern, max)
	if err != nil {
		return nil, fmt.Errorf("failed to search zones: %w", err)
	}
	for rows.Next() {
		r := SearchResult{ObjectType: "zone"}
		if err := rows.Scan(&r.Name, &r.Type); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan zone: %w", err)
		}
		r.Zone = r.Name
		results = append(results, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate zones: %w", err)
	}

	rows, err = db.conn.QueryContext(ctx, `
		SELECT r.name, r.type, r.content, z.name
		FROM records r
		JOIN zones z ON z.id = r.zone_id
		WHERE r.name LIKE ? ESCAPE '\' OR r.content LIKE ? ESCAPE '\'
		ORDER BY r.name, r.type, r.id
		LIMIT ?`, pattern, pattern, max)
	if err != nil {
		return nil, fmt.Errorf("failed to search records: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		r := SearchResult{ObjectType: "record"}
		if err := rows.Scan(&r.Name, &r.Type, &r.Content, &r.Zone); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return results, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes q match literally inside a LIKE pattern. PowerDNS-style
// "*" wildcards become "%".
func escapeLike(q string) string {
	return strings.ReplaceAll(likeEscaper.Replace(q), "*", "%")
}
