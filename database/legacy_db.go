// Package database opens the persistence stores: the GORM/sqlite database
// holding unified-schema rows, and a plain database/sql reader for albums
// still persisted in the legacy flat-row shape.
package database

import (
	"database/sql"
	"fmt"
	"log"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/camden-git/albumlayout/schema"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// InitLegacyDB opens a legacy album database read-only for import.
func InitLegacyDB(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open legacy database: %w", err)
	}

	// enable write-ahead Logging for better concurrency
	_, err = db.Exec("PRAGMA journal_mode=WAL;")
	if err != nil {
		log.Printf("warning: failed to set WAL mode: %v", err)
	}

	log.Println("legacy database opened at", dataSourceName)
	return db, nil
}

// ListLegacyPages retrieves the legacy page rows of an album, ordered by
// page number.
func ListLegacyPages(db *sql.DB, albumID string) ([]schema.LegacyPageRow, error) {
	queryBuilder := psql.Select("id", "album_id", "page_number", "layout_template",
		"background_color", "background_url").
		From("pages").
		Where(sq.Eq{"album_id": albumID}).
		OrderBy("page_number ASC")
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for ListLegacyPages: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute ListLegacyPages query: %w", err)
	}

	defer rows.Close()
	pages := []schema.LegacyPageRow{}
	for rows.Next() {
		var p schema.LegacyPageRow
		var template, bgColor, bgURL sql.NullString
		err := rows.Scan(&p.ID, &p.AlbumID, &p.PageNumber, &template, &bgColor, &bgURL)
		if err != nil {
			log.Printf("Error scanning legacy page row: %v", err)
			continue
		}
		p.LayoutTemplate = template.String
		p.BackgroundColor = bgColor.String
		p.BackgroundURL = bgURL.String
		pages = append(pages, p)
	}

	if err = rows.Err(); err != nil {
		return pages, fmt.Errorf("error iterating legacy page rows: %w", err)
	}

	return pages, nil
}

// ListLegacyAssets retrieves the flat asset rows of a legacy page.
func ListLegacyAssets(db *sql.DB, pageID string) ([]schema.LegacyAssetRow, error) {
	queryBuilder := psql.Select("id", "page_id", "type", "original_type",
		"x", "y", "width", "height", "rotation", "z_index", "config").
		From("page_assets").
		Where(sq.Eq{"page_id": pageID}).
		OrderBy("z_index ASC")
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for ListLegacyAssets: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute ListLegacyAssets query: %w", err)
	}

	defer rows.Close()
	assets := []schema.LegacyAssetRow{}
	for rows.Next() {
		var a schema.LegacyAssetRow
		var originalType sql.NullString
		var config sql.NullString
		err := rows.Scan(&a.ID, &a.PageID, &a.RawType, &originalType,
			&a.X, &a.Y, &a.Width, &a.Height, &a.Rotation, &a.ZIndex, &config)
		if err != nil {
			log.Printf("Error scanning legacy asset row: %v", err)
			continue
		}
		if originalType.Valid {
			s := originalType.String
			a.OriginalType = &s
		}
		a.ConfigJSON = config.String
		assets = append(assets, a)
	}

	if err = rows.Err(); err != nil {
		return assets, fmt.Errorf("error iterating legacy asset rows: %w", err)
	}

	return assets, nil
}
