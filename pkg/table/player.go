package table

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"xuanwei-server/pkg/db"
)

const playerColumns = `
players.id,
players.display_name,
players.is_site_admin,
players.created,
players.updated`

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

// ErrDuplicateKey happens if a player tries to join a table twice
var ErrDuplicateKey = errors.New("duplicate key constraint violation")

// Player is a record in the `players` table
type Player struct {
	ID          int64     `json:"id"`
	DisplayName string    `json:"displayName"`
	IsSiteAdmin bool      `json:"isSiteAdmin"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

// WithBalance extends the Table object to include the player's star-coin balance
type WithBalance struct {
	*Table
	Balance int `json:"balance"`
}

func getPlayerByRow(row db.Scanner) (*Player, error) {
	var player Player
	if err := row.Scan(&player.ID, &player.DisplayName, &player.IsSiteAdmin, &player.Created, &player.Updated); err != nil {
		return nil, err
	}

	return &player, nil
}

// GetPlayerByID returns player based on the ID
func GetPlayerByID(ctx context.Context, id int64) (*Player, error) {
	const query = `
SELECT ` + playerColumns + `
FROM players
WHERE id = $1`

	row := db.Instance().QueryRowContext(ctx, query, id)
	return getPlayerByRow(row)
}

// Save will persist any changes made to the player to the database
func (p *Player) Save(ctx context.Context) error {
	const query = `
UPDATE players
SET display_name = $1,
    is_site_admin = $2,
    updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $3`

	_, err := db.Instance().ExecContext(ctx, query, p.DisplayName, p.IsSiteAdmin, p.ID)
	return err
}

// LastPlayerCreatedAt returns the last time a player was created by the remote address
// If a player hasn't been created yet, this will return a nil error and a time.Time{} object (i.e., zero)
func LastPlayerCreatedAt(ctx context.Context, remoteAddr string) (time.Time, error) {
	const query = `
SELECT MAX(created)
FROM players
WHERE remote_addr = $1`

	var created sql.NullTime
	if err := db.Instance().QueryRowContext(ctx, query, remoteAddr).Scan(&created); err != nil {
		return time.Time{}, err
	}

	return created.Time, nil
}

// CreatePlayer creates a new player
func CreatePlayer(ctx context.Context, displayName, remoteAddr string) (*Player, error) {
	const query = `
INSERT INTO players (display_name, remote_addr)
VALUES ($1, $2)
RETURNING ` + playerColumns

	row := db.Instance().QueryRowContext(ctx, query, displayName, remoteAddr)
	return getPlayerByRow(row)
}

// GetPlayerTable gets the PlayerTable record for the associated table
func (p *Player) GetPlayerTable(ctx context.Context, table *Table) (*PlayerTable, error) {
	const query = `
SELECT ` + playerColumns + `, ` + playerTableColumns + `
FROM players_tables
INNER JOIN players ON players_tables.player_id = players.id
WHERE players_tables.player_id = $1 AND players_tables.table_uuid = $2`

	row := db.Instance().QueryRowContext(ctx, query, p.ID, table.UUID)
	pt, err := getPlayerTableByRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPlayerNotAtTable
		}
		return nil, err
	}

	return pt, nil
}

// Join joins the table
func (p *Player) Join(ctx context.Context, table *Table) (*PlayerTable, error) {
	const query = `
WITH pt AS (
	INSERT INTO players_tables (player_id, table_uuid)
	VALUES ($1, $2)
	RETURNING *
)
SELECT ` + playerColumns + `, ` + playerTableColumns + `
FROM pt AS players_tables
INNER JOIN players ON players_tables.player_id = players.id
`
	row := db.Instance().QueryRowContext(ctx, query, p.ID, table.UUID)

	pt, err := getPlayerTableByRow(row)
	if err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == pqDuplicateKeyErrorCode {
			return nil, ErrDuplicateKey
		}

		return nil, err
	}

	return pt, nil
}

// GetTables returns a list of tables the player belongs to
func (p *Player) GetTables(ctx context.Context, offset int64, limit int) ([]*WithBalance, error) {
	const query = `
SELECT ` + tableColumns + `, players_tables.balance
FROM tables
INNER JOIN players_tables ON tables.uuid = players_tables.table_uuid
WHERE players_tables.player_id = $1
ORDER BY players_tables.id DESC
OFFSET $2
LIMIT $3`

	rows, err := db.Instance().QueryContext(ctx, query, p.ID, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*WithBalance, 0)
	for rows.Next() {
		var balance int
		tbl, err := getTableByRow(rows, &balance)
		if err != nil {
			return nil, err
		}

		records = append(records, &WithBalance{
			Table:   tbl,
			Balance: balance,
		})
	}

	return records, nil
}
