package migrations

import _ "embed"

//go:embed sql/2026030101_create_players.up.sql
var createPlayersSQL string

func init() {
	Migrations.MustRegister(
		execSQL(createPlayersSQL),
		execSQL(`DROP TABLE IF EXISTS players`),
	)
}
