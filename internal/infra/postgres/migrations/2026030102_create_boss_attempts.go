package migrations

import _ "embed"

//go:embed sql/2026030102_create_boss_attempts.up.sql
var createBossAttemptsSQL string

func init() {
	Migrations.MustRegister(
		execSQL(createBossAttemptsSQL),
		execSQL(`DROP TABLE IF EXISTS boss_attempts`),
	)
}
