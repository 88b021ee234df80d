package initialize

import (
	"registry/config"
	"registry/internal/logger"

	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/gorm"
)

var migrations = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "001_create_profiles",
			Up: []string{`
				CREATE TABLE IF NOT EXISTS profiles (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					created_at DATETIME,
					updated_at DATETIME,
					deleted_at DATETIME,
					name VARCHAR(100) NOT NULL,
					relation VARCHAR(50) NOT NULL,
					dob VARCHAR(64) NOT NULL,
					nakshatra VARCHAR(50) NOT NULL,
					rashi VARCHAR(50) NOT NULL,
					contact_number VARCHAR(20),
					occupation VARCHAR(100),
					address VARCHAR(500),
					submitter_name VARCHAR(100),
					submitter_mobile VARCHAR(20)
				);`,
				`CREATE INDEX IF NOT EXISTS idx_profiles_deleted_at ON profiles(deleted_at);`,
				`CREATE INDEX IF NOT EXISTS idx_profiles_submitter_name ON profiles(submitter_name);`,
				`CREATE INDEX IF NOT EXISTS idx_profiles_submitter_mobile ON profiles(submitter_mobile);`,
			},
			Down: []string{`DROP TABLE profiles;`},
		},
		{
			Id: "002_create_submitter_sessions",
			Up: []string{`
				CREATE TABLE IF NOT EXISTS submitter_sessions (
					id VARCHAR(64) PRIMARY KEY,
					submitter_name VARCHAR(100) NOT NULL,
					submitter_mobile VARCHAR(20) NOT NULL,
					created_at DATETIME,
					last_active_at DATETIME
				);`,
				`CREATE INDEX IF NOT EXISTS idx_submitter_identity
					ON submitter_sessions(submitter_name, submitter_mobile);`,
				`CREATE INDEX IF NOT EXISTS idx_submitter_sessions_last_active_at
					ON submitter_sessions(last_active_at);`,
			},
			Down: []string{`DROP TABLE submitter_sessions;`},
		},
		{
			Id: "003_create_users",
			Up: []string{`
				CREATE TABLE IF NOT EXISTS users (
					id VARCHAR(64) PRIMARY KEY,
					created_at DATETIME,
					updated_at DATETIME,
					deleted_at DATETIME,
					first_name VARCHAR(100),
					last_name VARCHAR(100),
					display_name VARCHAR(100),
					email VARCHAR(255),
					password VARCHAR(255),
					is_admin BOOLEAN DEFAULT FALSE
				);`,
				`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email);`,
				`CREATE INDEX IF NOT EXISTS idx_users_deleted_at ON users(deleted_at);`,
			},
			Down: []string{`DROP TABLE users;`},
		},
	},
}

func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Running schema migrations")

	sqlDB, err := db.DB()
	if err != nil {
		return log.Err("failed to get database handle", err)
	}

	applied, err := migrate.Exec(sqlDB, "sqlite3", migrations, migrate.Up)
	if err != nil {
		return log.Err("failed to run migrations", err)
	}

	log.Info("Schema migrations complete", "applied", applied)
	return nil
}
