// Package sqlstore persists the shop in a relational database through
// database/sql. Postgres, MySQL and SQLite are supported.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

type dialect struct {
	name        string
	placeholder squirrel.PlaceholderFormat
	random      string
	returning   bool
	schema      []string
}

var (
	postgresDialect = dialect{
		name:        "postgres",
		placeholder: squirrel.Dollar,
		random:      "RANDOM()",
		returning:   true,
		schema:      postgresSchema,
	}
	mysqlDialect = dialect{
		name:        "mysql",
		placeholder: squirrel.Question,
		random:      "RAND()",
		schema:      mysqlSchema,
	}
	sqliteDialect = dialect{
		name:        "sqlite",
		placeholder: squirrel.Question,
		random:      "RANDOM()",
		schema:      sqliteSchema,
	}
)

type Store struct {
	db      *sql.DB
	qb      squirrel.StatementBuilderType
	dialect dialect
}

// Open connects to url with the driver matching provider. For postgres,
// driver selects between pgx (default) and lib/pq.
func Open(ctx context.Context, provider, driver, url string) (*Store, error) {
	if url == "" {
		return nil, fmt.Errorf("database URL is empty")
	}

	var (
		d          dialect
		driverName string
		dsn        string
	)
	switch provider {
	case "postgresql", "postgres":
		d, dsn = postgresDialect, url
		switch driver {
		case "", "pgx":
			driverName = "pgx"
		case "pq", "postgres":
			driverName = "postgres"
		default:
			return nil, fmt.Errorf("unsupported postgres driver: %s", driver)
		}
	case "mysql":
		d, driverName, dsn = mysqlDialect, "mysql", mysqlDSN(url)
	case "sqlite", "sqlite3":
		d, driverName, dsn = sqliteDialect, "sqlite3", sqliteDSN(url)
	default:
		return nil, fmt.Errorf("unsupported database provider: %s", provider)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", d.name, err)
	}

	if d.name == "sqlite" {
		// One writer at a time; transactions would otherwise hit SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{
		db:      db,
		qb:      squirrel.StatementBuilder.PlaceholderFormat(d.placeholder),
		dialect: d,
	}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// mysqlDSN turns a mysql:// URL into a go-sql-driver DSN and makes sure
// DATETIME columns scan into time.Time.
func mysqlDSN(url string) string {
	dsn := url
	if strings.HasPrefix(url, "mysql://") {
		dsn = strings.TrimPrefix(url, "mysql://")
		if at := strings.Index(dsn, "@"); at > 0 {
			credentials, remainder := dsn[:at], dsn[at+1:]
			if slash := strings.Index(remainder, "/"); slash > 0 {
				hostPort, dbAndParams := remainder[:slash], remainder[slash+1:]
				dbAndParams = strings.NewReplacer(
					"ssl-mode=REQUIRED", "tls=skip-verify",
					"ssl-mode=DISABLED", "tls=false",
					"sslmode=require", "tls=skip-verify",
					"sslmode=disable", "tls=false",
				).Replace(dbAndParams)
				dsn = fmt.Sprintf("%s@tcp(%s)/%s", credentials, hostPort, dbAndParams)
			}
		}
	}
	if !strings.Contains(dsn, "parseTime=") {
		if strings.Contains(dsn, "?") {
			dsn += "&parseTime=true"
		} else {
			dsn += "?parseTime=true"
		}
	}
	return dsn
}

func sqliteDSN(url string) string {
	path := strings.TrimPrefix(strings.TrimPrefix(url, "sqlite://"), "sqlite:")
	if !strings.Contains(path, "?") {
		path += "?_journal_mode=WAL&_foreign_keys=on"
	}
	return path
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// insertID runs an insert and returns the generated key of the new row.
func (s *Store) insertID(ctx context.Context, tx *sql.Tx, b squirrel.InsertBuilder, idColumn string) (int64, error) {
	if s.dialect.returning {
		query, args, err := b.Suffix("RETURNING " + idColumn).ToSql()
		if err != nil {
			return 0, err
		}
		var id int64
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
