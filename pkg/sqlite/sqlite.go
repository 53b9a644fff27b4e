package sqlite

import (
	"context"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type txContextKey string

const txKey txContextKey = "trx"

type Config struct {
	Path string `env:"PATH"`
}

// DB wraps a single gorm handle over the embedded store. The connection
// pool is capped at one connection: every logical operation serializes at
// the store, and a transaction opened by WithinTransaction is the only
// writer until it commits or rolls back.
type DB struct {
	db *gorm.DB
}

func Open(config Config, withDebug bool) (*DB, error) {
	db, err := gorm.Open(gormsqlite.Open(config.Path), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON;").Error; err != nil {
		return nil, err
	}

	if withDebug {
		db = db.Debug()
	}
	return &DB{db: db}, nil
}

// WithinTransaction runs fn inside one unit of work. The transaction handle
// travels in the context, so every repository call made from fn joins the
// same transaction via Write/Read.
func (r *DB) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ctx = context.WithValue(ctx, txKey, tx)
		return fn(ctx)
	})
}

func (r *DB) Write(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok {
		return tx
	}

	return r.db.WithContext(ctx)
}

func (r *DB) Read(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok {
		return tx
	}

	return r.db.WithContext(ctx)
}

func (r *DB) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
