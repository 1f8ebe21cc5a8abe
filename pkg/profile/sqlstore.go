// pkg/profile/sqlstore.go

package profile

import (
	"context"
	"time"

	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Entry is one key/value row. The profile uses a single key.
type Entry struct {
	Key       string `gorm:"primaryKey;size:100"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName keeps the table name stable regardless of gorm naming rules.
func (Entry) TableName() string { return "kv_entries" }

// SQLStore keeps the profile as a JSON value in a key/value table.
type SQLStore struct {
	db  *gorm.DB
	key string
}

// OpenSQL opens the database for driver "postgres" or "sqlite" and migrates
// the key/value table.
func OpenSQL(driver, dsn string) (*SQLStore, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.New(postgres.Config{DriverName: "postgres", DSN: dsn})
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, errors.Errorf("unsupported sql driver %q", driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, errors.Wrapf(err, "connecting to %s", driver)
	}
	return NewSQLStore(db)
}

// NewSQLStore uses an existing connection.
func NewSQLStore(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, errors.Wrap(err, "migrating kv_entries")
	}
	return &SQLStore{db: db, key: StorageKey}, nil
}

func (s *SQLStore) Load(ctx context.Context) (Profile, bool, error) {
	var e Entry
	err := s.db.WithContext(ctx).Where("key = ?", s.key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, errors.Wrap(err, "loading profile")
	}
	p, err := decode([]byte(e.Value))
	if err != nil {
		return Profile{}, false, err
	}
	return p, true, nil
}

func (s *SQLStore) Save(ctx context.Context, p Profile) error {
	data, err := encode(p)
	if err != nil {
		return errors.Wrap(err, "encoding profile")
	}
	e := Entry{Key: s.key, Value: string(data)}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	return errors.Wrap(err, "saving profile")
}

func (s *SQLStore) Clear(ctx context.Context) error {
	err := s.db.WithContext(ctx).Where("key = ?", s.key).Delete(&Entry{}).Error
	return errors.Wrap(err, "clearing profile")
}

// Close releases the underlying connection pool.
func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
