package infrastructure

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"demo-user-service/internal/config"
	"demo-user-service/pkg/logger"
)

// Datasources holds the two independently configured connection pools.
// Business transactions run against Primary only; Secondary is opened,
// pooled, and closed alongside it but never exercised by any code path.
type Datasources struct {
	Primary   *gorm.DB
	Secondary *gorm.DB
}

// NewDatasources opens both database connections with GORM configuration.
func NewDatasources(cfg *config.Config, l *zap.Logger) (*Datasources, error) {
	primary, err := openDatabase(cfg.Primary, cfg.Pool, cfg.Logger, l, "primary")
	if err != nil {
		return nil, fmt.Errorf("failed to open primary datasource: %w", err)
	}

	secondary, err := openDatabase(cfg.Secondary, cfg.Pool, cfg.Logger, l, "secondary")
	if err != nil {
		closeDB(primary)
		return nil, fmt.Errorf("failed to open secondary datasource: %w", err)
	}

	return &Datasources{Primary: primary, Secondary: secondary}, nil
}

// Close closes both connection pools.
func (d *Datasources) Close() error {
	var errs []error
	if err := closeDB(d.Primary); err != nil {
		errs = append(errs, fmt.Errorf("primary: %w", err))
	}
	if err := closeDB(d.Secondary); err != nil {
		errs = append(errs, fmt.Errorf("secondary: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to close datasources: %v", errs)
	}
	return nil
}

func openDatabase(ds config.DatasourceConfig, pool config.PoolConfig, logCfg config.LoggerConfig, l *zap.Logger, name string) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch ds.Driver {
	case "postgres":
		dial = postgres.Open(postgresDSN(ds))
	case "mysql":
		dial = mysql.Open(mysqlDSN(ds))
	default:
		return nil, fmt.Errorf("unsupported driver %q", ds.Driver)
	}

	gormLogger := logger.NewGormLogger(l.Named(name), logCfg.SlowQuerySeconds, logCfg.Level)

	db, err := gorm.Open(dial, &gorm.Config{
		Logger: gormLogger,
		// Unique-constraint violations surface as gorm.ErrDuplicatedKey
		// regardless of driver
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(pool.ConnMaxIdleTime) * time.Second)

	l.Info("database connected successfully",
		zap.String("datasource", name),
		zap.String("driver", ds.Driver),
		zap.Int("max_open_conns", pool.MaxOpenConns),
		zap.Int("max_idle_conns", pool.MaxIdleConns),
	)

	return db, nil
}

func closeDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// postgresDSN injects the configured credentials into a postgres:// URL.
// Non-URL DSNs (keyword form) are passed through untouched.
func postgresDSN(ds config.DatasourceConfig) string {
	raw := strings.TrimSpace(ds.URL)
	if !strings.Contains(raw, "://") {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw // let the driver report it
	}
	if ds.Username != "" {
		if ds.Password != "" {
			u.User = url.UserPassword(ds.Username, ds.Password)
		} else {
			u.User = url.User(ds.Username)
		}
	}
	return u.String()
}

// mysqlDSN converts a mysql:// URL into go-sql-driver syntax
// (user:pass@tcp(host:port)/db?params), applying the configured credentials.
// DSNs already in driver syntax are passed through untouched.
func mysqlDSN(ds config.DatasourceConfig) string {
	raw := strings.TrimSpace(ds.URL)
	if !strings.HasPrefix(raw, "mysql://") {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	user := ds.Username
	pass := ds.Password
	if u.User != nil {
		if user == "" {
			user = u.User.Username()
		}
		if pass == "" {
			pass, _ = u.User.Password()
		}
	}

	q := u.Query()
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "true")
	}
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}

	cred := user
	if pass != "" {
		cred += ":" + pass
	}
	if cred != "" {
		cred += "@"
	}

	dsn := fmt.Sprintf("%stcp(%s)/%s", cred, u.Host, strings.TrimPrefix(u.Path, "/"))
	if enc := q.Encode(); enc != "" {
		dsn += "?" + enc
	}
	return dsn
}
