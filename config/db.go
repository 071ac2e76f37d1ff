package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"guest-checkin/models"

	"github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	port := u.Port()
	if port == "" {
		port = "3306"
	}
	pass, _ := u.User.Password()

	cfg := baseMySQLConfig()
	cfg.User = u.User.Username()
	cfg.Passwd = pass
	cfg.Addr = u.Hostname() + ":" + port
	cfg.DBName = dbName
	for k, vs := range u.Query() {
		if len(vs) > 0 {
			cfg.Params[k] = vs[0]
		}
	}
	return cfg.FormatDSN(), nil
}

func baseMySQLConfig() *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.ParseTime = true
	cfg.Loc = time.Local
	// UPDATE reports matched rows, not changed rows
	cfg.ClientFoundRows = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg
}

// normalizeMySQLDSN forces the options the store relies on onto a raw DSN.
func normalizeMySQLDSN(raw string) (string, error) {
	cfg, err := mysql.ParseDSN(raw)
	if err != nil {
		return "", fmt.Errorf("invalid mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	return cfg.FormatDSN(), nil
}

func resolveMySQLDSN(c DBConfig) (string, error) {
	if c.URL != "" {
		if strings.HasPrefix(c.URL, "mysql://") {
			return mysqlDSNFromURL(c.URL)
		}
		return normalizeMySQLDSN(c.URL)
	}

	cfg := baseMySQLConfig()
	cfg.User = c.User
	cfg.Passwd = c.Pass
	cfg.Addr = c.Host + ":" + c.Port
	cfg.DBName = c.Name
	return cfg.FormatDSN(), nil
}

func resolvePostgresDSN(c DBConfig) string {
	if c.URL != "" {
		return c.URL
	}
	port := c.Port
	if port == "" || port == "3306" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.Host, c.User, c.Pass, c.Name, port)
}

func dialector(c DBConfig) (gorm.Dialector, error) {
	switch c.Driver {
	case "", "mysql":
		dsn, err := resolveMySQLDSN(c)
		if err != nil {
			return nil, err
		}
		return gormmysql.Open(dsn), nil
	case "postgres", "postgresql":
		return postgres.Open(resolvePostgresDSN(c)), nil
	case "sqlite":
		return sqlite.Open(c.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", c.Driver)
	}
}

// ConnectDatabase opens the guest store and applies migrations.
func ConnectDatabase(c DBConfig) (*gorm.DB, error) {
	d, err := dialector(c)
	if err != nil {
		return nil, err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(d, &gorm.Config{Logger: newLogger, TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Guest{},
		&models.ImportLog{},
	); err != nil {
		return err
	}
	return backfillFolded(db)
}

// backfillFolded fills name_lower and email_lower on rows written before
// those columns existed.
func backfillFolded(db *gorm.DB) error {
	var batch []models.Guest
	return db.Model(&models.Guest{}).
		Where("(name <> '' AND (name_lower = '' OR name_lower IS NULL)) OR (email <> '' AND (email_lower = '' OR email_lower IS NULL))").
		FindInBatches(&batch, 200, func(_ *gorm.DB, _ int) error {
			for _, g := range batch {
				err := db.Model(&models.Guest{}).Where("id = ?", g.ID).UpdateColumns(map[string]interface{}{
					"name_lower":  models.Fold(g.Name),
					"email_lower": models.Fold(g.Email),
				}).Error
				if err != nil {
					return err
				}
			}
			log.Printf("⚠️ backfilled folded name/email on %d guests", len(batch))
			return nil
		}).Error
}
