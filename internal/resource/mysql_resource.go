package resource

import (
	"sync"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"video-ingest-service/ddd/infrastructure/database/po"
	"video-ingest-service/pkg/assert"
	"video-ingest-service/pkg/config"
	"video-ingest-service/pkg/manager"
)

var (
	mysqlResourceOnce sync.Once
	mysqlSingleton    *MySqlResource
)

// MySqlResource manages the lifecycle of the shared gorm connection pool.
type MySqlResource struct {
	db *gorm.DB
}

// DefaultMysqlResource returns the global MySQL resource instance.
func DefaultMysqlResource() *MySqlResource {
	assert.NotCircular()
	mysqlResourceOnce.Do(func() {
		mysqlSingleton = &MySqlResource{}
	})
	assert.NotNil(mysqlSingleton)
	return mysqlSingleton
}

// MustOpen establishes the database connection using global configuration.
func (r *MySqlResource) MustOpen() {
	if r.db != nil {
		return
	}

	cfg := config.GetGlobalConfig()
	if cfg == nil {
		panic("global config not initialized")
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		panic("failed to connect mysql: " + err.Error())
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic("failed to access sql.DB: " + err.Error())
	}
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := db.AutoMigrate(&po.Video{}); err != nil {
		panic("failed to migrate schema: " + err.Error())
	}

	r.db = db
}

// Close drains the underlying connection pool.
func (r *MySqlResource) Close() {
	if r.db == nil {
		return
	}
	if sqlDB, err := r.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// MainDB exposes the shared gorm handle.
func (r *MySqlResource) MainDB() *gorm.DB {
	return r.db
}

// MySqlResourcePlugin wires the resource into the manager.
type MySqlResourcePlugin struct{}

// Name identifies the plugin slot.
func (p *MySqlResourcePlugin) Name() string {
	return "mysql"
}

// MustCreateResource returns the singleton MySQL resource for registration.
func (p *MySqlResourcePlugin) MustCreateResource() manager.Resource {
	return DefaultMysqlResource()
}
