// Package dao 实现数据访问层
package dao

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/gormTracing"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Database 数据库配置
type Database struct {
	Type         string `yaml:"type" default:"sqlite"`
	Path         string `yaml:"path" default:"storage/database/note.db"`
	Host         string `yaml:"host"`
	UserName     string `yaml:"user-name"`
	Password     string `yaml:"password"`
	Name         string `yaml:"name"`
	TablePrefix  string `yaml:"table-prefix"`
	Charset      string `yaml:"charset" default:"utf8mb4"`
	ParseTime    bool   `yaml:"parse-time" default:"true"`
	SSLMode      string `yaml:"ssl-mode" default:"disable"`
	MaxIdleConns int    `yaml:"max-idle-conns" default:"10"`
	MaxOpenConns int    `yaml:"max-open-conns" default:"30"`
}

// Dao 数据访问对象，持有数据库连接和日志器
type Dao struct {
	db     *gorm.DB
	logger *zap.Logger
}

func New(db *gorm.DB, l *zap.Logger) *Dao {
	return &Dao{db: db, logger: l}
}

func (d *Dao) DB() *gorm.DB {
	return d.db
}

func (d *Dao) Logger() *zap.Logger {
	return d.logger
}

// NewDBEngine 创建 GORM 数据库连接
func NewDBEngine(c Database, runMode string) (*gorm.DB, error) {

	dialector, err := userDialector(c)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// 将驱动层唯一约束/外键错误翻译为 gorm.ErrDuplicatedKey 等可识别错误
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix, // 表名前缀，`User` 的表名应该是 `t_users`
			SingularTable: true,          // 使用单数表名，启用该选项，此时，`User` 的表名应该是 `t_user`
		},
	})
	if err != nil {
		return nil, err
	}
	if runMode == "debug" {
		db.Config.Logger = logger.Default.LogMode(logger.Info)
	} else {
		db.Config.Logger = logger.Default.LogMode(logger.Silent)
	}

	// 获取通用数据库对象 sql.DB ，然后使用其提供的功能
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// SetMaxIdleConns 用于设置连接池中空闲连接的最大数量。
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)

	// SetMaxOpenConns 设置打开数据库连接的最大数量。
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)

	// SetConnMaxLifetime 设置了连接可复用的最大时间。
	sqlDB.SetConnMaxLifetime(time.Minute * 10)

	_ = db.Use(&gormTracing.OpentracingPlugin{})

	return db, nil
}

func userDialector(c Database) (gorm.Dialector, error) {
	switch c.Type {
	case "mysql":
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			c.Charset,
			c.ParseTime,
		)), nil
	case "postgres":
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=%s",
			c.Host,
			c.UserName,
			c.Password,
			c.Name,
			c.SSLMode,
		)), nil
	case "sqlite":
		if dir := filepath.Dir(c.Path); dir != "." {
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return nil, err
			}
		}
		return sqlite.Open(c.Path), nil
	}
	return nil, fmt.Errorf("unsupported database type: %s", c.Type)
}
