// pkg/database/mysql.go
package database

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"GoalArena/pkg/config"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("record not found")

// MySQL MySQL数据库连接，所有查询经过一次瞬时错误重试
type MySQL struct {
	db *gorm.DB
}

// NewMySQL 创建新的MySQL连接
func NewMySQL(cfg *config.Config) (*MySQL, error) {
	dbCfg := cfg.Database.MySQL

	// 构建DSN
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		dbCfg.User, dbCfg.Password, dbCfg.Host, dbCfg.Port, dbCfg.DBName,
	)

	// 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 设置连接池参数
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层连接池失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("测试数据库连接失败: %w", err)
	}

	return &MySQL{db: db}, nil
}

// Ping 连接探活，就绪检查用
func (m *MySQL) Ping() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close 关闭数据库连接
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// withRetry 有界重试：瞬时连接错误重试一次，无退避，第二次失败上抛
func (m *MySQL) withRetry(op func() error) error {
	err := op()
	if err != nil && IsTransient(err) {
		log.Printf("检测到瞬时数据库错误，重试一次: %v", err)
		err = op()
	}
	return err
}

// IsTransient 判断是否为可重试的连接级错误
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, gomysql.ErrInvalidConn) || errors.Is(err, io.EOF) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection reset") || strings.Contains(msg, "broken pipe")
}

// IsDuplicate 判断是否为唯一键冲突（MySQL 1062）
func IsDuplicate(err error) bool {
	var myErr *gomysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}

// Raw 执行参数化查询并扫描结果
func (m *MySQL) Raw(dest interface{}, query string, args ...interface{}) error {
	return m.withRetry(func() error {
		return m.db.Raw(query, args...).Scan(dest).Error
	})
}

// Exec 执行参数化写语句，返回影响行数
func (m *MySQL) Exec(query string, args ...interface{}) (int64, error) {
	var affected int64
	err := m.withRetry(func() error {
		result := m.db.Exec(query, args...)
		affected = result.RowsAffected
		return result.Error
	})
	return affected, err
}
