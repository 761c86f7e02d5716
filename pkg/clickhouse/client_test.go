package clickhouse

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	dsn := BuildDSN(ClientConfig{
		Host:         "ch.local",
		Port:         9000,
		Database:     "tickfunds",
		User:         "app",
		Password:     "p@ss",
		DialTimeout:  5 * time.Second,
		MaxExecTime:  30 * time.Second,
		AsyncInsert:  true,
		WaitForAsync: true,
	})

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "clickhouse", u.Scheme)
	assert.Equal(t, "ch.local:9000", u.Host)
	assert.Equal(t, "/tickfunds", u.Path)
	pw, _ := u.User.Password()
	assert.Equal(t, "p@ss", pw)
	assert.Equal(t, "5s", u.Query().Get("dial_timeout"))
	assert.Equal(t, "30", u.Query().Get("max_execution_time"))
	assert.Equal(t, "1", u.Query().Get("wait_for_async_insert"))
	assert.Empty(t, u.Query().Get("read_timeout"))
}

func TestBuildDSNHTTP(t *testing.T) {
	dsn := BuildDSN(ClientConfig{Host: "h", Port: 8123, Database: "d", UseHTTP: true})
	assert.Equal(t, "http://h:8123/d", dsn)
}

func TestNewClientRequiresHost(t *testing.T) {
	_, err := NewClient()
	assert.Error(t, err)
}

func TestInitSchemaRunsStatementsInOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	c := NewClientFromDB(db)
	defer c.Close()

	mock.ExpectExec("CREATE DATABASE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("syntax"))

	err = c.InitSchema(context.Background(), []string{
		"CREATE DATABASE IF NOT EXISTS tickfunds",
		"CREATE TABLE IF NOT EXISTS tickfunds.activity_events (x UInt8) ENGINE = Memory",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statement 2")
	assert.NoError(t, mock.ExpectationsWereMet())
}
