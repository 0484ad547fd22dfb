package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

func TestRedisCache_Get(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(client, 60, "")

	mock.ExpectGet("lingopack:k1").SetVal("hola")
	val, ok := c.Get("k1")
	if !ok || val != "hola" {
		t.Errorf("expected hola, got %q ok=%v", val, ok)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisCache_GetMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(client, 60, "")

	mock.ExpectGet("lingopack:missing").RedisNil()
	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for nil reply")
	}
}

func TestRedisCache_GetErrorReadsAsMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(client, 60, "")

	mock.ExpectGet("lingopack:k").SetErr(errors.New("connection refused"))
	if _, ok := c.Get("k"); ok {
		t.Error("expected connection error to read as a miss")
	}
}

func TestRedisCache_Set(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(client, 60, "")

	mock.ExpectSet("lingopack:k1", "hola", 60*time.Second).SetVal("OK")
	if err := c.Set("k1", "hola"); err != nil {
		t.Errorf("Set failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisCache_CustomPrefix(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(client, 0, "tr:")

	mock.ExpectSet("tr:k", "v", time.Duration(0)).SetVal("OK")
	if err := c.Set("k", "v"); err != nil {
		t.Errorf("Set failed: %v", err)
	}
}

func TestNewRedisCache_BadURL(t *testing.T) {
	if _, err := NewRedisCache(RedisConfig{URL: "not-a-url"}); err == nil {
		t.Error("expected error for malformed URL")
	}
}
