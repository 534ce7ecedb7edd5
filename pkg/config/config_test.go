package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name    string
		in      Config
		wantErr bool
		check   func(t *testing.T, c Config)
	}{
		{
			name: "ZeroConfigGetsDefaults",
			in:   Config{},
			check: func(t *testing.T, c Config) {
				if c.Addr != DefaultAddr || c.LogLevel != DefaultLogLevel {
					t.Errorf("addr=%q level=%q", c.Addr, c.LogLevel)
				}
				if c.Cache.Backend != CacheMemory || c.Store.Backend != StoreMemory {
					t.Errorf("backends = %q / %q", c.Cache.Backend, c.Store.Backend)
				}
			},
		},
		{
			name:    "InvalidLogLevel",
			in:      Config{LogLevel: "trace"},
			wantErr: true,
		},
		{
			name:    "RedisWithoutAddr",
			in:      Config{Cache: CacheConfig{Backend: CacheRedis}},
			wantErr: true,
		},
		{
			name:    "MongoWithoutURI",
			in:      Config{Store: StoreConfig{Backend: StoreMongo}},
			wantErr: true,
		},
		{
			name:    "UnknownCacheBackend",
			in:      Config{Cache: CacheConfig{Backend: "memcached"}},
			wantErr: true,
		},
		{
			name: "ValidRedisAndMongo",
			in: Config{
				Cache: CacheConfig{Backend: CacheRedis, RedisAddr: "localhost:6379"},
				Store: StoreConfig{Backend: StoreMongo, MongoURI: "mongodb://localhost"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.in
			err := c.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if tt.check != nil && err == nil {
				tt.check(t, c)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("EmptyPathUsesDefaults", func(t *testing.T) {
		c, err := Load("")
		if err != nil {
			t.Fatal(err)
		}
		if c.Addr != DefaultAddr {
			t.Errorf("addr = %q", c.Addr)
		}
	})

	t.Run("FromFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "flowboard.toml")
		src := `
addr = ":9090"
log_level = "debug"

[cache]
backend = "redis"
redis_addr = "redis:6379"

[store]
backend = "mongo"
mongo_uri = "mongodb://db:27017"
mongo_database = "boards"
`
		if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
		c, err := Load(path)
		if err != nil {
			t.Fatal(err)
		}
		if c.Addr != ":9090" || c.Cache.RedisAddr != "redis:6379" || c.Store.MongoDatabase != "boards" {
			t.Errorf("config = %+v", c)
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error")
		}
	})
}
