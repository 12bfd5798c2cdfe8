package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "MONEYTRACKER_"

const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Application struct {
	Host     string   `koanf:"host"`
	Storage  Storage  `koanf:"storage"`
	Database Database `koanf:"db"`
	Export   Export   `koanf:"export"`
	Error    Error    `koanf:"error"`
}

type Storage struct {
	Backend string `koanf:"backend"`
	SQLite  SQLite `koanf:"sqlite"`
}

type SQLite struct {
	Path string `koanf:"path"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Export struct {
	// Dir is where server-side exports are written.
	Dir string `koanf:"dir"`
}

type Error struct {
	TTL time.Duration `koanf:"ttl"`
}

func Defaults() Application {
	return Application{
		Host: ":8181",
		Storage: Storage{
			Backend: BackendSQLite,
			SQLite: SQLite{
				Path: "moneytracker.db",
			},
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "moneytracker",
			Pass:   "",
			Name:   "moneytracker",
			Schema: "public",
		},
		Export: Export{
			Dir: "exports",
		},
		Error: Error{
			TTL: 3 * time.Second,
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	if err := app.Validate(); err != nil {
		return Application{}, err
	}
	return app, nil
}

func (a Application) Validate() error {
	switch a.Storage.Backend {
	case BackendMemory:
	case BackendSQLite:
		if a.Storage.SQLite.Path == "" {
			return fmt.Errorf("storage.sqlite.path is required for the %s backend", BackendSQLite)
		}
	case BackendPostgres:
		if a.Database.Host == "" || a.Database.Name == "" {
			return fmt.Errorf("db.host and db.name are required for the %s backend", BackendPostgres)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", a.Storage.Backend)
	}
	if a.Error.TTL <= 0 {
		return fmt.Errorf("error.ttl must be positive, got %s", a.Error.TTL)
	}
	return nil
}
