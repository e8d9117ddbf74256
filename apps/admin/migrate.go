package main

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/golang-migrate/migrate/v4"

	"github.com/acadbase/academia/storage/database"
)

type migrator interface {
	Up() error
	Down() error
	Drop() error
	Version() (uint, bool, error)
	Force(int) error
}

var newMigratorFunc = func(db *sql.DB) (migrator, error) { return database.Migrator(db) } // mockable

func (cli *commandLine) migrate(args []string) error {
	m, err := newMigratorFunc(cli.db.DB)
	if err != nil {
		return err
	}

	switch args[0] {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "drop":
		err = m.Drop()
	case "version":
		var version uint
		var dirty bool
		if version, dirty, err = m.Version(); err == nil {
			fmt.Printf("version: %d dirty: %v\n", version, dirty)
		}
	case "force":
		if len(args) < 2 {
			return fmt.Errorf("force must be of form: migrate force VERSION")
		}
		var version int
		if version, err = strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("version must be a number (got '%s')", args[1])
		}
		err = m.Force(version)
	default:
		return fmt.Errorf("%q: no such command", args[0])
	}

	if err == migrate.ErrNoChange || err == migrate.ErrNilVersion {
		return nil
	}
	return err
}
