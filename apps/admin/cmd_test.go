package main

import (
	"context"
	"database/sql"
	"io"
	"log"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/acadbase/academia/core"
	"github.com/acadbase/academia/core/account"
	inmemdb "github.com/acadbase/academia/storage/database/inmem"
)

func init() {
	logger = log.New(io.Discard, "", 0)
}

type cliTest struct {
	name       string
	args       []string // without program name
	pwd        string
	wantErr    error
	wantErrStr string
}

type fakeMigrator struct {
	lastCmd string
	forced  int
}

func (m *fakeMigrator) Up() error    { m.lastCmd = "up"; return nil }
func (m *fakeMigrator) Down() error  { m.lastCmd = "down"; return nil }
func (m *fakeMigrator) Drop() error  { m.lastCmd = "drop"; return nil }
func (m *fakeMigrator) Version() (uint, bool, error) {
	m.lastCmd = "version"
	return 1, false, nil
}
func (m *fakeMigrator) Force(v int) error {
	m.lastCmd = "force"
	m.forced = v
	return nil
}

func Test_commandLine_createDB(t *testing.T) {
	var gotConf *core.Config
	createDBFunc = func(conf *core.Config) error {
		gotConf = conf
		return nil
	}

	conf := &core.Config{}
	cli := &commandLine{conf: conf}
	if err := cli.run([]string{"admin", "createdb"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}
	if gotConf != conf {
		t.Error("createdb did not run against the CLI config")
	}
}

func Test_commandLine_migrate(t *testing.T) {
	fake := &fakeMigrator{}
	newMigratorFunc = func(db *sql.DB) (migrator, error) { return fake, nil }

	cli := &commandLine{db: &sqlx.DB{}}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "force: no args", args: []string{"migrate", "force"}, wantErrStr: "force must be of form: migrate force VERSION"},
		{name: "force: non-int arg", args: []string{"migrate", "force", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "drop", args: []string{"migrate", "drop"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "force", args: []string{"migrate", "force", "1"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_addAdmin(t *testing.T) {
	db := inmemdb.NewDB()
	repo := inmemdb.NewAccountRepository(db)
	cli := &commandLine{accountRepo: repo}

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"addadmin"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"addadmin", "-username", "boss", "-n-staff", "1234567890"}, wantErr: errHelp},
		{name: "bad staff number", args: []string{"addadmin", "-username", "boss", "-n-staff", "123"}, pwd: "s3cret",
			wantErrStr: "Invalid staff number. Must be a numeric value with exactly 10 digits."},
		{name: "ok", args: []string{"addadmin", "-username", "Boss", "-n-staff", "1234567890"}, pwd: "s3cret"},
		{name: "duplicate number", args: []string{"addadmin", "-username", "boss2", "-n-staff", "1234567890"}, pwd: "s3cret",
			wantErr: account.ErrNumberExists},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				if tt.wantErr != nil || tt.wantErrStr != "" {
					t.Fatalf("cli.run() expected an error")
				}
				// username is lowercased before insert
				p, err := repo.GetPersonByUsername(context.Background(), "boss")
				if err != nil {
					t.Fatalf("GetPersonByUsername() failed: %v", err)
				}
				if err = p.CheckPassword("s3cret"); err != nil {
					t.Error("stored password does not match")
				}
				return
			}
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			} else if tt.wantErrStr != "" {
				if err.Error() != tt.wantErrStr {
					t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
				}
			} else {
				t.Errorf("cli.run() unexpected error = %v", err)
			}
		})
	}
}
