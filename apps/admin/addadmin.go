package main

import (
	"context"

	"github.com/acadbase/academia/core"
	"github.com/acadbase/academia/core/account"
)

// addAdmin creates a staff member with the admin grant so the API has a first
// privileged account to register everyone else with.
func (cli *commandLine) addAdmin(uname, nStaff, pwd string) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)
	nStaff = core.CleanString(nStaff)

	if err := account.ValidateNumericID(nStaff, account.NumberLength, "staff number"); err != nil {
		return err
	}

	p := account.Person{
		Username: uname,
		Name:     uname,
		Email:    uname + "@academia.local",
	}
	if err := p.SetPassword(pwd); err != nil {
		return err
	}

	id, err := cli.accountRepo.CreateStaffAdmin(ctx, p, nStaff)
	if err != nil {
		return err
	}
	logger.Printf("created admin %s with person id %d", uname, id)
	return nil
}
