package testutil

import (
	"context"
	"testing"

	"github.com/acadbase/academia/core/account"
)

func newPerson(t *testing.T, uname, pwd string) account.Person {
	p := account.Person{
		Username:  uname,
		Name:      uname,
		Email:     uname + "@test.edu",
		District:  "Coimbra",
		Address:   "Rua Larga 1",
		BirthDate: "01-01-2000",
	}
	if pwd != "" {
		if err := p.SetPassword(pwd); err != nil {
			t.Fatalf("SetPassword() failed: %v", err)
		}
	}
	return p
}

// CreateStudent inserts a student person and returns its id.
func CreateStudent(t *testing.T, repo account.Repository, uname, pwd, number string) int {
	id, err := repo.CreateStudent(context.Background(), newPerson(t, uname, pwd), number)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return id
}

// CreateAdmin inserts a staff person with the admin grant and returns its id.
func CreateAdmin(t *testing.T, repo account.Repository, uname, pwd, number string) int {
	id, err := repo.CreateStaffAdmin(context.Background(), newPerson(t, uname, pwd), number)
	if err != nil {
		t.Fatalf("CreateStaffAdmin() failed: %v", err)
	}
	return id
}

// CreateCoordinator inserts an instructor with the coordinator flag set.
func CreateCoordinator(t *testing.T, repo account.Repository, uname, pwd, number string) int {
	id, err := repo.CreateInstructor(context.Background(), newPerson(t, uname, pwd), number, true, false)
	if err != nil {
		t.Fatalf("CreateInstructor() failed: %v", err)
	}
	return id
}

// CreateAssistant inserts an instructor with only the assistant flag set.
func CreateAssistant(t *testing.T, repo account.Repository, uname, pwd, number string) int {
	id, err := repo.CreateInstructor(context.Background(), newPerson(t, uname, pwd), number, false, true)
	if err != nil {
		t.Fatalf("CreateInstructor() failed: %v", err)
	}
	return id
}
