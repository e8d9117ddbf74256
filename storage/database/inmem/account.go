package inmemdb

import (
	"context"
	"time"

	"github.com/acadbase/academia/core/account"
)

type accountRepository struct {
	db *DB
}

var _ account.Repository = (*accountRepository)(nil)

func NewAccountRepository(db *DB) *accountRepository {
	return &accountRepository{db: db}
}

func (repo *accountRepository) GetPersonByUsername(_ context.Context, username string) (account.Person, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, p := range repo.db.persons {
		if p.Username == username {
			return *p, nil
		}
	}
	return account.Person{}, account.ErrNotFound
}

func (repo *accountRepository) GetPersonByID(_ context.Context, id int) (account.Person, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if p, ok := repo.db.persons[id]; ok {
		return *p, nil
	}
	return account.Person{}, account.ErrNotFound
}

func (repo *accountRepository) SetLastLogin(_ context.Context, personID int, t time.Time) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	p, ok := repo.db.persons[personID]
	if !ok {
		return account.ErrNotFound
	}
	p.LastLogin.SetValid(t)
	return nil
}

func (repo *accountRepository) insertPerson(p account.Person) (int, error) {
	for _, existing := range repo.db.persons {
		if existing.Username == p.Username {
			return 0, account.ErrUsernameExists
		}
	}
	repo.db.nextPersonID++
	p.ID = repo.db.nextPersonID
	repo.db.persons[p.ID] = &p
	return p.ID, nil
}

func (repo *accountRepository) CreateStudent(_ context.Context, p account.Person, number string) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, n := range repo.db.students {
		if n == number {
			return 0, account.ErrNumberExists
		}
	}
	id, err := repo.insertPerson(p)
	if err != nil {
		return 0, err
	}
	repo.db.students[id] = number
	return id, nil
}

func (repo *accountRepository) CreateStaffAdmin(_ context.Context, p account.Person, number string) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, n := range repo.db.staff {
		if n == number {
			return 0, account.ErrNumberExists
		}
	}
	id, err := repo.insertPerson(p)
	if err != nil {
		return 0, err
	}
	repo.db.staff[id] = number
	repo.db.admins[id] = true
	return id, nil
}

func (repo *accountRepository) CreateInstructor(_ context.Context, p account.Person, number string, coordinator, assistant bool) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, n := range repo.db.staff {
		if n == number {
			return 0, account.ErrNumberExists
		}
	}
	id, err := repo.insertPerson(p)
	if err != nil {
		return 0, err
	}
	repo.db.staff[id] = number
	repo.db.professors[id] = account.Professor{
		StaffPersonID: id,
		Coordinator:   coordinator,
		Assistant:     assistant,
	}
	return id, nil
}

func (repo *accountRepository) IsAdmin(_ context.Context, personID int) (bool, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.db.admins[personID], nil
}

func (repo *accountRepository) IsStudent(_ context.Context, personID int) (bool, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	_, ok := repo.db.students[personID]
	return ok, nil
}

func (repo *accountRepository) GetProfessor(_ context.Context, personID int) (account.Professor, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if prof, ok := repo.db.professors[personID]; ok {
		return prof, nil
	}
	return account.Professor{}, account.ErrNotFound
}

func (repo *accountRepository) DeleteStudentByNumber(_ context.Context, number string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	var studentID int
	var found bool
	for id, n := range repo.db.students {
		if n == number {
			studentID, found = id, true
			break
		}
	}
	if !found {
		return account.ErrNotFound
	}

	grades := repo.db.grades[:0]
	for _, g := range repo.db.grades {
		if g.studentID != studentID {
			grades = append(grades, g)
		}
	}
	repo.db.grades = grades
	for key := range repo.db.classEnrollments {
		if key.studentID == studentID {
			delete(repo.db.classEnrollments, key)
		}
	}
	for key := range repo.db.degreeEnrollments {
		if key.studentID == studentID {
			delete(repo.db.degreeEnrollments, key)
		}
	}
	for key := range repo.db.activityEnrollments {
		if key.studentID == studentID {
			delete(repo.db.activityEnrollments, key)
		}
	}
	delete(repo.db.students, studentID)
	delete(repo.db.persons, studentID)
	return nil
}
