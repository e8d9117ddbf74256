package inmemdb

import (
	"sync"

	"github.com/acadbase/academia/core/academics"
	"github.com/acadbase/academia/core/account"
)

type classKey struct {
	studentID int
	classID   int64
}

type degreeKey struct {
	studentID int
	degreeID  int64
}

type activityKey struct {
	studentID  int
	activityID int64
}

type periodRecord struct {
	id        int
	name      string
	editionID int64
}

type editionRecord struct {
	id         int64
	courseName string
	year       int
}

type gradeRecord struct {
	studentID int
	periodID  int
	date      string
	value     float64
	editionID int64
}

// DB is a mutexed in-memory stand-in for the Postgres store, shared by the
// account and academics repositories in tests.
type DB struct {
	mutex sync.RWMutex

	nextPersonID int
	nextPeriodID int

	persons    map[int]*account.Person
	students   map[int]string // person id -> n_student
	staff      map[int]string // person id -> n_staff
	admins     map[int]bool
	professors map[int]account.Professor

	degrees    map[int64]string
	activities map[int64]string
	classes    map[int64]academics.Class
	editions   map[int64]editionRecord
	periods    []periodRecord

	degreeEnrollments   map[degreeKey]string // -> enroll date
	classEnrollments    map[classKey]bool
	activityEnrollments map[activityKey]bool
	grades              []gradeRecord
}

func NewDB() *DB {
	return &DB{
		persons:             make(map[int]*account.Person),
		students:            make(map[int]string),
		staff:               make(map[int]string),
		admins:              make(map[int]bool),
		professors:          make(map[int]account.Professor),
		degrees:             make(map[int64]string),
		activities:          make(map[int64]string),
		classes:             make(map[int64]academics.Class),
		editions:            make(map[int64]editionRecord),
		degreeEnrollments:   make(map[degreeKey]string),
		classEnrollments:    make(map[classKey]bool),
		activityEnrollments: make(map[activityKey]bool),
	}
}

// Seed helpers for tests.

func (db *DB) AddDegree(id int64, name string) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.degrees[id] = name
}

func (db *DB) AddActivity(id int64, name string) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.activities[id] = name
}

func (db *DB) AddClass(cls academics.Class) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.classes[cls.ID] = cls
}

func (db *DB) AddEdition(id int64, courseName string, year int) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.editions[id] = editionRecord{id: id, courseName: courseName, year: year}
}

func (db *DB) AddPeriod(name string, editionID int64) int {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.nextPeriodID++
	db.periods = append(db.periods, periodRecord{id: db.nextPeriodID, name: name, editionID: editionID})
	return db.nextPeriodID
}

// GradeCount reports the number of stored grade rows.
func (db *DB) GradeCount() int {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	return len(db.grades)
}
