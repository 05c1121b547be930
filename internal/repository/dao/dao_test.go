package dao

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	testDBOnce sync.Once
	testDB     *gorm.DB
	testDBErr  error
)

// openTestDB starts a throwaway postgres container the first time it is
// called and skips the test when docker is not available.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testDBOnce.Do(func() {
		pool, err := dockertest.NewPool("")
		if err != nil {
			testDBErr = err
			return
		}
		if err := pool.Client.Ping(); err != nil {
			testDBErr = err
			return
		}

		resource, err := pool.RunWithOptions(&dockertest.RunOptions{
			Repository: "postgres",
			Tag:        "16-alpine",
			Env: []string{
				"POSTGRES_USER=boardops",
				"POSTGRES_PASSWORD=secret",
				"POSTGRES_DB=boardops_test",
			},
		}, func(hc *docker.HostConfig) {
			hc.AutoRemove = true
			hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
		})
		if err != nil {
			testDBErr = err
			return
		}
		// The container kills itself if the test process dies uncleanly.
		_ = resource.Expire(300)

		dsn := fmt.Sprintf("postgres://boardops:secret@%s/boardops_test?sslmode=disable",
			resource.GetHostPort("5432/tcp"))

		testDBErr = pool.Retry(func() error {
			db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
				Logger: gormlogger.Discard,
			})
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			if err := sqlDB.Ping(); err != nil {
				return err
			}

			testDB = db
			return nil
		})
		if testDBErr != nil {
			return
		}

		testDBErr = InitTables(testDB)
	})

	if testDBErr != nil {
		t.Skipf("postgres container unavailable: %v", testDBErr)
	}

	return testDB
}

func createTestUser(t *testing.T, db *gorm.DB, username string) User {
	t.Helper()

	user := User{Username: username, Password: "x", Role: "member"}
	require.NoError(t, db.Create(&user).Error)

	return user
}

func createTestBoard(t *testing.T, db *gorm.DB, name string) Board {
	t.Helper()

	board := Board{Name: name, Location: "clubhouse", UpdatedBy: "test"}
	require.NoError(t, db.Create(&board).Error)

	return board
}

func createTestPractice(t *testing.T, db *gorm.DB, title string) Practice {
	t.Helper()

	practice := Practice{Title: title, Location: "lake", TeamID: 1}
	require.NoError(t, db.Create(&practice).Error)

	return practice
}

func transportCount(t *testing.T, db *gorm.DB, userID uint) int {
	t.Helper()

	var user User
	require.NoError(t, db.First(&user, userID).Error)

	return user.TransportCount
}

func TestTransportAssignCounters(t *testing.T) {
	db := openTestDB(t)
	d := NewTransportDAO(db)
	ctx := context.Background()

	asa := createTestUser(t, db, "counters-asa")
	kei := createTestUser(t, db, "counters-kei")
	board := createTestBoard(t, db, "Counters Board 1")
	practice := createTestPractice(t, db, "counters practice")

	_, outcome, err := d.Assign(ctx, practice.ID, board.ID, asa.ID, "to")
	require.NoError(t, err)
	require.Equal(t, AssignCreated, outcome)
	require.Equal(t, 1, transportCount(t, db, asa.ID))

	// Same carrier again is a no-op.
	_, outcome, err = d.Assign(ctx, practice.ID, board.ID, asa.ID, "to")
	require.NoError(t, err)
	require.Equal(t, AssignKept, outcome)
	require.Equal(t, 1, transportCount(t, db, asa.ID))

	// Rebinding moves the count from the old carrier to the new one.
	transport, outcome, err := d.Assign(ctx, practice.ID, board.ID, kei.ID, "to")
	require.NoError(t, err)
	require.Equal(t, AssignRebound, outcome)
	require.Equal(t, kei.ID, transport.UserID)
	require.Equal(t, 0, transportCount(t, db, asa.ID))
	require.Equal(t, 1, transportCount(t, db, kei.ID))

	// The two directions are independent slots.
	_, outcome, err = d.Assign(ctx, practice.ID, board.ID, asa.ID, "from")
	require.NoError(t, err)
	require.Equal(t, AssignCreated, outcome)
	require.Equal(t, 1, transportCount(t, db, asa.ID))
}

func TestTransportDeleteClampsCounterAtZero(t *testing.T) {
	db := openTestDB(t)
	d := NewTransportDAO(db)
	ctx := context.Background()

	asa := createTestUser(t, db, "clamp-asa")
	board := createTestBoard(t, db, "Clamp Board 1")
	practice := createTestPractice(t, db, "clamp practice")

	created, _, err := d.Assign(ctx, practice.ID, board.ID, asa.ID, "to")
	require.NoError(t, err)

	// Force the counter out of sync; delete must not drive it negative.
	require.NoError(t, db.Model(&User{ID: asa.ID}).
		Update("transport_count", 0).Error)

	deleted, err := d.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, asa.ID, deleted.UserID)
	require.Equal(t, 0, transportCount(t, db, asa.ID))

	_, err = d.Delete(ctx, created.ID)
	require.ErrorIs(t, err, ErrTransportNotFound)
}

func TestTransportInsertIfAbsent(t *testing.T) {
	db := openTestDB(t)
	d := NewTransportDAO(db)
	ctx := context.Background()

	asa := createTestUser(t, db, "absent-asa")
	kei := createTestUser(t, db, "absent-kei")
	board := createTestBoard(t, db, "Absent Board 1")
	practice := createTestPractice(t, db, "absent practice")

	_, created, err := d.InsertIfAbsent(ctx, practice.ID, board.ID, asa.ID, "from")
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, 1, transportCount(t, db, asa.ID))

	// The slot is taken: the holder keeps it and no counter moves.
	existing, created, err := d.InsertIfAbsent(ctx, practice.ID, board.ID, kei.ID, "from")
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, asa.ID, existing.UserID)
	require.Equal(t, 0, transportCount(t, db, kei.ID))
}

func TestPracticeDeleteCascadesButKeepsCounters(t *testing.T) {
	db := openTestDB(t)
	practices := NewPracticeDAO(db)
	transports := NewTransportDAO(db)
	sessions := NewSessionDAO(db)
	ctx := context.Background()

	asa := createTestUser(t, db, "cascade-asa")
	board := createTestBoard(t, db, "Cascade Board 1")

	practice, err := practices.InsertWithAttendances(ctx,
		Practice{Title: "cascade practice", Location: "lake", TeamID: 1},
		[]uint{asa.ID})
	require.NoError(t, err)

	session, err := sessions.Insert(ctx, practice.ID)
	require.NoError(t, err)
	require.NoError(t, sessions.AddMember(ctx, session.ID, asa.ID))

	_, _, err = transports.Assign(ctx, practice.ID, board.ID, asa.ID, "to")
	require.NoError(t, err)
	require.Equal(t, 1, transportCount(t, db, asa.ID))

	require.NoError(t, practices.Delete(ctx, practice.ID))

	var count int64
	require.NoError(t, db.Model(&Attendance{}).
		Where("practice_id = ?", practice.ID).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, db.Model(&Transport{}).
		Where("practice_id = ?", practice.ID).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, db.Model(&Session{}).
		Where("practice_id = ?", practice.ID).Count(&count).Error)
	require.Zero(t, count)

	// Counters survive the cascade; the carrying happened either way.
	require.Equal(t, 1, transportCount(t, db, asa.ID))

	require.ErrorIs(t, practices.Delete(ctx, practice.ID), ErrPracticeNotFound)
}

func TestUserUniqueUsername(t *testing.T) {
	db := openTestDB(t)
	d := NewUserDAO(db)
	ctx := context.Background()

	_, err := d.Insert(ctx, User{Username: "unique-asa", Password: "x", Role: "member"})
	require.NoError(t, err)

	_, err = d.Insert(ctx, User{Username: "unique-asa", Password: "x", Role: "member"})
	require.ErrorIs(t, err, ErrUsernameExists)
}
