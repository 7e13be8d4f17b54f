package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&User{},
		&Session{},
		&Account{},
		&Verification{},
		&Organization{},
		&Member{},
		&Invitation{},
		&JobList{},
		&JobApplication{},
		&UserResume{},
		&UserNotificationSetting{},
	))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func seedGraph(t *testing.T, db *gorm.DB) (User, Organization) {
	t.Helper()

	user := User{Name: "Alice Smith", Email: "alice@example.com"}
	require.NoError(t, db.Create(&user).Error)

	require.NoError(t, db.Create(&Session{
		Token:     "token-1",
		ExpiresAt: time.Now().Add(time.Hour),
		UserID:    user.ID,
	}).Error)
	require.NoError(t, db.Create(&Account{
		AccountID:  user.ID,
		ProviderID: ProviderCredential,
		UserID:     user.ID,
	}).Error)

	org := Organization{
		Name:     "Acme",
		Slug:     "acme",
		Metadata: datatypes.NewJSONType(OrganizationMetadata{}),
	}
	require.NoError(t, db.Create(&org).Error)
	require.NoError(t, db.Create(&Member{
		OrganizationID: org.ID,
		UserID:         user.ID,
		Role:           RoleOwner,
	}).Error)

	job := JobList{
		Title:               "Backend Engineer",
		Description:         "desc",
		LocationRequirement: LocationRemote,
		ExperienceLevel:     ExperienceMid,
		Status:              JobStatusPublished,
		Type:                JobTypeFullTime,
		OrganizationID:      org.ID,
		OwnerID:             user.ID,
	}
	require.NoError(t, db.Create(&job).Error)
	require.NoError(t, db.Create(&JobApplication{
		JobListID: job.ID,
		UserID:    user.ID,
	}).Error)

	return user, org
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestCascade_DeleteOrganization(t *testing.T) {
	db := openDB(t)
	_, org := seedGraph(t, db)

	require.NoError(t, db.Delete(&Organization{}, "id = ?", org.ID).Error)

	assert.Zero(t, count(t, db, &Member{}))
	assert.Zero(t, count(t, db, &JobList{}))
	assert.Zero(t, count(t, db, &JobApplication{}))
	// The user survives an organization delete.
	assert.Equal(t, int64(1), count(t, db, &User{}))
}

func TestCascade_DeleteUser(t *testing.T) {
	db := openDB(t)
	user, _ := seedGraph(t, db)

	require.NoError(t, db.Delete(&User{}, "id = ?", user.ID).Error)

	assert.Zero(t, count(t, db, &Session{}))
	assert.Zero(t, count(t, db, &Account{}))
	assert.Zero(t, count(t, db, &Member{}))
	assert.Zero(t, count(t, db, &JobApplication{}))
	// The organization outlives its members.
	assert.Equal(t, int64(1), count(t, db, &Organization{}))
}

func TestUniqueIndexes(t *testing.T) {
	db := openDB(t)
	user, org := seedGraph(t, db)

	// One membership per (organization, user).
	err := db.Create(&Member{OrganizationID: org.ID, UserID: user.ID, Role: RoleMember}).Error
	assert.Error(t, err)

	// One listing title per organization.
	err = db.Create(&JobList{
		Title:               "Backend Engineer",
		Description:         "again",
		LocationRequirement: LocationHybrid,
		ExperienceLevel:     ExperienceJunior,
		Status:              JobStatusDraft,
		Type:                JobTypePartTime,
		OrganizationID:      org.ID,
		OwnerID:             user.ID,
	}).Error
	assert.Error(t, err)

	// One application per (job, user) via the composite primary key.
	var job JobList
	require.NoError(t, db.First(&job).Error)
	err = db.Create(&JobApplication{JobListID: job.ID, UserID: user.ID}).Error
	assert.Error(t, err)
}

func TestSessionExpired(t *testing.T) {
	assert.False(t, (&Session{ExpiresAt: time.Now().Add(time.Minute)}).Expired())
	assert.True(t, (&Session{ExpiresAt: time.Now().Add(-time.Minute)}).Expired())
}

func TestInvitationExpired(t *testing.T) {
	assert.False(t, (&Invitation{ExpiresAt: time.Now().Add(time.Hour)}).Expired())
	assert.True(t, (&Invitation{ExpiresAt: time.Now().Add(-time.Hour)}).Expired())
}
