package services

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"lms/database"
	"lms/models"
	course "lms/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory sqlite database with the full schema. One
// connection only, so every query sees the same memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()
	user := models.User{
		Username: username,
		FullName: username + " Test",
		Email:    username + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := models.Category{Name: name}
	require.NoError(t, db.Create(&category).Error)
	return &category
}

func createCourse(t *testing.T, db *gorm.DB, trainerID, categoryID uint, title string) *course.Course {
	t.Helper()
	c := course.Course{
		Title:      title,
		Level:      course.LevelBeginner,
		Duration:   "4 weeks",
		CategoryID: categoryID,
		TrainerID:  trainerID,
	}
	require.NoError(t, db.Create(&c).Error)
	return &c
}

func createModule(t *testing.T, db *gorm.DB, courseID uint, title string, order int) *course.Module {
	t.Helper()
	m := course.Module{CourseID: courseID, Title: title, OrderIndex: order}
	require.NoError(t, db.Create(&m).Error)
	return &m
}

func createLesson(t *testing.T, db *gorm.DB, moduleID uint, title string, order int) *course.Lesson {
	t.Helper()
	l := course.Lesson{ModuleID: moduleID, Title: title, Duration: "10m", OrderIndex: order}
	require.NoError(t, db.Create(&l).Error)
	return &l
}

func enroll(t *testing.T, db *gorm.DB, studentID, courseID uint) {
	t.Helper()
	require.NoError(t, db.Create(&course.Enrollment{StudentID: studentID, CourseID: courseID}).Error)
}

// createQuiz seeds n questions with four answers each; the correct answer of
// every question is the first one. Returns question ids paired with their
// correct answer ids.
func createQuiz(t *testing.T, db *gorm.DB, courseID uint, n int) []AnswerSubmission {
	t.Helper()

	key := make([]AnswerSubmission, 0, n)
	for i := 0; i < n; i++ {
		q := course.Question{CourseID: courseID, Question: fmt.Sprintf("Question %d", i+1)}
		require.NoError(t, db.Create(&q).Error)

		var correctID uint
		for j := 0; j < 4; j++ {
			a := course.Answer{
				QuestionID: q.ID,
				Answer:     fmt.Sprintf("Answer %d", j+1),
				Correct:    j == 0,
			}
			require.NoError(t, db.Create(&a).Error)
			if j == 0 {
				correctID = a.ID
			}
		}
		key = append(key, AnswerSubmission{QuestionID: q.ID, AnswerID: correctID})
	}
	return key
}

// fakeStore records saved refs in memory. With fail set every Save errors,
// which lets tests assert that an upload failure aborts the sync.
type fakeStore struct {
	saved []string
	fail  bool
}

func (f *fakeStore) Save(filename string, src io.Reader) (string, error) {
	if f.fail {
		return "", errors.New("store unavailable")
	}
	if _, err := io.Copy(io.Discard, src); err != nil {
		return "", err
	}
	ref := fmt.Sprintf("ref-%d-%s", len(f.saved), filename)
	f.saved = append(f.saved, ref)
	return ref, nil
}

func (f *fakeStore) Delete(ref string) error { return nil }
