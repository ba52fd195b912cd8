package services

import (
	"testing"

	"lms/models"
	course "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitQuizScoresTruncated(t *testing.T) {
	db := setupTestDB(t)
	trainer := createUser(t, db, "trainer1", models.RoleTrainer)
	student := createUser(t, db, "student1", models.RoleStudent)
	category := createCategory(t, db, "Programming")
	crs := createCourse(t, db, trainer.ID, category.ID, "Go Basics")
	enroll(t, db, student.ID, crs.ID)

	key := createQuiz(t, db, crs.ID, 3)

	// Two of three correct: 2*100/3 truncates to 66.
	submission := []AnswerSubmission{key[0], key[1], {QuestionID: key[2].QuestionID, AnswerID: key[2].AnswerID + 1}}

	report, err := SubmitQuiz(db, student.ID, crs.ID, submission)
	require.NoError(t, err)
	assert.Equal(t, 66, report.Score)
	assert.Equal(t, 3, report.TotalQuestions)
	assert.Equal(t, 2, report.CorrectAnswers)
	require.Len(t, report.Questions, 3)
	assert.True(t, report.Questions[0].Correct)
	assert.False(t, report.Questions[2].Correct)
}

func TestSubmitQuizUpsertsResult(t *testing.T) {
	db := setupTestDB(t)
	trainer := createUser(t, db, "trainer1", models.RoleTrainer)
	student := createUser(t, db, "student1", models.RoleStudent)
	category := createCategory(t, db, "Programming")
	crs := createCourse(t, db, trainer.ID, category.ID, "Go Basics")
	enroll(t, db, student.ID, crs.ID)

	key := createQuiz(t, db, crs.ID, 2)

	// First attempt: all wrong.
	wrong := []AnswerSubmission{
		{QuestionID: key[0].QuestionID, AnswerID: key[0].AnswerID + 1},
		{QuestionID: key[1].QuestionID, AnswerID: key[1].AnswerID + 1},
	}
	_, err := SubmitQuiz(db, student.ID, crs.ID, wrong)
	require.NoError(t, err)

	// Retake: all correct. The same row must be overwritten.
	report, err := SubmitQuiz(db, student.ID, crs.ID, key)
	require.NoError(t, err)
	assert.Equal(t, 100, report.Score)

	var results []course.Result
	require.NoError(t, db.Where("student_id = ? AND course_id = ?", student.ID, crs.ID).Find(&results).Error)
	require.Len(t, results, 1)
	assert.Equal(t, 100, results[0].Score)
	assert.NotEmpty(t, results[0].Breakdown)
}

func TestResultUniquePerStudentCourse(t *testing.T) {
	db := setupTestDB(t)
	trainer := createUser(t, db, "trainer1", models.RoleTrainer)
	student := createUser(t, db, "student1", models.RoleStudent)
	category := createCategory(t, db, "Programming")
	crs := createCourse(t, db, trainer.ID, category.ID, "Go Basics")
	enroll(t, db, student.ID, crs.ID)

	require.NoError(t, db.Create(&course.Result{StudentID: student.ID, CourseID: crs.ID, Score: 50}).Error)

	// The unique index on (student_id, course_id) backs the upsert: a second
	// row for the same pair must be rejected at the database level.
	err := db.Create(&course.Result{StudentID: student.ID, CourseID: crs.ID, Score: 80}).Error
	require.Error(t, err)

	var count int64
	db.Model(&course.Result{}).Where("student_id = ? AND course_id = ?", student.ID, crs.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSubmitQuizRequiresEnrollment(t *testing.T) {
	db := setupTestDB(t)
	trainer := createUser(t, db, "trainer1", models.RoleTrainer)
	student := createUser(t, db, "student1", models.RoleStudent)
	category := createCategory(t, db, "Programming")
	crs := createCourse(t, db, trainer.ID, category.ID, "Go Basics")

	key := createQuiz(t, db, crs.ID, 1)

	_, err := SubmitQuiz(db, student.ID, crs.ID, key)
	require.Error(t, err)
	assert.Equal(t, 403, HTTPStatus(err))
}

func TestSubmitQuizRejectsForeignQuestion(t *testing.T) {
	db := setupTestDB(t)
	trainer := createUser(t, db, "trainer1", models.RoleTrainer)
	student := createUser(t, db, "student1", models.RoleStudent)
	category := createCategory(t, db, "Programming")
	crsA := createCourse(t, db, trainer.ID, category.ID, "Course A")
	crsB := createCourse(t, db, trainer.ID, category.ID, "Course B")
	enroll(t, db, student.ID, crsA.ID)

	createQuiz(t, db, crsA.ID, 1)
	keyB := createQuiz(t, db, crsB.ID, 1)

	// Answer count matches course A's question count but the question belongs
	// to course B.
	_, err := SubmitQuiz(db, student.ID, crsA.ID, []AnswerSubmission{keyB[0]})
	require.Error(t, err)
	assert.Equal(t, 403, HTTPStatus(err))
}

func TestSubmitQuizRejectsCountMismatch(t *testing.T) {
	db := setupTestDB(t)
	trainer := createUser(t, db, "trainer1", models.RoleTrainer)
	student := createUser(t, db, "student1", models.RoleStudent)
	category := createCategory(t, db, "Programming")
	crs := createCourse(t, db, trainer.ID, category.ID, "Go Basics")
	enroll(t, db, student.ID, crs.ID)

	key := createQuiz(t, db, crs.ID, 3)

	_, err := SubmitQuiz(db, student.ID, crs.ID, key[:2])
	require.Error(t, err)
	assert.Equal(t, 400, HTTPStatus(err))
}

func TestSubmitQuizRejectsDuplicateQuestions(t *testing.T) {
	db := setupTestDB(t)
	trainer := createUser(t, db, "trainer1", models.RoleTrainer)
	student := createUser(t, db, "student1", models.RoleStudent)
	category := createCategory(t, db, "Programming")
	crs := createCourse(t, db, trainer.ID, category.ID, "Go Basics")
	enroll(t, db, student.ID, crs.ID)

	key := createQuiz(t, db, crs.ID, 2)

	_, err := SubmitQuiz(db, student.ID, crs.ID, []AnswerSubmission{key[0], key[0]})
	require.Error(t, err)
	assert.Equal(t, 400, HTTPStatus(err))
}

func TestSubmitQuizRejectsMismatchedAnswer(t *testing.T) {
	db := setupTestDB(t)
	trainer := createUser(t, db, "trainer1", models.RoleTrainer)
	student := createUser(t, db, "student1", models.RoleStudent)
	category := createCategory(t, db, "Programming")
	crs := createCourse(t, db, trainer.ID, category.ID, "Go Basics")
	enroll(t, db, student.ID, crs.ID)

	key := createQuiz(t, db, crs.ID, 2)

	// The answer of question 2 submitted against question 1.
	_, err := SubmitQuiz(db, student.ID, crs.ID, []AnswerSubmission{
		{QuestionID: key[0].QuestionID, AnswerID: key[1].AnswerID},
		key[1],
	})
	require.Error(t, err)
	assert.Equal(t, 400, HTTPStatus(err))
}

func TestSubmitQuizEmptyCourseQuiz(t *testing.T) {
	db := setupTestDB(t)
	trainer := createUser(t, db, "trainer1", models.RoleTrainer)
	student := createUser(t, db, "student1", models.RoleStudent)
	category := createCategory(t, db, "Programming")
	crs := createCourse(t, db, trainer.ID, category.ID, "Go Basics")
	enroll(t, db, student.ID, crs.ID)

	_, err := SubmitQuiz(db, student.ID, crs.ID, nil)
	require.Error(t, err)
	assert.Equal(t, 400, HTTPStatus(err))
}
