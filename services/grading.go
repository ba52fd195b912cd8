package services

import (
	"encoding/json"
	"errors"
	"time"

	"lms/models"
	course "lms/models/course"

	"gorm.io/gorm"
)

// AnswerSubmission is one (question, chosen answer) pair of a quiz attempt.
type AnswerSubmission struct {
	QuestionID uint `json:"questionId"`
	AnswerID   uint `json:"answerId"`
}

// QuestionResult is the per-question line of a graded attempt.
type QuestionResult struct {
	QuestionID      uint `json:"questionId"`
	SubmittedAnswer uint `json:"submittedAnswer"`
	CorrectAnswer   uint `json:"correctAnswer"`
	Correct         bool `json:"correct"`
}

// GradeReport is what a student gets back from a quiz submission.
type GradeReport struct {
	CourseID       uint             `json:"courseId"`
	Score          int              `json:"score"`
	TotalQuestions int              `json:"totalQuestions"`
	CorrectAnswers int              `json:"correctAnswers"`
	CompletedAt    time.Time        `json:"completedAt"`
	Questions      []QuestionResult `json:"questions"`
}

// SubmitQuiz grades a student's quiz attempt against the course's answer key
// and upserts the Result row for the (student, course) pair. Only the latest
// attempt is kept. Score is integer percentage, truncated: 2 of 3 correct
// yields 66.
func SubmitQuiz(tx *gorm.DB, studentID, courseID uint, answers []AnswerSubmission) (*GradeReport, error) {
	var student models.User
	if err := tx.Where("id = ? AND is_deleted = ?", studentID, false).First(&student).Error; err != nil {
		return nil, NewNotFound("User", "id", studentID)
	}

	var c course.Course
	if err := tx.Where("id = ? AND is_deleted = ?", courseID, false).First(&c).Error; err != nil {
		return nil, NewNotFound("Course", "id", courseID)
	}

	enrolled, err := IsEnrolled(tx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, NewForbidden("you are not enrolled in this course")
	}

	if len(answers) == 0 {
		return nil, NewBadRequest("no answers submitted")
	}

	questionIDs := make([]uint, 0, len(answers))
	seen := make(map[uint]bool, len(answers))
	for _, a := range answers {
		if seen[a.QuestionID] {
			return nil, NewBadRequest("duplicate answer for question %d", a.QuestionID)
		}
		seen[a.QuestionID] = true
		questionIDs = append(questionIDs, a.QuestionID)
	}

	var questions []course.Question
	if err := tx.Where("id IN ?", questionIDs).Find(&questions).Error; err != nil {
		return nil, err
	}
	if len(questions) != len(questionIDs) {
		return nil, NewBadRequest("submission references questions that do not exist")
	}
	for _, q := range questions {
		if q.CourseID != courseID {
			return nil, NewForbidden("question %d does not belong to this course", q.ID)
		}
	}

	var total int64
	if err := tx.Model(&course.Question{}).Where("course_id = ?", courseID).Count(&total).Error; err != nil {
		return nil, err
	}
	if int(total) != len(answers) {
		return nil, NewBadRequest("expected %d answers, got %d", total, len(answers))
	}

	// Answer key: question id -> id of its correct answer. A question missing
	// from the map has no correct answer and can only grade as incorrect; the
	// authoring guard keeps that from happening in practice.
	var correct []course.Answer
	if err := tx.Where("question_id IN ? AND correct = ?", questionIDs, true).Find(&correct).Error; err != nil {
		return nil, err
	}
	key := make(map[uint]uint, len(correct))
	for _, a := range correct {
		key[a.QuestionID] = a.ID
	}

	// The chosen answer has to be one of its question's own answers.
	var submitted []course.Answer
	answerIDs := make([]uint, 0, len(answers))
	for _, a := range answers {
		answerIDs = append(answerIDs, a.AnswerID)
	}
	if err := tx.Where("id IN ?", answerIDs).Find(&submitted).Error; err != nil {
		return nil, err
	}
	owner := make(map[uint]uint, len(submitted))
	for _, a := range submitted {
		owner[a.ID] = a.QuestionID
	}

	report := GradeReport{
		CourseID:       courseID,
		TotalQuestions: len(answers),
		CompletedAt:    time.Now(),
	}
	for _, a := range answers {
		qid, ok := owner[a.AnswerID]
		if !ok || qid != a.QuestionID {
			return nil, NewBadRequest("answer %d does not belong to question %d", a.AnswerID, a.QuestionID)
		}
		correctID, hasKey := key[a.QuestionID]
		isCorrect := hasKey && correctID == a.AnswerID
		if isCorrect {
			report.CorrectAnswers++
		}
		report.Questions = append(report.Questions, QuestionResult{
			QuestionID:      a.QuestionID,
			SubmittedAnswer: a.AnswerID,
			CorrectAnswer:   correctID,
			Correct:         isCorrect,
		})
	}

	report.Score = report.CorrectAnswers * 100 / report.TotalQuestions

	breakdown, err := json.Marshal(report.Questions)
	if err != nil {
		return nil, err
	}

	// One Result per (student, course): a retake overwrites the previous
	// attempt instead of stacking new rows.
	var result course.Result
	err = tx.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&result).Error
	switch {
	case err == nil:
		result.Score = report.Score
		result.CompletedAt = report.CompletedAt
		result.Breakdown = breakdown
		if err := tx.Save(&result).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		result = course.Result{
			StudentID:   studentID,
			CourseID:    courseID,
			Score:       report.Score,
			CompletedAt: report.CompletedAt,
			Breakdown:   breakdown,
		}
		if err := tx.Create(&result).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return &report, nil
}

// StudentResults lists a student's quiz results across all their courses.
func StudentResults(db *gorm.DB, studentID uint) ([]course.Result, error) {
	var results []course.Result
	err := db.Where("student_id = ?", studentID).Order("completed_at desc").Find(&results).Error
	return results, err
}

// CourseResult fetches the student's result for one course, nil when the quiz
// has not been taken yet.
func CourseResult(db *gorm.DB, studentID, courseID uint) (*course.Result, error) {
	var result course.Result
	err := db.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
