package services

import (
	"database/sql"
	"errors"
	"math"

	"lms/models"
	course "lms/models/course"

	"gorm.io/gorm"
)

// ProgressReport summarizes one student's standing in one course.
type ProgressReport struct {
	CourseID         uint    `json:"courseId"`
	CourseTitle      string  `json:"courseTitle"`
	StudentID        uint    `json:"studentId"`
	StudentName      string  `json:"studentName,omitempty"`
	TotalLessons     int     `json:"totalLessons"`
	CompletedLessons int     `json:"completedLessons"`
	Percentage       float64 `json:"percentage"`
	AverageScore     *int    `json:"quizScore,omitempty"`
}

// ToggleLessonCompletion flips the completion state of a lesson for a student.
// Presence of the row is the state: completing creates it, un-completing
// removes it. Returns the new state.
func ToggleLessonCompletion(tx *gorm.DB, studentID, lessonID uint) (bool, error) {
	var lesson course.Lesson
	if err := tx.First(&lesson, lessonID).Error; err != nil {
		return false, NewNotFound("Lesson", "id", lessonID)
	}

	var mod course.Module
	if err := tx.First(&mod, lesson.ModuleID).Error; err != nil {
		return false, NewNotFound("Module", "id", lesson.ModuleID)
	}

	enrolled, err := IsEnrolled(tx, studentID, mod.CourseID)
	if err != nil {
		return false, err
	}
	if !enrolled {
		return false, NewForbidden("you are not enrolled in this course")
	}

	var cl course.CompletedLesson
	err = tx.Where("student_id = ? AND lesson_id = ?", studentID, lessonID).First(&cl).Error
	switch {
	case err == nil:
		if err := tx.Unscoped().Delete(&cl).Error; err != nil {
			return false, err
		}
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		cl = course.CompletedLesson{StudentID: studentID, LessonID: lessonID}
		if err := tx.Create(&cl).Error; err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}

// CourseProgress computes a student's completion percentage and quiz score for
// a course they are enrolled in. A course with no lessons reports 0 percent,
// never a division error.
func CourseProgress(db *gorm.DB, studentID, courseID uint) (*ProgressReport, error) {
	var enrollment course.Enrollment
	err := db.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&enrollment).Error
	if err != nil {
		return nil, NewNotFound("Enrollment", "courseId", courseID)
	}

	var c course.Course
	if err := db.First(&c, courseID).Error; err != nil {
		return nil, NewNotFound("Course", "id", courseID)
	}

	report := ProgressReport{CourseID: courseID, CourseTitle: c.Title, StudentID: studentID}
	if err := fillProgress(db, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// StudentProgressAllCourses reports progress for every course the student is
// enrolled in.
func StudentProgressAllCourses(db *gorm.DB, studentID uint) ([]ProgressReport, error) {
	var enrollments []course.Enrollment
	if err := db.Where("student_id = ?", studentID).Find(&enrollments).Error; err != nil {
		return nil, err
	}

	reports := make([]ProgressReport, 0, len(enrollments))
	for _, e := range enrollments {
		var c course.Course
		if err := db.First(&c, e.CourseID).Error; err != nil {
			return nil, err
		}
		report := ProgressReport{CourseID: e.CourseID, CourseTitle: c.Title, StudentID: studentID}
		if err := fillProgress(db, &report); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// TrainerStudentsProgress reports, for every enrollment in the trainer's
// courses, the student's progress. Backs the trainer dashboard.
func TrainerStudentsProgress(db *gorm.DB, trainerID uint) ([]ProgressReport, error) {
	var courses []course.Course
	if err := db.Where("trainer_id = ? AND is_deleted = ?", trainerID, false).Find(&courses).Error; err != nil {
		return nil, err
	}

	var reports []ProgressReport
	for _, c := range courses {
		var enrollments []course.Enrollment
		if err := db.Where("course_id = ?", c.ID).Find(&enrollments).Error; err != nil {
			return nil, err
		}
		for _, e := range enrollments {
			var student models.User
			if err := db.First(&student, e.StudentID).Error; err != nil {
				return nil, err
			}
			report := ProgressReport{
				CourseID:    c.ID,
				CourseTitle: c.Title,
				StudentID:   e.StudentID,
				StudentName: student.FullName,
			}
			if err := fillProgress(db, &report); err != nil {
				return nil, err
			}
			reports = append(reports, report)
		}
	}
	return reports, nil
}

func fillProgress(db *gorm.DB, report *ProgressReport) error {
	var total int64
	err := db.Model(&course.Lesson{}).
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("modules.course_id = ?", report.CourseID).
		Count(&total).Error
	if err != nil {
		return err
	}

	var completed int64
	err = db.Model(&course.CompletedLesson{}).
		Joins("JOIN lessons ON lessons.id = completed_lessons.lesson_id").
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("completed_lessons.student_id = ? AND modules.course_id = ?", report.StudentID, report.CourseID).
		Count(&completed).Error
	if err != nil {
		return err
	}

	report.TotalLessons = int(total)
	report.CompletedLessons = int(completed)
	if total > 0 {
		pct := float64(completed) * 100 / float64(total)
		report.Percentage = math.Round(pct*100) / 100
	}

	var score sql.NullInt64
	row := db.Model(&course.Result{}).
		Where("student_id = ? AND course_id = ?", report.StudentID, report.CourseID).
		Select("score").Row()
	if err := row.Scan(&score); err == nil && score.Valid {
		s := int(score.Int64)
		report.AverageScore = &s
	}

	return nil
}
