package services

import (
	"errors"

	"lms/models"
	course "lms/models/course"

	"gorm.io/gorm"
)

// EnrollmentView is the list shape for enrollment endpoints, with the
// student's progress folded in.
type EnrollmentView struct {
	ID          uint    `json:"id"`
	StudentID   uint    `json:"studentId"`
	StudentName string  `json:"studentName,omitempty"`
	CourseID    uint    `json:"courseId"`
	CourseTitle string  `json:"courseTitle"`
	Percentage  float64 `json:"percentage"`
}

// Enroll creates the enrollment row for a student in a course. Enrolling twice
// is a conflict, not a no-op.
func Enroll(tx *gorm.DB, studentID, courseID uint) (*course.Enrollment, error) {
	var student models.User
	if err := tx.Where("id = ? AND is_deleted = ?", studentID, false).First(&student).Error; err != nil {
		return nil, NewNotFound("User", "id", studentID)
	}

	var c course.Course
	if err := tx.Where("id = ? AND is_deleted = ?", courseID, false).First(&c).Error; err != nil {
		return nil, NewNotFound("Course", "id", courseID)
	}

	var existing course.Enrollment
	err := tx.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&existing).Error
	if err == nil {
		return nil, NewConflict("Enrollment", "courseId", courseID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := course.Enrollment{StudentID: studentID, CourseID: courseID}
	if err := tx.Create(&enrollment).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// IsEnrolled reports whether the student has an enrollment row for the course.
func IsEnrolled(db *gorm.DB, studentID, courseID uint) (bool, error) {
	var count int64
	err := db.Model(&course.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error
	return count > 0, err
}

// StudentEnrollments lists the courses a student is enrolled in, with
// progress.
func StudentEnrollments(db *gorm.DB, studentID uint) ([]EnrollmentView, error) {
	var enrollments []course.Enrollment
	if err := db.Where("student_id = ?", studentID).Find(&enrollments).Error; err != nil {
		return nil, err
	}

	views := make([]EnrollmentView, 0, len(enrollments))
	for _, e := range enrollments {
		var c course.Course
		if err := db.First(&c, e.CourseID).Error; err != nil {
			return nil, err
		}
		report := ProgressReport{CourseID: e.CourseID, StudentID: studentID}
		if err := fillProgress(db, &report); err != nil {
			return nil, err
		}
		views = append(views, EnrollmentView{
			ID:          e.ID,
			StudentID:   studentID,
			CourseID:    e.CourseID,
			CourseTitle: c.Title,
			Percentage:  report.Percentage,
		})
	}
	return views, nil
}

// CourseEnrollments lists the students enrolled in a course, with progress.
// Used by the owning trainer.
func CourseEnrollments(db *gorm.DB, courseID uint) ([]EnrollmentView, error) {
	var c course.Course
	if err := db.First(&c, courseID).Error; err != nil {
		return nil, NewNotFound("Course", "id", courseID)
	}

	var enrollments []course.Enrollment
	if err := db.Where("course_id = ?", courseID).Find(&enrollments).Error; err != nil {
		return nil, err
	}

	views := make([]EnrollmentView, 0, len(enrollments))
	for _, e := range enrollments {
		var student models.User
		if err := db.First(&student, e.StudentID).Error; err != nil {
			return nil, err
		}
		report := ProgressReport{CourseID: courseID, StudentID: e.StudentID}
		if err := fillProgress(db, &report); err != nil {
			return nil, err
		}
		views = append(views, EnrollmentView{
			ID:          e.ID,
			StudentID:   e.StudentID,
			StudentName: student.FullName,
			CourseID:    courseID,
			CourseTitle: c.Title,
			Percentage:  report.Percentage,
		})
	}
	return views, nil
}
