package services

import (
	course "lms/models/course"

	"gorm.io/gorm"
)

// View shapes returned by the course read surface. They flatten the content
// tree for the client and, when a student id is supplied, carry per-lesson
// completion flags.

type LessonView struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Duration  string `json:"duration"`
	Video     string `json:"video,omitempty"`
	Completed bool   `json:"completed"`
}

type ModuleView struct {
	ID      uint         `json:"id"`
	Title   string       `json:"title"`
	Lessons []LessonView `json:"lessons"`
}

type AnswerView struct {
	ID      uint   `json:"id"`
	Answer  string `json:"answer"`
	Correct *bool  `json:"correct,omitempty"`
}

type QuestionView struct {
	ID       uint         `json:"id"`
	Question string       `json:"question"`
	Answers  []AnswerView `json:"answers"`
}

// CourseContentTree returns the modules and lessons of a course in display
// order. When studentID is non-zero their completion events are folded in.
func CourseContentTree(db *gorm.DB, courseID, studentID uint) ([]ModuleView, error) {
	var modules []course.Module
	if err := db.Where("course_id = ?", courseID).Order("order_index asc").Find(&modules).Error; err != nil {
		return nil, err
	}

	completed := map[uint]bool{}
	if studentID != 0 {
		var lessonIDs []uint
		err := db.Model(&course.CompletedLesson{}).
			Joins("JOIN lessons ON lessons.id = completed_lessons.lesson_id").
			Joins("JOIN modules ON modules.id = lessons.module_id").
			Where("completed_lessons.student_id = ? AND modules.course_id = ?", studentID, courseID).
			Pluck("completed_lessons.lesson_id", &lessonIDs).Error
		if err != nil {
			return nil, err
		}
		for _, id := range lessonIDs {
			completed[id] = true
		}
	}

	views := make([]ModuleView, 0, len(modules))
	for _, m := range modules {
		var lessons []course.Lesson
		if err := db.Where("module_id = ?", m.ID).Order("order_index asc").Find(&lessons).Error; err != nil {
			return nil, err
		}

		lv := make([]LessonView, 0, len(lessons))
		for _, l := range lessons {
			lv = append(lv, LessonView{
				ID:        l.ID,
				Title:     l.Title,
				Duration:  l.Duration,
				Video:     l.Video,
				Completed: completed[l.ID],
			})
		}
		views = append(views, ModuleView{ID: m.ID, Title: m.Title, Lessons: lv})
	}
	return views, nil
}

// CourseQuiz returns the quiz of a course. Correct flags are only populated
// for the owning trainer's edit view; students must never see them.
func CourseQuiz(db *gorm.DB, courseID uint, includeCorrect bool) ([]QuestionView, error) {
	var questions []course.Question
	if err := db.Where("course_id = ?", courseID).Order("id asc").Find(&questions).Error; err != nil {
		return nil, err
	}

	views := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		var answers []course.Answer
		if err := db.Where("question_id = ?", q.ID).Order("id asc").Find(&answers).Error; err != nil {
			return nil, err
		}

		av := make([]AnswerView, 0, len(answers))
		for _, a := range answers {
			view := AnswerView{ID: a.ID, Answer: a.Answer}
			if includeCorrect {
				correct := a.Correct
				view.Correct = &correct
			}
			av = append(av, view)
		}
		views = append(views, QuestionView{ID: q.ID, Question: q.Question, Answers: av})
	}
	return views, nil
}
