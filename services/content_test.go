package services

import (
	"strings"
	"testing"

	"lms/models"
	course "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestSyncModulesCreatesTree(t *testing.T) {
	db := setupTestDB(t)
	trainer := createUser(t, db, "trainer1", models.RoleTrainer)
	category := createCategory(t, db, "Programming")
	crs := createCourse(t, db, trainer.ID, category.ID, "Go Basics")

	svc := NewContentService(&fakeStore{})

	incoming := []ModuleInput{
		{Title: "Introduction", Lessons: []LessonInput{
			{Title: "Welcome", Duration: "5m"},
			{Title: "Setup", Duration: "15m"},
		}},
		{Title: "Syntax", Lessons: []LessonInput{
			{Title: "Variables", Duration: "20m"},
		}},
	}

	synced, err := svc.SyncModules(db, crs.ID, incoming, nil)
	require.NoError(t, err)
	require.Len(t, synced, 2)

	assert.Equal(t, 0, synced[0].OrderIndex)
	assert.Equal(t, 1, synced[1].OrderIndex)

	var lessons []course.Lesson
	require.NoError(t, db.Where("module_id = ?", synced[0].ID).Order("order_index asc").Find(&lessons).Error)
	require.Len(t, lessons, 2)
	assert.Equal(t, "Welcome", lessons[0].Title)
	assert.Equal(t, "Setup", lessons[1].Title)
}

func TestSyncModulesRetainsAndReorders(t *testing.T) {
	db := setupTestDB(t)
	trainer := createUser(t, db, "trainer1", models.RoleTrainer)
	category := createCategory(t, db, "Programming")
	crs := createCourse(t, db, trainer.ID, category.ID, "Go Basics")

	modA := createModule(t, db, crs.ID, "A", 0)
	modB := createModule(t, db, crs.ID, "B", 1)
	lesA := createLesson(t, db, modA.ID, "A1", 0)

	svc := NewContentService(&fakeStore{})

	// B first, A (renamed) second; the lesson of A is retained.
	incoming := []ModuleInput{
		{ID: uintPtr(modB.ID), Title: "B"},
		{ID: uintPtr(modA.ID), Title: "A renamed", Lessons: []LessonInput{
			{ID: uintPtr(lesA.ID), Title: "A1 renamed", Duration: "8m"},
		}},
	}

	synced, err := svc.SyncModules(db, crs.ID, incoming, nil)
	require.NoError(t, err)
	require.Len(t, synced, 2)

	assert.Equal(t, modB.ID, synced[0].ID)
	assert.Equal(t, 0, synced[0].OrderIndex)
	assert.Equal(t, modA.ID, synced[1].ID)
	assert.Equal(t, "A renamed", synced[1].Title)
	assert.Equal(t, 1, synced[1].OrderIndex)

	var lesson course.Lesson
	require.NoError(t, db.First(&lesson, lesA.ID).Error)
	assert.Equal(t, "A1 renamed", lesson.Title)
	assert.Equal(t, 0, lesson.OrderIndex)

	// Resubmitting the same tree must be a pure no-op: same ids, no extra
	// rows created, nothing deleted.
	again, err := svc.SyncModules(db, crs.ID, incoming, nil)
	require.NoError(t, err)
	require.Len(t, again, 2)
	assert.Equal(t, synced[0].ID, again[0].ID)
	assert.Equal(t, synced[1].ID, again[1].ID)

	var modCount, lessonCount int64
	db.Model(&course.Module{}).Where("course_id = ?", crs.ID).Count(&modCount)
	db.Model(&course.Lesson{}).
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("modules.course_id = ?", crs.ID).
		Count(&lessonCount)
	assert.Equal(t, int64(2), modCount)
	assert.Equal(t, int64(1), lessonCount)
}

func TestSyncModulesDeletesOrphans(t *testing.T) {
	db := setupTestDB(t)
	trainer := createUser(t, db, "trainer1", models.RoleTrainer)
	student := createUser(t, db, "student1", models.RoleStudent)
	category := createCategory(t, db, "Programming")
	crs := createCourse(t, db, trainer.ID, category.ID, "Go Basics")

	keep := createModule(t, db, crs.ID, "Keep", 0)
	drop := createModule(t, db, crs.ID, "Drop", 1)
	dropLesson := createLesson(t, db, drop.ID, "Gone", 0)

	enroll(t, db, student.ID, crs.ID)
	require.NoError(t, db.Create(&course.CompletedLesson{StudentID: student.ID, LessonID: dropLesson.ID}).Error)

	svc := NewContentService(&fakeStore{})

	_, err := svc.SyncModules(db, crs.ID, []ModuleInput{
		{ID: uintPtr(keep.ID), Title: "Keep"},
	}, nil)
	require.NoError(t, err)

	var modCount, lessonCount, completedCount int64
	db.Model(&course.Module{}).Where("course_id = ?", crs.ID).Count(&modCount)
	db.Model(&course.Lesson{}).Where("module_id = ?", drop.ID).Count(&lessonCount)
	db.Model(&course.CompletedLesson{}).Where("lesson_id = ?", dropLesson.ID).Count(&completedCount)

	assert.Equal(t, int64(1), modCount)
	assert.Equal(t, int64(0), lessonCount)
	assert.Equal(t, int64(0), completedCount)
}

func TestSyncModulesRejectsForeignModule(t *testing.T) {
	db := setupTestDB(t)
	trainer := createUser(t, db, "trainer1", models.RoleTrainer)
	category := createCategory(t, db, "Programming")
	crsA := createCourse(t, db, trainer.ID, category.ID, "Course A")
	crsB := createCourse(t, db, trainer.ID, category.ID, "Course B")
	foreign := createModule(t, db, crsB.ID, "Of B", 0)

	svc := NewContentService(&fakeStore{})

	_, err := svc.SyncModules(db, crsA.ID, []ModuleInput{
		{ID: uintPtr(foreign.ID), Title: "Stolen"},
	}, nil)
	require.Error(t, err)
	assert.Equal(t, 404, HTTPStatus(err))
}

func TestSyncLessonsRejectsCrossModuleLesson(t *testing.T) {
	db := setupTestDB(t)
	trainer := createUser(t, db, "trainer1", models.RoleTrainer)
	category := createCategory(t, db, "Programming")
	crs := createCourse(t, db, trainer.ID, category.ID, "Go Basics")

	modA := createModule(t, db, crs.ID, "A", 0)
	modB := createModule(t, db, crs.ID, "B", 1)
	lesA := createLesson(t, db, modA.ID, "A1", 0)

	svc := NewContentService(&fakeStore{})

	// The lesson of A submitted under B must not silently reparent.
	_, err := svc.SyncModules(db, crs.ID, []ModuleInput{
		{ID: uintPtr(modA.ID), Title: "A"},
		{ID: uintPtr(modB.ID), Title: "B", Lessons: []LessonInput{
			{ID: uintPtr(lesA.ID), Title: "Moved", Duration: "5m"},
		}},
	}, nil)
	require.Error(t, err)
	assert.Equal(t, 404, HTTPStatus(err))
}

func TestSyncModulesRejectsDuplicateModuleIds(t *testing.T) {
	db := setupTestDB(t)
	trainer := createUser(t, db, "trainer1", models.RoleTrainer)
	category := createCategory(t, db, "Programming")
	crs := createCourse(t, db, trainer.ID, category.ID, "Go Basics")
	mod := createModule(t, db, crs.ID, "A", 0)

	svc := NewContentService(&fakeStore{})

	_, err := svc.SyncModules(db, crs.ID, []ModuleInput{
		{ID: uintPtr(mod.ID), Title: "First mention"},
		{ID: uintPtr(mod.ID), Title: "Second mention"},
	}, nil)
	require.Error(t, err)
	assert.Equal(t, 400, HTTPStatus(err))
}

func TestSyncLessonsRejectsDuplicateLessonIds(t *testing.T) {
	db := setupTestDB(t)
	trainer := createUser(t, db, "trainer1", models.RoleTrainer)
	category := createCategory(t, db, "Programming")
	crs := createCourse(t, db, trainer.ID, category.ID, "Go Basics")
	mod := createModule(t, db, crs.ID, "A", 0)
	lesson := createLesson(t, db, mod.ID, "A1", 0)

	svc := NewContentService(&fakeStore{})

	_, err := svc.SyncModules(db, crs.ID, []ModuleInput{
		{ID: uintPtr(mod.ID), Title: "A", Lessons: []LessonInput{
			{ID: uintPtr(lesson.ID), Title: "A1", Duration: "5m"},
			{ID: uintPtr(lesson.ID), Title: "A1 again", Duration: "5m"},
		}},
	}, nil)
	require.Error(t, err)
	assert.Equal(t, 400, HTTPStatus(err))
}

func TestSyncModulesBindsVideosByPosition(t *testing.T) {
	db := setupTestDB(t)
	trainer := createUser(t, db, "trainer1", models.RoleTrainer)
	category := createCategory(t, db, "Programming")
	crs := createCourse(t, db, trainer.ID, category.ID, "Go Basics")

	store := &fakeStore{}
	svc := NewContentService(store)

	incoming := []ModuleInput{
		{Title: "First", Lessons: []LessonInput{{Title: "1.1"}}},
		{Title: "Second", Lessons: []LessonInput{
			{Title: "2.1"},
			{Title: "2.2"},
		}},
	}
	files := Uploads{
		VideoKey(1, 1): {Filename: "deep-dive.mp4", Content: strings.NewReader("video-bytes")},
	}

	synced, err := svc.SyncModules(db, crs.ID, incoming, files)
	require.NoError(t, err)

	var lessons []course.Lesson
	require.NoError(t, db.Where("module_id = ?", synced[1].ID).Order("order_index asc").Find(&lessons).Error)
	require.Len(t, lessons, 2)

	assert.Empty(t, lessons[0].Video)
	assert.NotEmpty(t, lessons[1].Video)
	require.Len(t, store.saved, 1)
	assert.Equal(t, store.saved[0], lessons[1].Video)

	var first []course.Lesson
	require.NoError(t, db.Where("module_id = ?", synced[0].ID).Find(&first).Error)
	assert.Empty(t, first[0].Video)
}

func TestSyncModulesReplacesVideoRef(t *testing.T) {
	db := setupTestDB(t)
	trainer := createUser(t, db, "trainer1", models.RoleTrainer)
	category := createCategory(t, db, "Programming")
	crs := createCourse(t, db, trainer.ID, category.ID, "Go Basics")

	mod := createModule(t, db, crs.ID, "A", 0)
	lesson := createLesson(t, db, mod.ID, "A1", 0)
	lesson.Video = "old-ref.mp4"
	require.NoError(t, db.Save(lesson).Error)

	store := &fakeStore{}
	svc := NewContentService(store)

	files := Uploads{
		VideoKey(0, 0): {Filename: "new.mp4", Content: strings.NewReader("new-bytes")},
	}
	_, err := svc.SyncModules(db, crs.ID, []ModuleInput{
		{ID: uintPtr(mod.ID), Title: "A", Lessons: []LessonInput{
			{ID: uintPtr(lesson.ID), Title: "A1", Duration: "10m"},
		}},
	}, files)
	require.NoError(t, err)

	var updated course.Lesson
	require.NoError(t, db.First(&updated, lesson.ID).Error)
	assert.NotEqual(t, "old-ref.mp4", updated.Video)
	require.Len(t, store.saved, 1)
	assert.Equal(t, store.saved[0], updated.Video)
}

func TestSyncModulesUploadFailureAborts(t *testing.T) {
	db := setupTestDB(t)
	trainer := createUser(t, db, "trainer1", models.RoleTrainer)
	category := createCategory(t, db, "Programming")
	crs := createCourse(t, db, trainer.ID, category.ID, "Go Basics")

	svc := NewContentService(&fakeStore{fail: true})

	tx := db.Begin()
	require.NoError(t, tx.Error)

	_, err := svc.SyncModules(tx, crs.ID, []ModuleInput{
		{Title: "M", Lessons: []LessonInput{{Title: "L"}}},
	}, Uploads{
		VideoKey(0, 0): {Filename: "v.mp4", Content: strings.NewReader("x")},
	})
	require.Error(t, err)
	tx.Rollback()

	var count int64
	db.Model(&course.Module{}).Where("course_id = ?", crs.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestReplaceQuizRegeneratesQuestions(t *testing.T) {
	db := setupTestDB(t)
	trainer := createUser(t, db, "trainer1", models.RoleTrainer)
	category := createCategory(t, db, "Programming")
	crs := createCourse(t, db, trainer.ID, category.ID, "Go Basics")

	createQuiz(t, db, crs.ID, 2)

	var before []uint
	require.NoError(t, db.Model(&course.Question{}).Where("course_id = ?", crs.ID).Pluck("id", &before).Error)

	svc := NewContentService(&fakeStore{})

	quiz := &QuizInput{Questions: []QuestionInput{
		{Question: "What is a goroutine?", Answers: []AnswerInput{
			{Answer: "A lightweight thread", Correct: true},
			{Answer: "A package", Correct: false},
		}},
	}}
	require.NoError(t, svc.ReplaceQuiz(db, crs.ID, quiz))

	var after []course.Question
	require.NoError(t, db.Where("course_id = ?", crs.ID).Find(&after).Error)
	require.Len(t, after, 1)
	for _, old := range before {
		assert.NotEqual(t, old, after[0].ID)
	}

	var answers []course.Answer
	require.NoError(t, db.Where("question_id = ?", after[0].ID).Find(&answers).Error)
	assert.Len(t, answers, 2)
}

func TestReplaceQuizNilDeletesAll(t *testing.T) {
	db := setupTestDB(t)
	trainer := createUser(t, db, "trainer1", models.RoleTrainer)
	category := createCategory(t, db, "Programming")
	crs := createCourse(t, db, trainer.ID, category.ID, "Go Basics")

	createQuiz(t, db, crs.ID, 3)

	svc := NewContentService(&fakeStore{})
	require.NoError(t, svc.ReplaceQuiz(db, crs.ID, nil))

	var questions, answers int64
	db.Model(&course.Question{}).Where("course_id = ?", crs.ID).Count(&questions)
	db.Model(&course.Answer{}).Count(&answers)
	assert.Equal(t, int64(0), questions)
	assert.Equal(t, int64(0), answers)
}

func TestReplaceQuizRequiresCorrectAnswer(t *testing.T) {
	db := setupTestDB(t)
	trainer := createUser(t, db, "trainer1", models.RoleTrainer)
	category := createCategory(t, db, "Programming")
	crs := createCourse(t, db, trainer.ID, category.ID, "Go Basics")

	svc := NewContentService(&fakeStore{})

	quiz := &QuizInput{Questions: []QuestionInput{
		{Question: "Unanswerable", Answers: []AnswerInput{
			{Answer: "Nope", Correct: false},
			{Answer: "Also nope", Correct: false},
		}},
	}}
	err := svc.ReplaceQuiz(db, crs.ID, quiz)
	require.Error(t, err)
	assert.Equal(t, 400, HTTPStatus(err))
}

func TestUpdateCourseRejectsNonOwner(t *testing.T) {
	db := setupTestDB(t)
	owner := createUser(t, db, "owner", models.RoleTrainer)
	other := createUser(t, db, "other", models.RoleTrainer)
	category := createCategory(t, db, "Programming")
	crs := createCourse(t, db, owner.ID, category.ID, "Go Basics")

	svc := NewContentService(&fakeStore{})

	in := CourseInput{
		Title:      "Hijacked",
		Level:      course.LevelBeginner,
		Duration:   "1 week",
		CategoryID: category.ID,
	}
	_, _, err := svc.UpdateCourse(db, crs.ID, other.ID, in, nil, nil, nil)
	require.Error(t, err)
	assert.Equal(t, 403, HTTPStatus(err))
}

func TestCreateCourseBuildsEverything(t *testing.T) {
	db := setupTestDB(t)
	trainer := createUser(t, db, "trainer1", models.RoleTrainer)
	category := createCategory(t, db, "Programming")

	store := &fakeStore{}
	svc := NewContentService(store)

	in := CourseInput{
		Title:       "Go From Zero",
		Description: "Everything about Go",
		Level:       course.LevelIntermediate,
		Duration:    "6 weeks",
		CategoryID:  category.ID,
	}
	modules := []ModuleInput{
		{Title: "Basics", Lessons: []LessonInput{{Title: "Hello", Duration: "5m"}}},
	}
	quiz := &QuizInput{Questions: []QuestionInput{
		{Question: "Q1", Answers: []AnswerInput{
			{Answer: "Right", Correct: true},
			{Answer: "Wrong", Correct: false},
		}},
	}}
	files := Uploads{
		"cover_image": {Filename: "cover.png", Content: strings.NewReader("png")},
	}

	created, synced, err := svc.CreateCourse(db, trainer.ID, in, modules, quiz, files)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEmpty(t, created.CoverImage)
	require.Len(t, synced, 1)

	var questions int64
	db.Model(&course.Question{}).Where("course_id = ?", created.ID).Count(&questions)
	assert.Equal(t, int64(1), questions)
}
