package services

import (
	"errors"

	"lms/models"
	course "lms/models/course"
	"lms/storage"

	"gorm.io/gorm"
)

// ContentService owns the trainer-facing course content flow: creating and
// updating the course entity, reconciling the module/lesson tree against a
// submitted description, and wholesale-replacing the course quiz. All mutations
// run on the caller's transaction; any error aborts the whole pass.
type ContentService struct {
	Store storage.FileStore
}

func NewContentService(store storage.FileStore) *ContentService {
	return &ContentService{Store: store}
}

// CreateCourse creates a course with its full module/lesson tree and quiz in
// one transaction. Videos and the cover image arrive as multipart payloads
// keyed by field name.
func (s *ContentService) CreateCourse(tx *gorm.DB, trainerID uint, in CourseInput, modules []ModuleInput, quiz *QuizInput, files Uploads) (*course.Course, []course.Module, error) {
	var trainer models.User
	if err := tx.Where("id = ? AND is_deleted = ?", trainerID, false).First(&trainer).Error; err != nil {
		return nil, nil, NewNotFound("User", "id", trainerID)
	}

	var category models.Category
	if err := tx.Where("id = ? AND is_deleted = ?", in.CategoryID, false).First(&category).Error; err != nil {
		return nil, nil, NewNotFound("Category", "id", in.CategoryID)
	}

	if !course.ValidLevel(in.Level) {
		return nil, nil, NewBadRequest("invalid course level: %s", in.Level)
	}

	c := course.Course{
		Title:       in.Title,
		Description: in.Description,
		Level:       in.Level,
		Duration:    in.Duration,
		CategoryID:  in.CategoryID,
		TrainerID:   trainerID,
	}

	if cover, ok := files["cover_image"]; ok {
		ref, err := s.Store.Save(cover.Filename, cover.Content)
		if err != nil {
			return nil, nil, NewBadRequest("failed to upload cover image: %v", err)
		}
		c.CoverImage = ref
	}

	if err := tx.Create(&c).Error; err != nil {
		return nil, nil, err
	}

	synced, err := s.SyncModules(tx, c.ID, modules, files)
	if err != nil {
		return nil, nil, err
	}

	if err := s.ReplaceQuiz(tx, c.ID, quiz); err != nil {
		return nil, nil, err
	}

	return &c, synced, nil
}

// UpdateCourse updates the course fields and reconciles its content tree and
// quiz against the submitted description. Only the owning trainer may call it.
func (s *ContentService) UpdateCourse(tx *gorm.DB, courseID, trainerID uint, in CourseInput, modules []ModuleInput, quiz *QuizInput, files Uploads) (*course.Course, []course.Module, error) {
	var c course.Course
	if err := tx.Where("id = ? AND is_deleted = ?", courseID, false).First(&c).Error; err != nil {
		return nil, nil, NewNotFound("Course", "id", courseID)
	}

	if c.TrainerID != trainerID {
		return nil, nil, NewForbidden("you are not authorized to modify this course")
	}

	var category models.Category
	if err := tx.Where("id = ? AND is_deleted = ?", in.CategoryID, false).First(&category).Error; err != nil {
		return nil, nil, NewNotFound("Category", "id", in.CategoryID)
	}

	if !course.ValidLevel(in.Level) {
		return nil, nil, NewBadRequest("invalid course level: %s", in.Level)
	}

	c.Title = in.Title
	c.Description = in.Description
	c.Level = in.Level
	c.Duration = in.Duration
	c.CategoryID = in.CategoryID

	// A new cover image replaces the reference; the old file is left for the
	// asset sweeper.
	if cover, ok := files["cover_image"]; ok {
		ref, err := s.Store.Save(cover.Filename, cover.Content)
		if err != nil {
			return nil, nil, NewBadRequest("failed to upload cover image: %v", err)
		}
		c.CoverImage = ref
	}

	if err := tx.Save(&c).Error; err != nil {
		return nil, nil, err
	}

	synced, err := s.SyncModules(tx, c.ID, modules, files)
	if err != nil {
		return nil, nil, err
	}

	// An absent quiz on update means "delete the quiz", not "leave it alone".
	if err := s.ReplaceQuiz(tx, c.ID, quiz); err != nil {
		return nil, nil, err
	}

	return &c, synced, nil
}

// SyncModules brings the persisted module/lesson tree of a course in line with
// the submitted description. Submitted nodes carrying an id update the matching
// persisted node; nodes without an id are created; persisted nodes absent from
// the submission are deleted together with their lessons and completion rows.
// Video payloads are bound to lessons by the positional video_<m>_<l> field
// name, independent of any database id.
func (s *ContentService) SyncModules(tx *gorm.DB, courseID uint, incoming []ModuleInput, files Uploads) ([]course.Module, error) {
	var existing []course.Module
	if err := tx.Where("course_id = ?", courseID).Order("order_index asc").Find(&existing).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]*course.Module, len(existing))
	for i := range existing {
		byID[existing[i].ID] = &existing[i]
	}

	retained := make(map[uint]bool, len(incoming))
	synced := make([]course.Module, 0, len(incoming))

	for mi, in := range incoming {
		if in.ID != nil {
			if retained[*in.ID] {
				return nil, NewBadRequest("module %d submitted more than once", *in.ID)
			}
			mod, ok := byID[*in.ID]
			if !ok {
				// The id either belongs to another course or does not exist;
				// both abort the pass.
				return nil, NewNotFound("Module", "id", *in.ID)
			}

			mod.Title = in.Title
			mod.OrderIndex = mi
			if err := tx.Save(mod).Error; err != nil {
				return nil, err
			}

			if err := s.syncLessons(tx, mod, in.Lessons, files, mi); err != nil {
				return nil, err
			}

			retained[mod.ID] = true
			synced = append(synced, *mod)
			continue
		}

		mod := course.Module{
			CourseID:   courseID,
			Title:      in.Title,
			OrderIndex: mi,
		}
		if err := tx.Create(&mod).Error; err != nil {
			return nil, err
		}

		// New module: lessons reconcile against an empty existing set, which
		// degenerates to plain creation.
		if err := s.syncLessons(tx, &mod, in.Lessons, files, mi); err != nil {
			return nil, err
		}

		retained[mod.ID] = true
		synced = append(synced, mod)
	}

	// Orphan elimination: every persisted module absent from the submission
	// goes away, cascading its lessons.
	for i := range existing {
		if retained[existing[i].ID] {
			continue
		}
		if err := deleteModuleTree(tx, existing[i].ID); err != nil {
			return nil, err
		}
	}

	return synced, nil
}

func (s *ContentService) syncLessons(tx *gorm.DB, mod *course.Module, incoming []LessonInput, files Uploads, moduleIndex int) error {
	var existing []course.Lesson
	if err := tx.Where("module_id = ?", mod.ID).Order("order_index asc").Find(&existing).Error; err != nil {
		return err
	}

	byID := make(map[uint]*course.Lesson, len(existing))
	for i := range existing {
		byID[existing[i].ID] = &existing[i]
	}

	retained := make(map[uint]bool, len(incoming))

	for li, in := range incoming {
		if in.ID != nil {
			if retained[*in.ID] {
				return NewBadRequest("lesson %d submitted more than once", *in.ID)
			}
			lesson, ok := byID[*in.ID]
			if !ok {
				// Existing lesson ids are only valid under the module they were
				// addressed through; reusing an id across modules is rejected.
				return NewNotFound("Lesson", "id", *in.ID)
			}

			lesson.Title = in.Title
			lesson.Duration = in.Duration
			lesson.OrderIndex = li

			// A freshly uploaded video replaces the reference in place; the
			// previous asset file stays on disk for the sweeper.
			if vid, ok := files[VideoKey(moduleIndex, li)]; ok {
				ref, err := s.Store.Save(vid.Filename, vid.Content)
				if err != nil {
					return err
				}
				lesson.Video = ref
			}

			if err := tx.Save(lesson).Error; err != nil {
				return err
			}
			retained[lesson.ID] = true
			continue
		}

		lesson := course.Lesson{
			ModuleID:   mod.ID,
			Title:      in.Title,
			Duration:   in.Duration,
			OrderIndex: li,
		}
		if vid, ok := files[VideoKey(moduleIndex, li)]; ok {
			ref, err := s.Store.Save(vid.Filename, vid.Content)
			if err != nil {
				return err
			}
			lesson.Video = ref
		}
		if err := tx.Create(&lesson).Error; err != nil {
			return err
		}
		retained[lesson.ID] = true
	}

	var drop []uint
	for i := range existing {
		if !retained[existing[i].ID] {
			drop = append(drop, existing[i].ID)
		}
	}
	return deleteLessons(tx, drop)
}

// ReplaceQuiz deletes every question (and answer) owned by the course and
// recreates the submitted set from scratch. Question ids are not stable across
// edits; that is the accepted trade-off. A nil quiz empties the course's quiz.
func (s *ContentService) ReplaceQuiz(tx *gorm.DB, courseID uint, quiz *QuizInput) error {
	var questionIDs []uint
	if err := tx.Model(&course.Question{}).Where("course_id = ?", courseID).Pluck("id", &questionIDs).Error; err != nil {
		return err
	}
	if len(questionIDs) > 0 {
		if err := tx.Unscoped().Where("question_id IN ?", questionIDs).Delete(&course.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("id IN ?", questionIDs).Delete(&course.Question{}).Error; err != nil {
			return err
		}
	}

	if quiz == nil {
		return nil
	}

	for _, q := range quiz.Questions {
		hasCorrect := false
		for _, a := range q.Answers {
			if a.Correct {
				hasCorrect = true
				break
			}
		}
		// Guard at authoring time so grading never meets a question without an
		// answer key.
		if !hasCorrect {
			return NewBadRequest("question %q has no correct answer", q.Question)
		}

		question := course.Question{
			CourseID: courseID,
			Question: q.Question,
		}
		if err := tx.Create(&question).Error; err != nil {
			return err
		}

		for _, a := range q.Answers {
			answer := course.Answer{
				QuestionID: question.ID,
				Answer:     a.Answer,
				Correct:    a.Correct,
			}
			if err := tx.Create(&answer).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// DeleteCourse soft-deletes a course. Content rows stay in place; the course
// simply stops being visible.
func (s *ContentService) DeleteCourse(tx *gorm.DB, courseID, actingUserID uint, admin bool) error {
	var c course.Course
	if err := tx.Where("id = ? AND is_deleted = ?", courseID, false).First(&c).Error; err != nil {
		return NewNotFound("Course", "id", courseID)
	}
	if !admin && c.TrainerID != actingUserID {
		return NewForbidden("you are not authorized to delete this course")
	}
	c.IsDeleted = true
	return tx.Save(&c).Error
}

// deleteModuleTree removes a module, its lessons and their completion rows.
func deleteModuleTree(tx *gorm.DB, moduleID uint) error {
	var lessonIDs []uint
	if err := tx.Model(&course.Lesson{}).Where("module_id = ?", moduleID).Pluck("id", &lessonIDs).Error; err != nil {
		return err
	}
	if err := deleteLessons(tx, lessonIDs); err != nil {
		return err
	}
	return tx.Unscoped().Delete(&course.Module{}, moduleID).Error
}

// deleteLessons removes lessons and the completion events pointing at them.
func deleteLessons(tx *gorm.DB, lessonIDs []uint) error {
	if len(lessonIDs) == 0 {
		return nil
	}
	if err := tx.Unscoped().Where("lesson_id IN ?", lessonIDs).Delete(&course.CompletedLesson{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Where("id IN ?", lessonIDs).Delete(&course.Lesson{}).Error
}

// ValidateCourseOwnership rejects trainers touching courses they do not own.
func ValidateCourseOwnership(db *gorm.DB, courseID, trainerID uint) error {
	var c course.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&c).Error; err != nil {
		return NewNotFound("Course", "id", courseID)
	}
	if c.TrainerID != trainerID {
		return NewForbidden("you are not authorized to modify this course")
	}
	return nil
}

// GetCourse loads a visible (not soft-deleted) course.
func GetCourse(db *gorm.DB, courseID uint) (*course.Course, error) {
	var c course.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("Course", "id", courseID)
		}
		return nil, err
	}
	return &c, nil
}
