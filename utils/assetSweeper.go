package utils

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"lms/config"
	"lms/database"
	course "lms/models/course"

	"github.com/robfig/cron/v3"
)

// sweepGracePeriod keeps freshly uploaded files safe while the transaction
// that references them is still in flight.
const sweepGracePeriod = 24 * time.Hour

func logSweeper(message string) {
	log.Printf("[ASSET-SWEEPER %s] %s", time.Now().Format(time.RFC3339), message)
}

// referencedAssets collects every upload reference still pointed at by a
// course cover or a lesson video.
func referencedAssets() (map[string]bool, error) {
	db := database.Database.Db

	refs := map[string]bool{}

	var covers []string
	if err := db.Model(&course.Course{}).Where("cover_image <> ''").Pluck("cover_image", &covers).Error; err != nil {
		return nil, err
	}
	for _, r := range covers {
		refs[r] = true
	}

	var videos []string
	if err := db.Model(&course.Lesson{}).Where("video <> ''").Pluck("video", &videos).Error; err != nil {
		return nil, err
	}
	for _, r := range videos {
		refs[r] = true
	}

	return refs, nil
}

// SweepOrphanAssets deletes upload files that no course or lesson references
// anymore. Replaced covers and videos leave their old file behind; this is
// the cleanup path.
func SweepOrphanAssets() {
	refs, err := referencedAssets()
	if err != nil {
		logSweeper("Error collecting referenced assets: " + err.Error())
		return
	}

	entries, err := os.ReadDir(config.AppConfig.UploadDir)
	if err != nil {
		logSweeper("Error reading upload dir: " + err.Error())
		return
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || refs[entry.Name()] {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) < sweepGracePeriod {
			continue
		}

		if err := os.Remove(filepath.Join(config.AppConfig.UploadDir, entry.Name())); err != nil {
			logSweeper("Error removing orphan asset " + entry.Name() + ": " + err.Error())
			continue
		}
		removed++
	}

	if removed > 0 {
		logSweeper("Removed " + strconv.Itoa(removed) + " orphan assets")
	}
}

// InitializeAssetSweeper schedules the hourly orphan sweep.
func InitializeAssetSweeper() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@hourly", SweepOrphanAssets); err != nil {
		logSweeper("Error scheduling sweep: " + err.Error())
		return c
	}

	c.Start()
	logSweeper("Asset sweeper started (hourly)")
	return c
}
