package utils

import (
	"context"
	"log"
	"time"

	"learncraft/database"
	"learncraft/models"

	"github.com/robfig/cron/v3"
)

// InitializeReminderScheduler sets up the daily inactivity reminder job
func InitializeReminderScheduler() {
	log.Println("[REMINDER-SCHEDULER] Initializing reminder scheduler...")

	c := cron.New()

	// Run daily at 9 AM to nudge inactive students
	c.AddFunc("0 9 * * *", func() {
		log.Println("[REMINDER-SCHEDULER] Running daily inactivity check...")
		ProcessInactiveStudents()
	})

	c.Start()
	log.Println("[REMINDER-SCHEDULER] Reminder scheduler started - runs daily at 9 AM")
}

// ProcessInactiveStudents emails students whose most recent progress update
// is more than a week old and who still have unfinished lectures.
func ProcessInactiveStudents() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -7)

	var studentIDs []uint
	err := db.Model(&models.StudentProgress{}).
		Select("student_id").
		Group("student_id").
		Having("MAX(updated_at) < ?", cutoff).
		Pluck("student_id", &studentIDs).Error
	if err != nil {
		log.Printf("[REMINDER-SCHEDULER] Error fetching inactive students: %v", err)
		return
	}

	log.Printf("[REMINDER-SCHEDULER] Found %d inactive students", len(studentIDs))

	for _, studentID := range studentIDs {
		var student models.User
		if err := db.Where("id = ? AND is_deleted = ?", studentID, false).First(&student).Error; err != nil {
			log.Printf("[REMINDER-SCHEDULER] Error fetching user %d: %v", studentID, err)
			continue
		}

		views, err := database.Views.BuildProgressView(context.Background(), studentID)
		if err != nil {
			log.Printf("[REMINDER-SCHEDULER] Error building progress view for user %d: %v", studentID, err)
			continue
		}

		hasUnfinished := false
		for _, view := range views {
			if view.TotalCount > 0 && view.CompletedCount < view.TotalCount {
				hasUnfinished = true
				break
			}
		}
		if !hasUnfinished {
			continue
		}

		if err := SendInactivityReminderEmail(student.Email, student.FirstName); err != nil {
			log.Printf("[REMINDER-SCHEDULER] Error sending reminder to %s: %v", student.Email, err)
			continue
		}
		log.Printf("[REMINDER-SCHEDULER] Reminder sent to %s", student.Email)
	}
}
