package main

import (
	"encoding/csv"
	"learncraft/config"
	"learncraft/database"
	"learncraft/models"
	"log"
	"os"
	"strconv"
	"strings"
)

func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	// Open CSV file
	file, err := os.Open("CourseCatalog.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Create CSV reader
	reader := csv.NewReader(file)

	// Read all records
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	// Skip header row
	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	// Map header indices
	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	courses := 0
	inserted := 0
	updated := 0
	skipped := 0

	// Course rows repeat the course columns for every lecture; cache ids
	// so a course is only upserted once per run.
	courseIDs := make(map[string]uint)

	for i, row := range records[1:] {
		if i%100 == 0 {
			log.Printf("Processing row %d...", i+1)
		}

		instructorEmail := getField(row, headerIndex, "instructorEmail")
		courseTitle := getField(row, headerIndex, "courseTitle")
		lectureTitle := getField(row, headerIndex, "lectureTitle")

		if instructorEmail == "" || courseTitle == "" || lectureTitle == "" {
			skipped++
			continue
		}

		var instructor models.User
		if err := database.Database.Db.Where("email = ? AND role = ? AND is_deleted = ?",
			instructorEmail, models.RoleInstructor, false).First(&instructor).Error; err != nil {
			log.Printf("Error: no instructor for %s, skipping row %d", instructorEmail, i+1)
			skipped++
			continue
		}

		courseKey := instructorEmail + "|" + courseTitle
		courseID, ok := courseIDs[courseKey]
		if !ok {
			var course models.Course
			result := database.Database.Db.Where("instructor_id = ? AND title = ? AND is_deleted = ?",
				instructor.ID, courseTitle, false).First(&course)

			if result.Error != nil {
				course = models.Course{
					Title:        courseTitle,
					Description:  getField(row, headerIndex, "courseDescription"),
					InstructorID: instructor.ID,
					IsDeleted:    false,
				}
				if err := database.Database.Db.Create(&course).Error; err != nil {
					log.Printf("Error inserting course %s: %v", courseTitle, err)
					skipped++
					continue
				}
				courses++
			}
			courseID = course.ID
			courseIDs[courseKey] = courseID
		}

		lectureType := models.LectureType(getField(row, headerIndex, "lectureType"))
		if lectureType == "text-document" {
			lectureType = models.LectureTypeReading
		}
		if !lectureType.Valid() {
			log.Printf("Error: unknown lecture type %q in row %d", lectureType, i+1)
			skipped++
			continue
		}

		lecture := models.Lecture{
			CourseID:   courseID,
			Title:      lectureTitle,
			Type:       lectureType,
			OrderIndex: parseInt(getField(row, headerIndex, "lectureOrder")),
			IsDeleted:  false,
		}
		if content := getField(row, headerIndex, "content"); content != "" && lectureType == models.LectureTypeReading {
			lecture.Content = &content
		}
		if description := getField(row, headerIndex, "description"); description != "" {
			lecture.Description = &description
		}

		// Check if lecture exists by course and title
		var existing models.Lecture
		result := database.Database.Db.Where("course_id = ? AND title = ? AND is_deleted = ?",
			courseID, lectureTitle, false).First(&existing)

		if result.Error != nil {
			if err := database.Database.Db.Create(&lecture).Error; err != nil {
				log.Printf("Error inserting lecture %s: %v", lectureTitle, err)
				continue
			}
			inserted++
		} else {
			existing.OrderIndex = lecture.OrderIndex
			existing.Content = lecture.Content
			existing.Description = lecture.Description

			if err := database.Database.Db.Save(&existing).Error; err != nil {
				log.Printf("Error updating lecture %s: %v", lectureTitle, err)
				continue
			}
			updated++
		}
	}

	log.Printf("=== Import Complete ===")
	log.Printf("Courses created: %d", courses)
	log.Printf("Lectures inserted: %d", inserted)
	log.Printf("Lectures updated: %d", updated)
	log.Printf("Skipped: %d", skipped)
}

// getField safely gets a field from the row by header name
func getField(row []string, headerIndex map[string]int, field string) string {
	if idx, ok := headerIndex[field]; ok && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

// parseInt converts string to int
func parseInt(s string) int {
	if s == "" {
		return 0
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return val
}
