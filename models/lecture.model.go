package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LectureType is the closed set of lecture kinds. It is fixed at creation
// and never changes afterwards.
type LectureType string

const (
	LectureTypeReading LectureType = "reading"
	LectureTypeQuiz    LectureType = "quiz"
)

func (t LectureType) Valid() bool {
	return t == LectureTypeReading || t == LectureTypeQuiz
}

// Attachment describes one uploaded file attached to a lecture. The list is
// stored as a JSON column on the lecture row.
type Attachment struct {
	FileName     string `json:"file_name"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
}

// Lecture is an ordered unit of course content, either a reading document
// or a quiz.
type Lecture struct {
	gorm.Model
	CourseID    uint           `json:"course_id" gorm:"index;not null"`
	Title       string         `json:"title"`
	Type        LectureType    `json:"type" gorm:"not null"`
	Content     *string        `json:"content" gorm:"type:text"` // reading lectures only
	Description *string        `json:"description" gorm:"type:text"`
	OrderIndex  int            `json:"order" gorm:"column:order_index;default:0"`
	Attachments datatypes.JSON `json:"attachments"` // []Attachment
	IsDeleted   bool           `gorm:"default:false"`
}

// AppendAttachment decodes the stored attachment list, appends one entry
// and re-encodes it.
func AppendAttachment(stored datatypes.JSON, attachment Attachment) (datatypes.JSON, error) {
	var attachments []Attachment
	if len(stored) > 0 {
		if err := json.Unmarshal(stored, &attachments); err != nil {
			return nil, err
		}
	}
	attachments = append(attachments, attachment)
	raw, err := json.Marshal(attachments)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
