package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizQuestion belongs to exactly one quiz lecture. Options is a JSON array
// of strings (at least 2); CorrectAnswer is a zero-based index into it,
// validated at write time.
type QuizQuestion struct {
	gorm.Model
	LectureID     uint           `json:"lecture_id" gorm:"index;not null"`
	QuestionText  string         `json:"question_text" gorm:"type:text;not null"`
	Options       datatypes.JSON `json:"options" gorm:"not null"` // []string
	CorrectAnswer int            `json:"correct_answer" gorm:"not null"`
	IsDeleted     bool           `gorm:"default:false"`
}

// OptionList decodes the stored options column.
func (q *QuizQuestion) OptionList() []string {
	var options []string
	if err := json.Unmarshal(q.Options, &options); err != nil {
		return nil
	}
	return options
}

// EncodeOptions serializes an option list for storage.
func EncodeOptions(options []string) (datatypes.JSON, error) {
	raw, err := json.Marshal(options)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
