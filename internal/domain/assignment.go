package domain

import "time"

// Display formats match what the admin UI expects: end dates round-trip at
// minute precision, audit timestamps at second precision.
const (
	EndDateFormat   = "2006-01-02T15:04"
	TimestampFormat = "2006-01-02 15:04:05"
)

// Assignment is the uniform row shape shared by the quizzes, activities and
// worksheets tables. The table is chosen by the repository, not the model.
type Assignment struct {
	ID         int        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name       string     `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Grade      string     `gorm:"column:grade;type:varchar(50);not null" json:"grade"`
	EndDate    *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	UploadLink string     `gorm:"column:upload_link;not null" json:"upload_link"`
	Professor  *string    `gorm:"column:professor;type:varchar(255)" json:"professor,omitempty"`
	CreatedAt  time.Time  `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt  *time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at,omitempty"`
}

func (a Assignment) FormatEndDate() string {
	if a.EndDate == nil {
		return ""
	}
	return a.EndDate.Format(EndDateFormat)
}

func (a Assignment) FormatCreatedAt() string {
	return a.CreatedAt.Format(TimestampFormat)
}

func (a Assignment) FormatUpdatedAt() string {
	if a.UpdatedAt == nil {
		return ""
	}
	return a.UpdatedAt.Format(TimestampFormat)
}
