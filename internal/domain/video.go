package domain

import "time"

type Video struct {
	ID          int        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title       string     `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description *string    `gorm:"column:description;type:text" json:"description,omitempty"`
	Grade       string     `gorm:"column:grade;type:varchar(50);not null" json:"grade"`
	Filename    string     `gorm:"column:filename;type:varchar(255);not null" json:"filename"`
	FileSize    int64      `gorm:"column:file_size" json:"file_size"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt   *time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at,omitempty"`
}

func (Video) TableName() string { return "videos" }

func (v Video) FormatCreatedAt() string {
	return v.CreatedAt.Format(TimestampFormat)
}

func (v Video) FormatUpdatedAt() string {
	if v.UpdatedAt == nil {
		return ""
	}
	return v.UpdatedAt.Format(TimestampFormat)
}
