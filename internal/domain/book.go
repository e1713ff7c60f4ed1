package domain

import "time"

type Book struct {
	ID              int        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title           string     `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description     *string    `gorm:"column:description;type:text" json:"description,omitempty"`
	Grade           string     `gorm:"column:grade;type:varchar(50);not null" json:"grade"`
	PDFFilename     string     `gorm:"column:pdf_filename;type:varchar(255);not null" json:"pdf_filename"`
	PictureFilename *string    `gorm:"column:picture_filename;type:varchar(255)" json:"picture_filename,omitempty"`
	FileSize        int64      `gorm:"column:file_size" json:"file_size"`
	CreatedAt       time.Time  `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt       *time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at,omitempty"`
}

func (Book) TableName() string { return "library" }

func (b Book) FormatCreatedAt() string {
	return b.CreatedAt.Format(TimestampFormat)
}

func (b Book) FormatUpdatedAt() string {
	if b.UpdatedAt == nil {
		return ""
	}
	return b.UpdatedAt.Format(TimestampFormat)
}
