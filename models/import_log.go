package models

import (
	"time"

	"gorm.io/datatypes"
)

// ImportLog records the outcome of one CSV upload.
type ImportLog struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	FileName string `gorm:"size:255" json:"fileName"`

	TotalProcessed int  `json:"totalProcessed"`
	SuccessCount   int  `json:"successCount"`
	ErrorCount     int  `json:"errorCount"`
	InsertedCount  int  `json:"insertedCount"`
	Success        bool `json:"success"`

	// capped diagnostic messages, same list the upload response returned
	Errors datatypes.JSON `json:"errors"`

	CreatedAt time.Time `json:"createdAt"`
}
