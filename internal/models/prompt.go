package models

import "time"

// Prompt represents a versioned prompt template.
//
// ID is the store-assigned order key: it breaks created_at ties so that
// listing order stays a total order, and it is the value a cursor token
// resolves to. PromptID is the public identifier, minted once at creation
// and never reassigned.
type Prompt struct {
	ID            uint       `gorm:"primarykey" json:"-"`
	PromptID      string     `gorm:"uniqueIndex;not null" json:"prompt_id"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	Variables     StringList `gorm:"type:text" json:"variables"`
	Example       JSON       `gorm:"type:text" json:"example"`
	Version       string     `gorm:"not null" json:"version"`
	ApplicableLLM string     `gorm:"column:applicable_llm;index;not null" json:"applicable_llm"`
	Tags          StringList `gorm:"type:text" json:"tags"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
