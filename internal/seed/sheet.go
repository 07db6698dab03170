// Package seed rebuilds the question hierarchy from a static sheet
// document: a flat question list regrouped into topics and sub-topics.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
)

// Sheet is the source-of-truth document: {data: {questions: [...]}}.
type Sheet struct {
	Data SheetData `json:"data"`
}

// SheetData wraps the flat question list.
type SheetData struct {
	Questions []SheetQuestion `json:"questions"`
}

// SheetQuestion is one flat entry. Topic and SubTopic are free-form labels;
// grouping happens at seed time, not in the sheet.
type SheetQuestion struct {
	Topic      string    `json:"topic"`
	SubTopic   string    `json:"subTopic"`
	Title      string    `json:"title"`
	Resource   string    `json:"resource"`
	QuestionID SheetMeta `json:"questionId"`
}

// SheetMeta is the nested classification block of a sheet entry.
type SheetMeta struct {
	Name        string   `json:"name"`
	Difficulty  string   `json:"difficulty"`
	ProblemURL  string   `json:"problemUrl"`
	Platform    string   `json:"platform"`
	CompanyTags []string `json:"companyTags"`
}

// LoadSheet reads and parses a sheet document from disk.
func LoadSheet(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	return ParseSheet(data)
}

// ParseSheet parses a sheet document from raw JSON.
func ParseSheet(data []byte) (*Sheet, error) {
	var sheet Sheet
	if err := json.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("parse sheet: %w", err)
	}
	return &sheet, nil
}
