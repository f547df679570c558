package models

// SportSummary describes the state of one sport's matches.
type SportSummary struct {
	Name            string `json:"name"`
	Matches         int    `json:"matches"`
	Finished        int    `json:"finished"`
	BracketComplete bool   `json:"bracket_complete"`
}
