package models

// PracticeState is the transient answering state of one question on the
// dashboard/folder/questions screens: a tentative selection, struck-through
// options, and whether the answer has been confirmed. Kept per (user,
// question) in Redis with a short TTL; never persisted.
//
// For true/false questions the options are the literals "true" and "false".
type PracticeState struct {
	QuestionID string   `json:"question_id"`
	Selected   *string  `json:"selected"`
	Eliminated []string `json:"eliminated"`
	Confirmed  bool     `json:"confirmed"`
	Correct    *bool    `json:"correct"`
}

type PracticeSelectRequest struct {
	Answer string `json:"answer"`
}

type PracticeEliminateRequest struct {
	Option string `json:"option"`
}
