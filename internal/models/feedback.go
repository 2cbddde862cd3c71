package models

type FlagQuestionRequest struct {
	QuestionID string `json:"question_id"`
	QuizID     string `json:"quiz_id"`
	FlagType   string `json:"flag_type"`
	Feedback   string `json:"feedback,omitempty"`
}

// ValidFlagTypes are the accepted reasons for flagging a question.
var ValidFlagTypes = map[string]bool{
	"wrong_answer": true,
	"unclear":      true,
	"typo":         true,
	"other":        true,
}

type FeedbackRequest struct {
	Category   string  `json:"category"`
	Message    string  `json:"message"`
	Rating     *int    `json:"rating,omitempty"`
	Screenshot *string `json:"screenshot,omitempty"`
}

var ValidFeedbackCategories = map[string]bool{
	"bug":     true,
	"feature": true,
	"content": true,
	"other":   true,
}

// PrivacySettings defaults to collection+analytics on, sharing+ads off.
type PrivacySettings struct {
	DataCollection  bool `json:"data_collection"`
	DataSharing     bool `json:"data_sharing"`
	PersonalizedAds bool `json:"personalized_ads"`
	Analytics       bool `json:"analytics"`
}

func DefaultPrivacySettings() PrivacySettings {
	return PrivacySettings{
		DataCollection:  true,
		DataSharing:     false,
		PersonalizedAds: false,
		Analytics:       true,
	}
}

type DeletionResponse struct {
	Message      string `json:"message"`
	DeletionDate string `json:"deletion_date"`
}
