package models

// QuickAction is a suggested prompt shown on the welcome panel
type QuickAction struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Category tags a group of quick actions
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
