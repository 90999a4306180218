package logic

import "github.com/Bumblebig/UniSupport/models"

// CategoryAll is the sentinel tag that selects the whole catalogue
const CategoryAll = "all"

var categories = []models.Category{
	{ID: CategoryAll, Name: "All Topics"},
	{ID: "portal", Name: "Student Portal"},
	{ID: "registration", Name: "Registration"},
	{ID: "fees", Name: "School Fees"},
	{ID: "technical", Name: "Technical Issues"},
}

var quickActions = []models.QuickAction{
	{Category: "portal", Text: "I can't log into my student portal"},
	{Category: "portal", Text: "I forgot my portal password"},
	{Category: "registration", Text: "How do I register for courses?"},
	{Category: "registration", Text: "Course registration is not working"},
	{Category: "fees", Text: "I can't pay my school fees online"},
	{Category: "fees", Text: "Where can I download my payment receipt?"},
	{Category: "technical", Text: "The university website is not loading"},
	{Category: "technical", Text: "I'm having network connectivity issues"},
}

// Categories returns the category tabs in display order
func Categories() []models.Category {
	out := make([]models.Category, len(categories))
	copy(out, categories)
	return out
}

// FilterQuickActions returns the catalogue entries matching category, in
// catalogue order. The "all" sentinel selects everything.
func FilterQuickActions(category string) []models.QuickAction {
	if category == CategoryAll {
		out := make([]models.QuickAction, len(quickActions))
		copy(out, quickActions)
		return out
	}

	var out []models.QuickAction
	for _, qa := range quickActions {
		if qa.Category == category {
			out = append(out, qa)
		}
	}
	return out
}
