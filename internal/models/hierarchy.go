package models

// Goal is a long-term ambition. It owns an ordered list of groups.
type Goal struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	GroupIDs []string `json:"group_ids" yaml:"group_ids"`
}

// Group is a named bucket of related tasks under one goal.
// GoalID is a non-owning reference to the parent.
type Group struct {
	ID      string   `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	GoalID  string   `json:"goal_id" yaml:"goal_id"`
	TaskIDs []string `json:"task_ids" yaml:"task_ids"`
}
