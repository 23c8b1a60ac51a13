package model

import "time"

type Category string
type Priority string

const (
	CategoryWork      Category = "work"
	CategoryPersonal  Category = "personal"
	CategoryShopping  Category = "shopping"
	CategoryHealth    Category = "health"
	CategoryEducation Category = "education"
	CategoryOther     Category = "other"

	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Categories lists every accepted category in display order.
var Categories = []Category{
	CategoryWork,
	CategoryPersonal,
	CategoryShopping,
	CategoryHealth,
	CategoryEducation,
	CategoryOther,
}

// Priorities lists every accepted priority from lowest to highest.
var Priorities = []Priority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (p Priority) Valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

// Todo is the stored document. CompletedAt stays absent from the document
// until the first completion so the store can set it with $ifNull.
type Todo struct {
	TodoID      string     `bson:"_id,omitempty" json:"id"`
	UserID      string     `bson:"user_id" json:"user"`
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description" json:"description"`
	Category    Category   `bson:"category" json:"category"`
	Priority    Priority   `bson:"priority" json:"priority"`
	Completed   bool       `bson:"completed" json:"completed"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt"`
	DueDate     *time.Time `bson:"dueDate,omitempty" json:"dueDate"`
	TimeSpent   int        `bson:"timeSpent" json:"timeSpent"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// TodoInput is the create payload before validation. Category and priority
// are nil when the key was left out of the body.
type TodoInput struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Category    *string `json:"category" validate:"omitnil,todo_category"`
	Priority    *string `json:"priority" validate:"omitnil,todo_priority"`
	DueDate     string  `json:"dueDate" validate:"omitempty,duedate"`
}

// TodoPatch carries a partial update. A field that was absent from the
// request body has Set == false and must not be touched.
type TodoPatch struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	Category    Optional[string] `json:"category"`
	Priority    Optional[string] `json:"priority"`
	Completed   Optional[bool]   `json:"completed"`
	DueDate     Optional[string] `json:"dueDate"`
	TimeSpent   Optional[int]    `json:"timeSpent"`
}

// TodoChanges is a validated TodoPatch, ready for the store. Nil pointers
// mean "leave as is"; ClearDueDate removes the due date.
type TodoChanges struct {
	Title        *string
	Description  *string
	Category     *Category
	Priority     *Priority
	Completed    *bool
	DueDate      *time.Time
	ClearDueDate bool
	TimeSpent    *int
}

// TodoFilter scopes a list query. UserID is always required.
type TodoFilter struct {
	UserID    string
	Category  *Category
	Priority  *Priority
	Completed *bool
}

// Page is a 1-based page request.
type Page struct {
	Number int
	Limit  int
}

func (p Page) Skip() int64 {
	return int64(p.Number-1) * int64(p.Limit)
}

type TodoList struct {
	Todos       []*Todo
	Total       int64
	TotalPages  int
	CurrentPage int
}
