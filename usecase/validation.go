package usecase

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"prioritix/model"

	"github.com/go-playground/validator/v10"
)

const (
	msgTitleRequired    = "Title is required"
	msgInvalidCategory  = "Invalid category"
	msgInvalidPriority  = "Invalid priority"
	msgInvalidDueDate   = "Invalid due date"
	msgInvalidTimeSpent = "Time spent must be a non-negative integer"
	msgInvalidCompleted = "Completed must be a boolean"
	msgInvalidPage      = "Page must be a positive integer"
	msgPageOutOfRange   = "Page is out of range"
	msgInvalidLimit     = "Limit must be a positive integer"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json names so field errors match the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("todo_category", func(fl validator.FieldLevel) bool {
		return model.Category(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("todo_priority", func(fl validator.FieldLevel) bool {
		return model.Priority(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("duedate", func(fl validator.FieldLevel) bool {
		_, err := parseDueDate(fl.Field().String())
		return err == nil
	})
	return v
}

// parseDueDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates (UTC midnight).
func parseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "todo_category":
		return msgInvalidCategory
	case "todo_priority":
		return msgInvalidPriority
	case "duedate":
		return msgInvalidDueDate
	}
	switch fe.Field() {
	case "title":
		return msgTitleRequired
	case "timeSpent":
		return msgInvalidTimeSpent
	}
	return "Invalid value"
}

func collect(verr *model.ValidationError, field string, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			name := fe.Field()
			if name == "" {
				name = field
			}
			verr.Add(name, messageFor(fe), fe.Value())
		}
		return
	}
	if err != nil {
		verr.Add(field, "Invalid value", nil)
	}
}

// ValidateTodoInput checks a create payload and returns the todo to store,
// with trimmed text applied. A category or priority left out of the body gets
// the default; one sent blank is rejected. Every violated
// field is reported at once.
func ValidateTodoInput(in model.TodoInput) (*model.Todo, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = trimmed(in.Category)
	in.Priority = trimmed(in.Priority)
	in.DueDate = strings.TrimSpace(in.DueDate)

	verr := &model.ValidationError{}
	collect(verr, "", validate.Struct(in))
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	todo := &model.Todo{
		Title:       in.Title,
		Description: in.Description,
		Category:    model.CategoryOther,
		Priority:    model.PriorityMedium,
	}
	if in.Category != nil {
		todo.Category = model.Category(*in.Category)
	}
	if in.Priority != nil {
		todo.Priority = model.Priority(*in.Priority)
	}
	if in.DueDate != "" {
		due, _ := parseDueDate(in.DueDate)
		todo.DueDate = &due
	}
	return todo, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// ValidateTodoPatch turns a partial update into store changes. Absent fields
// are left out; dueDate null or "" clears the due date. Title, category,
// priority, completed and timeSpent cannot be null.
func ValidateTodoPatch(p model.TodoPatch) (*model.TodoChanges, error) {
	verr := &model.ValidationError{}
	changes := &model.TodoChanges{}

	if p.Title.Set {
		title := strings.TrimSpace(p.Title.Value)
		if p.Title.Null || validate.Var(title, "required") != nil {
			verr.Add("title", msgTitleRequired, nil)
		} else {
			changes.Title = &title
		}
	}

	if p.Description.Set {
		description := strings.TrimSpace(p.Description.Value)
		changes.Description = &description
	}

	if p.Category.Set {
		category := strings.TrimSpace(p.Category.Value)
		if p.Category.Null || validate.Var(category, "required,todo_category") != nil {
			verr.Add("category", msgInvalidCategory, nullableValue(p.Category))
		} else {
			c := model.Category(category)
			changes.Category = &c
		}
	}

	if p.Priority.Set {
		priority := strings.TrimSpace(p.Priority.Value)
		if p.Priority.Null || validate.Var(priority, "required,todo_priority") != nil {
			verr.Add("priority", msgInvalidPriority, nullableValue(p.Priority))
		} else {
			pr := model.Priority(priority)
			changes.Priority = &pr
		}
	}

	if p.Completed.Set {
		if p.Completed.Null {
			verr.Add("completed", msgInvalidCompleted, nil)
		} else {
			completed := p.Completed.Value
			changes.Completed = &completed
		}
	}

	if p.DueDate.Set {
		raw := strings.TrimSpace(p.DueDate.Value)
		switch {
		case p.DueDate.Null || raw == "":
			changes.ClearDueDate = true
		case validate.Var(raw, "duedate") != nil:
			verr.Add("dueDate", msgInvalidDueDate, raw)
		default:
			due, _ := parseDueDate(raw)
			changes.DueDate = &due
		}
	}

	if p.TimeSpent.Set {
		if p.TimeSpent.Null || validate.Var(p.TimeSpent.Value, "min=0") != nil {
			verr.Add("timeSpent", msgInvalidTimeSpent, nullableValue(p.TimeSpent))
		} else {
			spent := p.TimeSpent.Value
			changes.TimeSpent = &spent
		}
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return changes, nil
}

func nullableValue[T any](o model.Optional[T]) any {
	if o.Null {
		return nil
	}
	return o.Value
}

// ListParams are the raw list query values as received.
type ListParams struct {
	Page      string
	Limit     string
	Category  string
	Priority  string
	Completed string
}

// ParseListQuery validates list parameters. Missing page and limit fall back
// to 1 and defaultLimit; a limit above maxLimit is clamped.
func ParseListQuery(userID string, params ListParams, defaultLimit, maxLimit int) (model.TodoFilter, model.Page, error) {
	verr := &model.ValidationError{}
	filter := model.TodoFilter{UserID: userID}
	page := model.Page{Number: 1, Limit: defaultLimit}

	if params.Page != "" {
		n, err := strconv.Atoi(params.Page)
		if err != nil || n < 1 {
			verr.Add("page", msgInvalidPage, params.Page)
		} else {
			page.Number = n
		}
	}

	if params.Limit != "" {
		n, err := strconv.Atoi(params.Limit)
		if err != nil || n < 1 {
			verr.Add("limit", msgInvalidLimit, params.Limit)
		} else {
			page.Limit = n
		}
	}
	if maxLimit > 0 && page.Limit > maxLimit {
		page.Limit = maxLimit
	}
	if page.Limit > 0 && int64(page.Number-1) > math.MaxInt64/int64(page.Limit) {
		verr.Add("page", msgPageOutOfRange, params.Page)
		page.Number = 1
	}

	if params.Category != "" {
		if validate.Var(params.Category, "todo_category") != nil {
			verr.Add("category", msgInvalidCategory, params.Category)
		} else {
			c := model.Category(params.Category)
			filter.Category = &c
		}
	}

	if params.Priority != "" {
		if validate.Var(params.Priority, "todo_priority") != nil {
			verr.Add("priority", msgInvalidPriority, params.Priority)
		} else {
			p := model.Priority(params.Priority)
			filter.Priority = &p
		}
	}

	if params.Completed != "" {
		completed, err := strconv.ParseBool(params.Completed)
		if err != nil {
			verr.Add("completed", msgInvalidCompleted, params.Completed)
		} else {
			filter.Completed = &completed
		}
	}

	return filter, page, verr.OrNil()
}
