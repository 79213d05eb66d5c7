package transaction

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/assessor-ai/assessor/agent/contract"
)

const (
	defaultQueryLimit = 20
	dateLayout        = "2006-01-02"
)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	dateLayout,
}

// NormalizeTypeName uppercases a human-given type name and maps the common
// singular "EXPENSE" onto the stored "EXPENSES".
func NormalizeTypeName(name string) string {
	t := strings.ToUpper(strings.TrimSpace(name))
	if t == "EXPENSE" {
		t = TypeExpenses
	}
	return t
}

func validateLocalDate(field, value string) error {
	if _, err := time.Parse(dateLayout, value); err != nil {
		return fmt.Errorf("%w: %s=%q não é uma data local YYYY-MM-DD", contractx.ErrToolError, field, value)
	}
	return nil
}

func parseLocalTimestamp(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, value, loc); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: occurred_at=%q não é um timestamp ISO 8601", contractx.ErrToolError, value)
}

type AddArgs struct {
	Amount        float64 `json:"amount"`
	SourceText    string  `json:"source_text"`
	OccurredAt    string  `json:"occurred_at,omitempty"`
	TypeID        int64   `json:"type_id,omitempty"`
	TypeName      string  `json:"type_name,omitempty"`
	CategoryID    int64   `json:"category_id,omitempty"`
	Description   string  `json:"description,omitempty"`
	PaymentMethod string  `json:"payment_method,omitempty"`
}

func (a AddArgs) Validate() error {
	if a.Amount <= 0 {
		return fmt.Errorf("%w: amount deve ser positivo", contractx.ErrToolError)
	}
	if strings.TrimSpace(a.SourceText) == "" {
		return fmt.Errorf("%w: source_text é obrigatório", contractx.ErrToolError)
	}
	return nil
}

type AddResult struct {
	Status     string `json:"status"`
	ID         int64  `json:"id"`
	OccurredAt string `json:"occurred_at"`
}

type QueryArgs struct {
	Text          string `json:"text,omitempty"`
	TypeName      string `json:"type_name,omitempty"`
	DateLocal     string `json:"date_local,omitempty"`
	DateFromLocal string `json:"date_from_local,omitempty"`
	DateToLocal   string `json:"date_to_local,omitempty"`
	Limit         int    `json:"limit,omitempty"`
}

// HasRange reports whether both range bounds are set; a range flips the
// result order to chronological (ascending).
func (a QueryArgs) HasRange() bool {
	return a.DateFromLocal != "" && a.DateToLocal != ""
}

func (a QueryArgs) EffectiveLimit() int {
	if a.Limit <= 0 {
		return defaultQueryLimit
	}
	return a.Limit
}

func (a QueryArgs) Validate() error {
	if a.DateLocal != "" {
		if err := validateLocalDate("date_local", a.DateLocal); err != nil {
			return err
		}
	}
	if a.DateFromLocal != "" {
		if err := validateLocalDate("date_from_local", a.DateFromLocal); err != nil {
			return err
		}
	}
	if a.DateToLocal != "" {
		if err := validateLocalDate("date_to_local", a.DateToLocal); err != nil {
			return err
		}
	}
	return nil
}

type UpdateArgs struct {
	ID        int64  `json:"id,omitempty"`
	MatchText string `json:"match_text,omitempty"`
	DateLocal string `json:"date_local,omitempty"`

	Amount        *float64 `json:"amount,omitempty"`
	TypeID        *int64   `json:"type_id,omitempty"`
	TypeName      string   `json:"type_name,omitempty"`
	CategoryID    *int64   `json:"category_id,omitempty"`
	CategoryName  string   `json:"category_name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	PaymentMethod *string  `json:"payment_method,omitempty"`
	OccurredAt    string   `json:"occurred_at,omitempty"`
}

// HasTarget reports whether the args identify a row: an explicit id, or the
// (match_text AND date_local) lookup pair.
func (a UpdateArgs) HasTarget() bool {
	if a.ID > 0 {
		return true
	}
	return strings.TrimSpace(a.MatchText) != "" && strings.TrimSpace(a.DateLocal) != ""
}

func (a UpdateArgs) HasChanges() bool {
	return a.Amount != nil ||
		a.TypeID != nil ||
		a.TypeName != "" ||
		a.CategoryID != nil ||
		a.CategoryName != "" ||
		a.Description != nil ||
		a.PaymentMethod != nil ||
		a.OccurredAt != ""
}

// Validate runs before any write: a missing target or an empty change set
// must never reach the database.
func (a UpdateArgs) Validate() error {
	if !a.HasChanges() {
		return fmt.Errorf("%w: nada para atualizar: informe pelo menos um campo", contractx.ErrToolError)
	}
	if !a.HasTarget() {
		return fmt.Errorf("%w: sem 'id': informe match_text E date_local para localizar o registro", contractx.ErrToolError)
	}
	if a.ID == 0 {
		if err := validateLocalDate("date_local", a.DateLocal); err != nil {
			return err
		}
	}
	return nil
}

type UpdateResult struct {
	Status       string       `json:"status"`
	RowsAffected int64        `json:"rows_affected"`
	ID           int64        `json:"id"`
	Updated      *Transaction `json:"updated,omitempty"`
}
