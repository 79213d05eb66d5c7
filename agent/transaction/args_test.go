package transaction

import (
	"errors"
	"testing"
	"time"

	contractx "github.com/assessor-ai/assessor/agent/contract"
)

func TestNormalizeTypeName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"income":    "INCOME",
		" Expenses": "EXPENSES",
		"expense":   "EXPENSES",
		"TRANSFER":  "TRANSFER",
		"":          "",
	}
	for in, want := range cases {
		if got := NormalizeTypeName(in); got != want {
			t.Fatalf("NormalizeTypeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseLocalTimestamp(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	for _, value := range []string{
		"2025-08-31T14:30:00-03:00",
		"2025-08-31T14:30:00",
		"2025-08-31T14:30",
		"2025-08-31",
	} {
		if _, err := parseLocalTimestamp(value, loc); err != nil {
			t.Fatalf("parseLocalTimestamp(%q) error = %v", value, err)
		}
	}

	if _, err := parseLocalTimestamp("31/08/2025", loc); !errors.Is(err, contractx.ErrToolError) {
		t.Fatalf("parseLocalTimestamp(31/08/2025) error = %v, want ErrToolError", err)
	}
}

func TestAddArgsValidate(t *testing.T) {
	t.Parallel()

	args := AddArgs{Amount: 45.90, SourceText: "mercado hoje 45,90"}
	if err := args.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	args.Amount = -1
	if err := args.Validate(); !errors.Is(err, contractx.ErrToolError) {
		t.Fatalf("Validate() error = %v, want ErrToolError", err)
	}

	args = AddArgs{Amount: 10, SourceText: "  "}
	if err := args.Validate(); !errors.Is(err, contractx.ErrToolError) {
		t.Fatalf("Validate() error = %v, want ErrToolError", err)
	}
}

func TestQueryArgsDefaults(t *testing.T) {
	t.Parallel()

	var args QueryArgs
	if args.HasRange() {
		t.Fatal("HasRange() on zero args should be false")
	}
	if got := args.EffectiveLimit(); got != defaultQueryLimit {
		t.Fatalf("EffectiveLimit() = %d, want %d", got, defaultQueryLimit)
	}

	args = QueryArgs{DateFromLocal: "2025-08-01", DateToLocal: "2025-08-31", Limit: 5}
	if !args.HasRange() {
		t.Fatal("HasRange() should be true with both bounds set")
	}
	if got := args.EffectiveLimit(); got != 5 {
		t.Fatalf("EffectiveLimit() = %d, want 5", got)
	}
	if err := args.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestQueryArgsRejectsBadDate(t *testing.T) {
	t.Parallel()

	args := QueryArgs{DateLocal: "agosto"}
	if err := args.Validate(); !errors.Is(err, contractx.ErrToolError) {
		t.Fatalf("Validate() error = %v, want ErrToolError", err)
	}
}

func TestUpdateArgsValidateNoChanges(t *testing.T) {
	t.Parallel()

	args := UpdateArgs{ID: 7}
	if err := args.Validate(); !errors.Is(err, contractx.ErrToolError) {
		t.Fatalf("Validate() error = %v, want ErrToolError", err)
	}
}

func TestUpdateArgsValidateNoTarget(t *testing.T) {
	t.Parallel()

	amount := 99.90
	args := UpdateArgs{Amount: &amount, MatchText: "mercado"}
	if err := args.Validate(); !errors.Is(err, contractx.ErrToolError) {
		t.Fatalf("Validate() error = %v, want ErrToolError", err)
	}
}

func TestUpdateArgsValidateOK(t *testing.T) {
	t.Parallel()

	amount := 99.90
	byID := UpdateArgs{ID: 7, Amount: &amount}
	if err := byID.Validate(); err != nil {
		t.Fatalf("Validate() by id error = %v", err)
	}

	byMatch := UpdateArgs{MatchText: "mercado", DateLocal: "2025-08-30", TypeName: "EXPENSES"}
	if err := byMatch.Validate(); err != nil {
		t.Fatalf("Validate() by match error = %v", err)
	}

	byMatch.DateLocal = "30/08/2025"
	if err := byMatch.Validate(); !errors.Is(err, contractx.ErrToolError) {
		t.Fatalf("Validate() error = %v, want ErrToolError", err)
	}
}
