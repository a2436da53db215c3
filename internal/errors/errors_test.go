package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "config error",
			code:    "E101",
			wantMsg: "Duplicate item variant",
			wantCat: CategoryConfig,
		},
		{
			name:    "dispatch error",
			code:    "E110",
			wantMsg: "Please set placeholder",
			wantCat: CategoryDispatch,
		},
		{
			name:    "paging error",
			code:    "E130",
			wantMsg: "Page load failed",
			wantCat: CategoryPaging,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	got := New("E111").WithDetail("sample.Banner").Error()
	want := "E111: No item variant for data type: sample.Banner"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := &Error{Message: "test error"}
	if plain.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "test error")
	}
}

func TestError_IsMatchesCode(t *testing.T) {
	err := New("E110").WithDetail("position 4")
	if !stderrors.Is(err, Sentinel("E110")) {
		t.Error("errors.Is should match on code")
	}
	if stderrors.Is(err, Sentinel("E111")) {
		t.Error("errors.Is should not match a different code")
	}

	wrapped := fmt.Errorf("bind: %w", err)
	if !stderrors.Is(wrapped, Sentinel("E110")) {
		t.Error("errors.Is should see through fmt wrapping")
	}
}

func TestError_Wrap(t *testing.T) {
	inner := stderrors.New("connection reset")
	outer := New("E130").Wrap(inner)

	if outer.Unwrap() != inner {
		t.Error("Unwrap() should return wrapped error")
	}
	if !stderrors.Is(outer, inner) {
		t.Error("errors.Is should reach the wrapped error")
	}
	if !strings.HasSuffix(outer.Error(), "connection reset") {
		t.Errorf("Error() = %q, want wrapped message suffix", outer.Error())
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E130") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	e := New("E101")
	if FromError(e, "E130") != e {
		t.Error("FromError should return *Error as-is")
	}

	std := stderrors.New("boom")
	if got := FromError(std, "E130"); got.Wrapped != std || got.Code != "E130" {
		t.Errorf("FromError = %+v, want E130 wrapping boom", got)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	out := New("E101").
		WithDetail("sample.Title declared twice").
		WithSuggestion("Remove one of the declarations").
		Format()

	for _, want := range []string{
		"ERROR E101: Duplicate item variant",
		"sample.Title declared twice",
		"Hint: Remove one of the declarations",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, stderrors.New("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("Fprint() = %q", buf.String())
	}
}

func TestRegistryComplete(t *testing.T) {
	for _, code := range Codes() {
		tmpl := Lookup(code)
		if tmpl.Message == "" || tmpl.Category == "" || tmpl.Explain == "" {
			t.Errorf("code %s has an incomplete template: %+v", code, tmpl)
		}
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five", 9)
	for _, l := range lines {
		if len(l) > 9 {
			t.Errorf("line %q longer than 9", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five" {
		t.Errorf("wrapText lost words: %v", lines)
	}
}
