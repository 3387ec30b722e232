// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package errors

import (
	"errors"
	"testing"
)

func TestError(t *testing.T) {
	err := New(KindSchema, "unknown type \"float\"")
	if err.Error() != "unknown type \"float\"" {
		t.Errorf("unexpected message %q", err.Error())
	}

	wrapped := Wrap(err, KindInternal, "describe allocation_size")
	if wrapped.Error() != "describe allocation_size: unknown type \"float\"" {
		t.Errorf("unexpected message %q", wrapped.Error())
	}

	if Wrap(nil, KindIO, "nothing") != nil {
		t.Error("wrapping nil should stay nil")
	}
}

func TestGetKind(t *testing.T) {
	err := Errorf(KindParse, "line %d: unterminated block", 12)
	if GetKind(err) != KindParse {
		t.Errorf("expected KindParse, got %v", GetKind(err))
	}

	wrapped := Wrapf(err, KindIO, "patch %s", "api.h")
	if GetKind(wrapped) != KindIO {
		t.Errorf("expected KindIO, got %v", GetKind(wrapped))
	}

	if GetKind(errors.New("std error")) != KindUnknown {
		t.Errorf("expected KindUnknown for a plain error")
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindSchema:     "schema",
		KindParse:      "parse",
		KindIO:         "io",
		KindFormat:     "format",
		KindStale:      "stale",
		KindValidation: "validation",
		KindUnknown:    "unknown",
	}
	for k, want := range cases {
		if k.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, k.String(), want)
		}
	}
}

func TestAttributes(t *testing.T) {
	err := New(KindSchema, "bad option")
	err = Attr(err, "method", "session.create")
	err = Attr(err, "option", "block.size")

	attrs := GetAttributes(err)
	if attrs["method"] != "session.create" {
		t.Errorf("expected session.create, got %v", attrs["method"])
	}

	wrapped := Wrap(err, KindInternal, "generate")
	wrapped = Attr(wrapped, "target", "conf_def.go")

	all := GetAttributes(wrapped)
	if all["option"] != "block.size" || all["target"] != "conf_def.go" {
		t.Errorf("missing attributes: %v", all)
	}

	plain := Attr(errors.New("boom"), "k", 1)
	if GetKind(plain) != KindInternal {
		t.Errorf("plain errors should be wrapped as KindInternal")
	}
}

func TestLogFields(t *testing.T) {
	err := Attr(Attr(New(KindParse, "unterminated block"), "path", "include/api.h"), "method", "session.drop")

	got := LogFields(err)
	want := []any{"kind", "parse", "method", "session.drop", "path", "include/api.h"}
	if len(got) != len(want) {
		t.Fatalf("LogFields() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("LogFields()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if plain := LogFields(errors.New("boom")); len(plain) != 2 || plain[1] != "unknown" {
		t.Errorf("LogFields(plain) = %v", plain)
	}
}
