// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"testing"
	"time"
)

func TestParseHelpers(t *testing.T) {
	t.Setenv("PADMETA_TEST_STRING", "value")
	t.Setenv("PADMETA_TEST_INT", "42")
	t.Setenv("PADMETA_TEST_BAD_INT", "forty-two")
	t.Setenv("PADMETA_TEST_DURATION", "75ms")
	t.Setenv("PADMETA_TEST_BOOL", "YES")
	t.Setenv("PADMETA_TEST_BAD_BOOL", "maybe")
	t.Setenv("PADMETA_TEST_FLOAT", "0.25")
	t.Setenv("PADMETA_TEST_EMPTY", "")

	if got := ParseString("PADMETA_TEST_STRING", "def"); got != "value" {
		t.Errorf("ParseString = %q", got)
	}
	if got := ParseString("PADMETA_TEST_EMPTY", "def"); got != "def" {
		t.Errorf("ParseString(empty) = %q, want default", got)
	}
	if got := ParseString("PADMETA_TEST_UNSET_XYZ", "def"); got != "def" {
		t.Errorf("ParseString(unset) = %q, want default", got)
	}
	if got := ParseInt("PADMETA_TEST_INT", 1); got != 42 {
		t.Errorf("ParseInt = %d", got)
	}
	if got := ParseInt("PADMETA_TEST_BAD_INT", 1); got != 1 {
		t.Errorf("ParseInt(invalid) = %d, want default", got)
	}
	if got := ParseInt64("PADMETA_TEST_INT", 1); got != 42 {
		t.Errorf("ParseInt64 = %d", got)
	}
	if got := ParseDuration("PADMETA_TEST_DURATION", time.Second); got != 75*time.Millisecond {
		t.Errorf("ParseDuration = %v", got)
	}
	if got := ParseBool("PADMETA_TEST_BOOL", false); !got {
		t.Error("ParseBool(YES) = false")
	}
	if got := ParseBool("PADMETA_TEST_BAD_BOOL", true); !got {
		t.Error("ParseBool(invalid) should return default")
	}
	if got := ParseFloat("PADMETA_TEST_FLOAT", 1); got != 0.25 {
		t.Errorf("ParseFloat = %v", got)
	}
}

func TestIsSensitive(t *testing.T) {
	for _, k := range []string{"API_KEY", "PADMETA_TOKEN", "DB_PASSWORD"} {
		if !isSensitive(k) {
			t.Errorf("%s should be sensitive", k)
		}
	}
	if isSensitive("STATION_NAME") {
		t.Error("STATION_NAME should not be sensitive")
	}
}
