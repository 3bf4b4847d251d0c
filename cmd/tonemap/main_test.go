package main

import (
	"context"
	"testing"
)

func TestRunExitCodes(t *testing.T) {
	for _, tc := range []struct {
		args []string
		code int
	}{
		{nil, 2},
		{[]string{"bogus"}, 2},
		{[]string{"batch", "-nope"}, 2},
		{[]string{"apply", "-help"}, 2},
		{[]string{"apply", "-op", "reinhard", "1", "2"}, 2},
		{[]string{"response", "1", "x", "1"}, 2},
		{[]string{"apply", "-op", "nope", "1", "1", "1"}, 1},
		{[]string{"response", "-iso", "0", "1", "1", "1"}, 1},
		{[]string{"list"}, 0},
		{[]string{"apply", "-op", "reinhard", "1", "1", "1"}, 0},
		{[]string{"response", "0.5", "1", "2"}, 0},
	} {
		if got := run(context.Background(), tc.args); got != tc.code {
			t.Fatalf("%v: exit code %d, want %d", tc.args, got, tc.code)
		}
	}
}
