package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd", "-a", "http://127.0.0.1:8000/api", "-s", "memory", "-t", "5"}, expectPanic: false,
			expected: &Config{BaseURL: "http://127.0.0.1:8000/api", StoreKind: "memory", RequestTimeout: 5 * time.Second}},
		{name: "Test2 timeout untouched without -t", args: []string{"cmd", "-s", "redis"}, expectPanic: false,
			expected: &Config{StoreKind: "redis", RequestTimeout: 1500 * time.Millisecond}},
		{name: "Test3 metrics address", args: []string{"cmd", "-m", "localhost:9090"}, expectPanic: false,
			expected: &Config{MetricsAddr: "localhost:9090", RequestTimeout: 1500 * time.Millisecond}},
		{name: "Test4 incorrect timeout", args: []string{"cmd", "-a", "http://x/api", "-t", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{RequestTimeout: 1500 * time.Millisecond}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
