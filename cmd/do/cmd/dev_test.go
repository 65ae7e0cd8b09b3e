package cmd

import (
	"slices"
	"testing"
)

func TestDevEnvOverridesModeAndPort(t *testing.T) {
	env := devEnv([]string{"APP_ENV=production", "PORT=80", "JWT_SECRET=s"}, "8001")

	want := []string{"JWT_SECRET=s", "APP_ENV=development", "PORT=8001"}
	if !slices.Equal(env, want) {
		t.Errorf("devEnv() = %v, want %v", env, want)
	}
}
