package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

func DevCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Run the API under air, rebuilding on Go or SQL changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			airPath, err := exec.LookPath("air")
			if err != nil {
				return fmt.Errorf("air not found, install with: go install github.com/air-verse/air@latest")
			}
			return syscall.Exec(airPath, airArgs(), devEnv(os.Environ(), port))
		},
	}

	cmd.Flags().StringVar(&port, "port", "8000", "port for the API")
	return cmd
}

func airArgs() []string {
	return []string{
		"air",
		"-c", "/dev/null",
		"-root", ".",
		"-build.cmd", "go build -o ./tmp/server ./cmd/server",
		"-build.bin", "./tmp/server",
		"-build.exclude_dir", "bin,tmp,data,_examples",
		"-build.exclude_regex", "_test.go$",
		"-build.include_ext", "go,sql",
		"-build.send_interrupt", "true",
	}
}

// devEnv forces development mode and the chosen port, leaving the rest of
// the environment untouched.
func devEnv(environ []string, port string) []string {
	env := make([]string, 0, len(environ)+2)
	for _, kv := range environ {
		if strings.HasPrefix(kv, "APP_ENV=") || strings.HasPrefix(kv, "PORT=") {
			continue
		}
		env = append(env, kv)
	}
	return append(env, "APP_ENV=development", "PORT="+port)
}
