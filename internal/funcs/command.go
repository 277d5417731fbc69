package funcs

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/whatif-sh/whatif/internal/scenario"
)

// CommandFunc runs an external program as the compute function. Inputs are
// passed as WHATIF_INPUT_<NAME> environment variables; the program prints
// `name=value` lines on stdout, one per output. This is the escape hatch for
// slow, real-world computations the built-ins cannot express.
type CommandFunc struct {
	Name        string
	Description string
	Command     string
	Shell       string   // optional; autodetected when empty
	InputNames  []string // required inputs, declared in the workbook
	WorkDir     string
}

// NewCommandFunc builds a CommandFunc for the given shell command line.
func NewCommandFunc(name, command string, inputs []string) *CommandFunc {
	return &CommandFunc{
		Name:       name,
		Command:    command,
		InputNames: inputs,
	}
}

func (c *CommandFunc) Metadata() Metadata {
	description := c.Description
	if description == "" {
		description = fmt.Sprintf("external command: %s", c.Command)
	}
	return Metadata{
		Name:        c.Name,
		Description: description,
		Inputs:      c.InputNames,
	}
}

func (c *CommandFunc) Compute(ctx context.Context, inputs scenario.Inputs) (scenario.Outputs, error) {
	shell, shellArgs, err := determineShell(c.Shell)
	if err != nil {
		return nil, err
	}

	args := append(shellArgs, c.Command)
	cmd := exec.CommandContext(ctx, shell, args...)
	cmd.Env = buildEnv(inputs)
	if c.WorkDir != "" {
		cmd.Dir = c.WorkDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}

	return parseOutputs(stdout.Bytes())
}

// parseOutputs reads `name=value` lines; blank lines and lines starting with
// `#` are skipped.
func parseOutputs(raw []byte) (scenario.Outputs, error) {
	out := make(scenario.Outputs)
	sc := bufio.NewScanner(bytes.NewReader(raw))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("malformed output line %q: expected name=value", line)
		}

		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("output %q is not numeric: %w", strings.TrimSpace(name), err)
		}
		out[strings.TrimSpace(name)] = parsed
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("command produced no outputs")
	}
	return out, nil
}

func determineShell(explicit string) (string, []string, error) {
	if explicit != "" {
		return explicit, []string{"-c"}, nil
	}

	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C"}, nil
	}

	if path, err := exec.LookPath("bash"); err == nil {
		return path, []string{"-c"}, nil
	}

	if path, err := exec.LookPath("sh"); err == nil {
		return path, []string{"-c"}, nil
	}

	return "", nil, fmt.Errorf("no suitable shell found")
}

func buildEnv(inputs scenario.Inputs) []string {
	env := os.Environ()
	for name, value := range inputs {
		key := "WHATIF_INPUT_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
		env = append(env, fmt.Sprintf("%s=%s", key, strconv.FormatFloat(value, 'g', -1, 64)))
	}
	return env
}
