package core

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/dkrylov/shiftline/schema"
)

// hostCopier drives an external spreadsheet automation host. The host reads
// one JSON job from stdin, writes "PROGRESS <n>" lines while copying and a
// final "SHEETS <n>" line, and exits zero on success. A cancelled context
// kills the process, which is the only reliable way to stop a wedged
// automation host.
type hostCopier struct {
	command string
}

func newHostCopier(command string) *hostCopier {
	return &hostCopier{command: command}
}

// hostJob is the stdin payload for the automation host.
type hostJob struct {
	Sources []string `json:"sources"`
	Sheet   string   `json:"sheet"`
	Dest    string   `json:"dest"`
}

func (h *hostCopier) Name() schema.CopyStrategy {
	return schema.HostStrategy
}

func (h *hostCopier) Copy(ctx context.Context, job CopyJob) (int, error) {
	payload, err := json.Marshal(hostJob{
		Sources: job.Sources,
		Sheet:   job.SheetName,
		Dest:    job.DestPath,
	})
	if err != nil {
		return 0, fmt.Errorf("encoding host job: %w", err)
	}

	parts := strings.Fields(h.command)
	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	cmd.Stdin = bytes.NewReader(payload)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return 0, fmt.Errorf("attaching to host: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("starting host %s: %w", parts[0], err)
	}

	sheets := 0
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		key, val, ok := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			continue
		}
		switch key {
		case "PROGRESS":
			if job.Progress != nil {
				job.Progress(float64(n))
			}
		case "SHEETS":
			sheets = n
		}
	}

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return 0, fmt.Errorf("host failed: %w: %s", err, msg)
		}
		return 0, fmt.Errorf("host failed: %w", err)
	}
	if sheets == 0 {
		return 0, fmt.Errorf("host produced no sheets")
	}
	return sheets, nil
}
