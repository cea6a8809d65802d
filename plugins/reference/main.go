package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	pluginrpc "liftlog/internal/modules/plugin/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.Metadata, error) {
	return &pluginrpc.Metadata{
		Name:         "reference",
		Version:      "1.0.0",
		Capabilities: []string{"export", "analyze", "fullscreen_tty"},
	}, nil
}

func (s *server) ListCommands(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.ListCommandsResponse, error) {
	return &pluginrpc.ListCommandsResponse{Commands: []pluginrpc.CommandDescriptor{
		{ID: "csv-export", Title: "CSV Export", Description: "Emits workout history as CSV", Kind: "export", TimeoutMS: 2000},
		{ID: "volume-summary", Title: "Volume Summary", Description: "Returns a deterministic volume summary payload", Kind: "analyze", TimeoutMS: 2500},
		{ID: "tty-echo", Title: "TTY Echo", Description: "Prepares a tty command", Kind: "fullscreen_tty", TimeoutMS: 1500},
	}}, nil
}

func (s *server) Execute(_ context.Context, in *pluginrpc.ExecuteRequest) (*pluginrpc.ExecuteResponse, error) {
	switch in.CommandID {
	case "csv-export":
		rows, err := workoutRows(in.Context.VaultPath, in.Context.SplitID)
		if err != nil {
			return &pluginrpc.ExecuteResponse{Stderr: fmt.Sprintf("read vault: %v", err), ExitCode: 1}, nil
		}
		var sb strings.Builder
		sb.WriteString("workout_id,split_id,total_volume_kg\n")
		for _, r := range rows {
			fmt.Fprintf(&sb, "%s,%s,%.1f\n", r.id, r.splitID, r.volumeKg)
		}
		return &pluginrpc.ExecuteResponse{Stdout: sb.String(), OutputJSON: fmt.Sprintf(`{"rows":%d,"split_id":%q}`, len(rows), in.Context.SplitID), ExitCode: 0}, nil
	case "volume-summary":
		payload := map[string]any{}
		if strings.TrimSpace(in.InputJSON) != "" {
			_ = json.Unmarshal([]byte(in.InputJSON), &payload)
		}
		summary := map[string]any{
			"split_id":   in.Context.SplitID,
			"workout_id": in.Context.WorkoutID,
			"result":     "summary-ready",
			"input_keys": len(payload),
		}
		raw, _ := json.Marshal(summary)
		return &pluginrpc.ExecuteResponse{Stdout: "analysis complete", OutputJSON: string(raw), ExitCode: 0}, nil
	default:
		return nil, fmt.Errorf("unknown command: %s", in.CommandID)
	}
}

type workoutRow struct {
	id       string
	splitID  string
	volumeKg float64
}

// workoutRows scans the vault's workout notes and returns one row per note,
// filtered to splitID when it is set. A vault without a workouts directory
// yields zero rows.
func workoutRows(vaultPath, splitID string) ([]workoutRow, error) {
	root := filepath.Join(vaultPath, "workouts")
	var rows []workoutRow
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}
		if entry.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		row, ok := parseWorkoutNote(string(content))
		if !ok {
			return nil
		}
		if splitID != "" && row.splitID != splitID {
			return nil
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// parseWorkoutNote pulls the top-level id, split_id and total_volume_kg keys
// out of a note's frontmatter. Indented keys belong to the sets list and are
// skipped.
func parseWorkoutNote(content string) (workoutRow, bool) {
	var row workoutRow
	inMeta := false
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "---" {
			if inMeta {
				break
			}
			inMeta = true
			continue
		}
		if !inMeta || line == "" || line[0] == ' ' || line[0] == '\t' {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		switch strings.TrimSpace(key) {
		case "id":
			row.id = value
		case "split_id":
			row.splitID = value
		case "total_volume_kg":
			row.volumeKg, _ = strconv.ParseFloat(value, 64)
		}
	}
	return row, row.id != ""
}

func (s *server) PrepareTTY(_ context.Context, in *pluginrpc.PrepareTTYRequest) (*pluginrpc.PrepareTTYResponse, error) {
	if in.CommandID != "tty-echo" {
		return nil, fmt.Errorf("unknown tty command: %s", in.CommandID)
	}
	return &pluginrpc.PrepareTTYResponse{
		Argv: []string{"/bin/sh", "-lc", "echo liftlog-reference-tty"},
		Cwd:  in.Context.Cwd,
		Env: map[string]string{
			"LIFTLOG_PLUGIN": "reference",
		},
	}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: pluginrpc.HandshakeConfig,
		Plugins:         pluginrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
