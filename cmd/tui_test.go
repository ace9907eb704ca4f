package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/stratos/internal/shared"
	tu "github.com/desertthunder/stratos/internal/testing"
)

func TestMatchModel(t *testing.T) {
	t.Run("loader logs go to the log file", func(t *testing.T) {
		stderr := &bytes.Buffer{}
		config := shared.DefaultConfig()
		config.Log.File = filepath.Join(t.TempDir(), "logs", "stratos.log")

		runner := NewRunner(RunnerOpts{
			Config:   config,
			Provider: testProvider(),
			DB:       testDB(t),
			Logger:   shared.NewLogger(stderr),
			Output:   &bytes.Buffer{},
		})
		t.Cleanup(func() { runner.Close() })

		model, err := runner.matchModel(t.Context(), 1)
		if err != nil {
			t.Fatalf("matchModel failed: %v", err)
		}

		cmd := model.Init()
		for i := 0; cmd != nil && model.Session() == nil && model.Err() == nil && i < 50; i++ {
			_, cmd = model.Update(cmd())
		}
		if model.Err() != nil {
			t.Fatalf("expected load to succeed, got %v", model.Err())
		}
		if model.Session() == nil {
			t.Fatal("expected replay session after load")
		}

		if stderr.Len() != 0 {
			t.Errorf("expected no output on the original writer, got %q", stderr.String())
		}
		if logs := tu.MustReadFile(t, config.Log.File); !strings.Contains(logs, "loading match") {
			t.Errorf("expected loader logs in file, got %q", logs)
		}
	})

	t.Run("unwritable log file", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(blocker, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		config := shared.DefaultConfig()
		config.Log.File = filepath.Join(blocker, "stratos.log")

		runner := NewRunner(RunnerOpts{Config: config, Provider: testProvider(), Logger: shared.NewLogger(&bytes.Buffer{})})
		if _, err := runner.matchModel(t.Context(), 1); err == nil {
			t.Error("expected an error when the log file cannot be created")
		}
	})
}
