package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cottand/tyverse/session"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var ReplCmd = &cobra.Command{
	Use:          "repl",
	Short:        "Query the builtin universe interactively",
	RunE:         runRepl,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
}

const replHelp = `A <: B              check whether A is a subtype of B
:mro T              superclass chain of T
:traits T           traits of T
:method T NAME      resolve member NAME of T
:reset              rebuild the universe and drop cached modules
:help               show this message
:quit               leave`

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tyverse_history")
}

func runRepl(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	history := historyPath()
	if history != "" {
		if f, err := os.Open(history); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(history); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	_, _ = fmt.Fprintf(out, "tyverse session %s, :help for commands\n", s.ID)
	for {
		line, err := ln.Prompt("tyverse> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if quit := evalLine(s, out, line); quit {
			return nil
		}
	}
}

// evalLine runs one REPL line against s, reporting errors to w.
// It returns true when the user asked to leave.
func evalLine(s *session.Session, w io.Writer, line string) bool {
	var err error
	switch cmd, rest, _ := strings.Cut(line, " "); cmd {
	case ":quit", ":q":
		return true
	case ":help":
		_, _ = fmt.Fprintln(w, replHelp)
	case ":reset":
		s.Reset()
		_, _ = fmt.Fprintln(w, "universe rebuilt")
	case ":mro":
		err = printMRO(s, w, []string{rest})
	case ":traits":
		err = printTraits(s, w, []string{rest})
	case ":method":
		i := strings.LastIndexByte(rest, ' ')
		if i < 0 {
			err = errors.New("usage: :method T NAME")
			break
		}
		err = printMethod(s, w, []string{strings.TrimSpace(rest[:i]), rest[i+1:]})
	default:
		candidate, target, ok := strings.Cut(line, "<:")
		if !ok {
			err = errors.Errorf("unknown command %q, :help for commands", line)
			break
		}
		err = printSubtype(s, w, []string{strings.TrimSpace(candidate), strings.TrimSpace(target)})
	}
	if err != nil {
		_, _ = fmt.Fprintf(w, "%s %v\n", paint(w, ansiRed, "error:"), err)
	}
	return false
}
