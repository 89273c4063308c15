package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cottand/tyverse/frontend/types"
	"github.com/cottand/tyverse/frontend/universe"
	"github.com/cottand/tyverse/session"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var TypesCmd = &cobra.Command{
	Use:          "types",
	Short:        "List the published builtin types and const functions",
	RunE:         runTypes,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
}

var MroCmd = &cobra.Command{
	Use:          "mro TYPE",
	Short:        "Print the superclass chain of a type",
	RunE:         withSession(printMRO),
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var TraitsCmd = &cobra.Command{
	Use:          "traits TYPE",
	Short:        "Print the traits a type has",
	RunE:         withSession(printTraits),
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var SubtypeCmd = &cobra.Command{
	Use:          "subtype CANDIDATE TARGET",
	Short:        "Check whether a type is a subtype of another",
	RunE:         withSession(printSubtype),
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
}

var MethodCmd = &cobra.Command{
	Use:          "method TYPE NAME",
	Short:        "Resolve a member of a type, instantiated for it",
	RunE:         withSession(printMethod),
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
}

var publicOnly bool

func init() {
	TypesCmd.Flags().BoolVar(&publicOnly, "public", false, "only list public names")
}

type query func(s *session.Session, w io.Writer, args []string) error

func withSession(q query) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		return q(s, cmd.OutOrStdout(), args)
	}
}

func runTypes(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	return listTypes(s.Universe(), cmd.OutOrStdout(), publicOnly)
}

func listTypes(u *universe.Universe, w io.Writer, publicOnly bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tKIND\tVISIBILITY\tFOREIGN NAME\tDECLARATION")
	for name, info := range u.Published() {
		if publicOnly && info.Visibility != universe.Public {
			continue
		}
		foreign := info.PyName
		if foreign == name {
			foreign = ""
		}
		kind, decl := describe(info)
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", name, kind, info.Visibility, foreign, decl)
	}
	return tw.Flush()
}

// describe is the kind column and the declaration column of a published name
func describe(info universe.VarInfo) (string, string) {
	switch v := info.Value.(type) {
	case types.SubrValue:
		return "ConstFunc", info.Type.String()
	case nil:
		return info.Type.String(), ""
	default:
		return info.Type.String(), v.String()
	}
}

func printMRO(s *session.Session, w io.Writer, args []string) error {
	t, err := readType(args[0], s.Universe())
	if err != nil {
		return err
	}
	mro := s.Universe().MRO(t)
	if len(mro) == 0 {
		return errors.Errorf("%s is not a builtin class", t)
	}
	for i, anc := range mro {
		_, _ = fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", i), anc)
	}
	return nil
}

func printTraits(s *session.Session, w io.Writer, args []string) error {
	t, err := readType(args[0], s.Universe())
	if err != nil {
		return err
	}
	for _, trait := range s.Universe().Traits(t) {
		_, _ = fmt.Fprintln(w, trait)
	}
	return nil
}

func printSubtype(s *session.Session, w io.Writer, args []string) error {
	candidate, err := readType(args[0], s.Universe())
	if err != nil {
		return errors.WithMessage(err, "candidate")
	}
	target, err := readType(args[1], s.Universe())
	if err != nil {
		return errors.WithMessage(err, "target")
	}
	_, _ = fmt.Fprintf(w, "%s <: %s: %s\n", candidate, target, verdict(w, s.IsSubtype(candidate, target)))
	return nil
}

func printMethod(s *session.Session, w io.Writer, args []string) error {
	t, err := readType(args[0], s.Universe())
	if err != nil {
		return err
	}
	sig, ok := s.ResolveMethod(t, args[1])
	if !ok {
		return errors.Errorf("%s has no member %s", t, args[1])
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", paint(w, ansiBold, sig.Name), sig.Type)
	_, _ = fmt.Fprintf(w, "  declared in %s\n", sig.Owner)
	if sig.Trait != nil {
		_, _ = fmt.Fprintf(w, "  implements %s\n", sig.Trait)
	}
	if sig.Info.Value != nil {
		_, _ = fmt.Fprintf(w, "  = %s\n", sig.Info.Value)
	}
	return nil
}
