// Package list renders the JDKs found on this host.
package list

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fuse-open/android-build-tools/internal/jdk"
)

// Opts configures the list operation.
type Opts struct {
	// Candidates are the discovered JDKs, in discovery order.
	Candidates []jdk.Candidate
	// Policy marks the candidate it would select. Nil marks nothing.
	Policy jdk.Policy
	// OutputFormat is "table" or "json".
	OutputFormat string
	// Writer is the output destination.
	Writer io.Writer
}

// JDKInfo represents a JDK in list output.
type JDKInfo struct {
	jdk.Candidate
	Selected bool `json:"selected"`
}

// Run lists the candidates.
func Run(opts *Opts) error {
	infos := make([]JDKInfo, 0, len(opts.Candidates))

	selected, _, found := opts.Policy.Resolve(opts.Candidates)

	for i := range opts.Candidates {
		c := opts.Candidates[i]
		infos = append(infos, JDKInfo{
			Candidate: c,
			Selected:  found && c.Home == selected.Home,
		})
	}

	switch opts.OutputFormat {
	case "json":
		return renderJSON(opts.Writer, infos)
	default:
		return renderTable(opts.Writer, infos)
	}
}

func renderTable(w io.Writer, infos []JDKInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, "\tHOME\tVERSION\tJAVAC\tSOURCES"); err != nil {
		return err
	}

	for i := range infos {
		in := &infos[i]

		mark := ""
		if in.Selected {
			mark = "*"
		}

		version := in.Version
		if version == "" {
			version = majorLabel(in.Major)
		}

		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			mark, in.Home, version, yesNo(in.HasCompiler), strings.Join(in.Sources, ", ")); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func renderJSON(w io.Writer, infos []JDKInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(infos)
}

func majorLabel(major int) string {
	if major == 0 {
		return "unknown"
	}

	return strconv.Itoa(major)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}
