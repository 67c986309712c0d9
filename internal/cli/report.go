package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/syssam/ormgen/compiler"
)

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	warnColor = color.New(color.FgYellow)
	dimColor  = color.New(color.Faint)
)

// printer reports progress of a run.
type printer struct {
	w     io.Writer
	quiet bool
	unit  compiler.Unit
}

func newPrinter(w io.Writer, quiet bool) *printer {
	return &printer{w: w, quiet: quiet}
}

// before prints the unit header when a new unit starts.
func (p *printer) before(u compiler.Unit, _ string) {
	if p.quiet || u == p.unit {
		return
	}
	p.unit = u
	fmt.Fprintf(p.w, "%s %s -> %s\n", dimColor.Sprintf("[%s]", u.Target), filepath.Base(u.File), u.OutDir)
}

// after prints the outcome of one entity.
func (p *printer) after(_ compiler.Unit, entity string, err error) {
	if p.quiet {
		return
	}
	if err != nil {
		fmt.Fprintf(p.w, "  %s %s: %v\n", failColor.Sprint("FAIL"), entity, err)
		return
	}
	fmt.Fprintf(p.w, "  %s   %s\n", okColor.Sprint("ok"), entity)
}

// summary prints the totals of a run and the failures of whole units.
func (p *printer) summary(r *compiler.Report) {
	for _, o := range r.Outcomes {
		if o.Err != nil {
			fmt.Fprintf(p.w, "%s %v\n", failColor.Sprint("FAIL"), o.Err)
		}
	}
	ok, failed := r.Entities()
	status := okColor.Sprint("done")
	if failed > 0 || r.Err() != nil {
		status = failColor.Sprint("failed")
	}
	fmt.Fprintf(p.w, "%s: %d entities generated, %d failed, %d files written", status, ok, failed, r.Metrics.FilesWritten)
	if r.Metrics.FilesKept > 0 {
		fmt.Fprintf(p.w, ", %s", warnColor.Sprintf("%d hook files kept", r.Metrics.FilesKept))
	}
	fmt.Fprintln(p.w)
}
