package chart

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// Drawer draws a figure somewhere outside the terminal.
type Drawer interface {
	Draw(fig Figure, heading string) error
}

// FileDrawer writes a rendered figure to Path.
type FileDrawer struct {
	Path   string
	Render func(w io.Writer, fig Figure, heading string) error
}

// NewHTMLFile returns a drawer writing a self-contained Plotly page.
func NewHTMLFile(path string) *FileDrawer {
	return &FileDrawer{Path: path, Render: WriteHTML}
}

// NewPDFFile returns a drawer writing a one-page PDF report.
func NewPDFFile(path string) *FileDrawer {
	return &FileDrawer{Path: path, Render: WritePDF}
}

func (d *FileDrawer) Draw(fig Figure, heading string) error {
	f, err := os.Create(d.Path)
	if err != nil {
		return errors.Wrap(err, "create chart file")
	}
	if err := d.Render(f, fig, heading); err != nil {
		f.Close()
		return errors.Wrapf(err, "render %s", d.Path)
	}
	return errors.Wrap(f.Close(), "close chart file")
}
