package browser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/flarebyte/irshim/internal/command"
)

// Prefix marks emission kinds that end in a browser artifact.
const Prefix = "em-"

// DefaultToolchain is used when no emcc path is configured.
const DefaultToolchain = "emcc"

var extensions = map[string]string{
	"em-html": "html",
	"em-js":   "js",
}

// linkFlags are passed to the toolchain for an SDL2 + GL application.
var linkFlags = []string{"-lGL", "-lSDL", "-s", "USE_SDL=2"}

// UnsupportedKindError is returned for a browser kind with no known extension.
type UnsupportedKindError struct {
	Kind string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported browser emit kind: %q (supported: %s)", e.Kind, strings.Join(Kinds(), ", "))
}

// IsBrowserKind reports whether kind belongs to the browser-output family.
func IsBrowserKind(kind string) bool {
	return strings.HasPrefix(kind, Prefix)
}

// Kinds returns the supported browser kinds in sorted order.
func Kinds() []string {
	return []string{"em-html", "em-js"}
}

// Extension maps a browser kind to the output file extension.
func Extension(kind string) (string, error) {
	ext, ok := extensions[kind]
	if !ok {
		return "", &UnsupportedKindError{Kind: kind}
	}
	return ext, nil
}

// OutputPath returns <outDir>/<unit>.<ext> for kind.
func OutputPath(outDir, unit, kind string) (string, error) {
	ext, err := Extension(kind)
	if err != nil {
		return "", err
	}
	return filepath.Join(outDir, unit+"."+ext), nil
}

// Request describes one second-stage toolchain run.
type Request struct {
	Toolchain string
	IRPath    string
	OutDir    string
	Unit      string
	Kind      string
	Dir       string
}

// Command builds the toolchain invocation lowering the IR module into the
// browser artifact.
func Command(req Request) (command.Command, error) {
	out, err := OutputPath(req.OutDir, req.Unit, req.Kind)
	if err != nil {
		return command.Command{}, err
	}
	tool := req.Toolchain
	if tool == "" {
		tool = DefaultToolchain
	}
	cmd := command.New(tool, req.IRPath)
	cmd.Arg(linkFlags...)
	cmd.Arg("-o", out)
	cmd.Dir = req.Dir
	return cmd, nil
}
