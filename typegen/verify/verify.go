// Package verify parses generated TypeScript units with tree-sitter and
// reports syntax errors. It checks syntax only: imports and types are not
// resolved.
package verify

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/movets/errors"
	"github.com/teranos/movets/logger"
	"github.com/teranos/movets/typegen"
)

// Problem is one syntax error in a generated unit. Line and Column are 1-based.
type Problem struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", p.Path, p.Line, p.Column, p.Message)
}

// Verifier checks generated files. The zero value is not usable; use New.
type Verifier struct {
	jobs   int
	logger *zap.SugaredLogger
}

// New creates a verifier running up to jobs parses at once. jobs <= 0
// means one per CPU. A nil logger disables logging.
func New(jobs int, log *zap.SugaredLogger) *Verifier {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Verifier{jobs: jobs, logger: log}
}

// Verify parses every file of result ending in .ts and returns the problems
// found, ordered by file emission order. Other files are skipped.
func (v *Verifier) Verify(ctx context.Context, result *typegen.Result) ([]Problem, error) {
	var files []typegen.File
	for _, f := range result.Files() {
		if strings.HasSuffix(f.Path, ".ts") {
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return nil, nil
	}

	perFile := make([][]Problem, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(v.jobs, len(files)))

	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			problems, err := parseFile(gctx, f)
			if err != nil {
				return err
			}
			perFile[i] = problems
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var problems []Problem
	for _, p := range perFile {
		problems = append(problems, p...)
	}

	v.logger.Debugw("Verified generated units",
		logger.FieldCount, len(files),
		"problems", len(problems))
	return problems, nil
}

// Err folds problems into an ErrInvalidOutput error, or nil when empty.
func Err(problems []Problem) error {
	if len(problems) == 0 {
		return nil
	}
	err := errors.Wrapf(errors.ErrInvalidOutput, "%d syntax errors", len(problems))
	for _, p := range problems {
		err = errors.WithDetail(err, p.String())
	}
	return errors.WithHint(err, "this is a generator bug; please report it with the IDL that triggered it")
}

// parseFile uses its own parser: tree-sitter parsers are not safe for
// concurrent use.
func parseFile(ctx context.Context, f typegen.File) ([]Problem, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(typescript.GetLanguage())

	source := []byte(f.Content)
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", f.Path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil, nil
	}
	var problems []Problem
	collect(root, source, f.Path, &problems)
	return problems, nil
}

// collect walks only subtrees that contain errors.
func collect(n *sitter.Node, source []byte, path string, out *[]Problem) {
	switch {
	case n.IsMissing():
		*out = append(*out, problemAt(n, path, "missing "+n.Type()))
		return
	case n.IsError():
		*out = append(*out, problemAt(n, path, "unexpected "+snippet(n.Content(source))))
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child != nil && (child.HasError() || child.IsMissing()) {
			collect(child, source, path, out)
		}
	}
}

func problemAt(n *sitter.Node, path, msg string) Problem {
	start := n.StartPoint()
	return Problem{
		Path:    path,
		Line:    int(start.Row) + 1,
		Column:  int(start.Column) + 1,
		Message: msg,
	}
}

func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 40 {
		s = s[:40] + "..."
	}
	return fmt.Sprintf("%q", s)
}
