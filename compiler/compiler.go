package compiler

import (
	"errors"
	"io"

	"github.com/elasticai/stubgen/builder"
	"github.com/elasticai/stubgen/config"
	"github.com/elasticai/stubgen/driver"
	verr "github.com/elasticai/stubgen/error"
	"github.com/elasticai/stubgen/grammar"
	"github.com/elasticai/stubgen/stub"
)

type compileConfig struct {
	config     *config.Config
	sourceName string
	filePath   string
}

type Option func(c *compileConfig)

func WithConfig(c *config.Config) Option {
	return func(cc *compileConfig) {
		cc.config = c
	}
}

// WithSourceName sets the name diagnostics are prefixed with.
func WithSourceName(name string) Option {
	return func(cc *compileConfig) {
		cc.sourceName = name
	}
}

// WithFilePath lets diagnostics quote the offending line of the file at path.
func WithFilePath(path string) Option {
	return func(cc *compileConfig) {
		cc.filePath = path
	}
}

type Result struct {
	Stub     *stub.Stub
	Warnings []*verr.SpecError
}

// Compile translates IDL source into a stub. Any error aborts the translation.
func Compile(src io.Reader, opts ...Option) (*Result, error) {
	cc := &compileConfig{
		config: config.Default(),
	}
	for _, opt := range opts {
		opt(cc)
	}
	if cc.config == nil {
		cc.config = config.Default()
	}
	err := cc.config.Validate()
	if err != nil {
		return nil, err
	}

	cst, err := Parse(src, opts...)
	if err != nil {
		return nil, err
	}

	b := builder.NewStubBuilder(cc.config)
	a := builder.NewAnalyzer(b, builder.FilePath(cc.filePath), builder.SourceName(cc.sourceName))
	err = a.Analyze(cst)
	if err != nil {
		return nil, err
	}

	return &Result{
		Stub:     b.Generate(),
		Warnings: a.Warnings(),
	}, nil
}

// Parse returns the syntax tree of IDL source. A syntax error is returned as a *verr.SpecError
// wrapping a *driver.SyntaxError.
func Parse(src io.Reader, opts ...Option) (*driver.Node, error) {
	cc := &compileConfig{}
	for _, opt := range opts {
		opt(cc)
	}

	cg, err := grammar.IDL()
	if err != nil {
		return nil, err
	}
	gram := driver.NewGrammar(cg)
	toks, err := driver.NewTokenStream(gram, src)
	if err != nil {
		return nil, err
	}
	treeAct := driver.NewSyntaxTreeActionSet(gram)
	p, err := driver.NewParser(toks, gram, driver.SemanticAction(treeAct))
	if err != nil {
		return nil, err
	}
	err = p.Parse()
	if err != nil {
		var synErr *driver.SyntaxError
		if errors.As(err, &synErr) {
			return nil, &verr.SpecError{
				Cause:      synErr,
				FilePath:   cc.filePath,
				SourceName: cc.sourceName,
				Row:        synErr.Row + 1,
				Col:        synErr.Col + 1,
			}
		}
		return nil, err
	}

	return treeAct.CST(), nil
}
