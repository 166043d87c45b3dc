package builder

import (
	"fmt"
	"math"
	"strconv"

	"github.com/elasticai/stubgen/driver"
	verr "github.com/elasticai/stubgen/error"
	"github.com/elasticai/stubgen/grammar"
	"github.com/elasticai/stubgen/idl"
	"github.com/elasticai/stubgen/stub"
)

type AnalyzerOption func(a *Analyzer)

// FilePath lets diagnostics quote the offending source line.
func FilePath(path string) AnalyzerOption {
	return func(a *Analyzer) {
		a.filePath = path
	}
}

func SourceName(name string) AnalyzerOption {
	return func(a *Analyzer) {
		a.sourceName = name
	}
}

// Analyzer walks a syntax tree of the IDL grammar in source order and drives a StubBuilder.
type Analyzer struct {
	builder    *StubBuilder
	filePath   string
	sourceName string
	warnings   []*verr.SpecError
}

func NewAnalyzer(b *StubBuilder, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		builder: b,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Warnings returns the diagnostics that did not stop the analysis.
func (a *Analyzer) Warnings() []*verr.SpecError {
	return a.warnings
}

// Analyze returns the first semantic error as a *verr.SpecError.
func (a *Analyzer) Analyze(root *driver.Node) error {
	if root == nil || root.KindName != grammar.NonTerminalStub {
		return fmt.Errorf("a syntax tree must be rooted at a %v node", grammar.NonTerminalStub)
	}

	name := a.findChild(root, idl.TokenKindName.String())
	if name == nil {
		return a.errorf(root, ErrMissingName, "")
	}
	err := a.builder.SetName(name.Text)
	if err != nil {
		return a.errorf(name, err, "")
	}

	if attrs := a.findChild(root, grammar.NonTerminalAttrs); attrs != nil {
		for _, attr := range flatten(attrs, grammar.NonTerminalAttrs, grammar.NonTerminalAttr) {
			err := a.analyzeAttr(attr)
			if err != nil {
				return err
			}
		}
	}

	var funcs []*driver.Node
	if fs := a.findChild(root, grammar.NonTerminalFunctions); fs != nil {
		funcs = flatten(fs, grammar.NonTerminalFunctions, grammar.NonTerminalFunction)
	}
	if len(funcs) == 0 {
		return a.errorf(root, ErrNoFunction, "")
	}
	defined := map[string]struct{}{}
	for _, fn := range funcs {
		err := a.analyzeFunction(fn, defined)
		if err != nil {
			return err
		}
	}

	return nil
}

func (a *Analyzer) analyzeAttr(attr *driver.Node) error {
	if len(attr.Children) == 0 {
		return fmt.Errorf("an empty %v node", grammar.NonTerminalAttr)
	}
	kw := attr.Children[0]
	switch idl.TokenKind(kw.KindName) {
	case idl.TokenKindKWPath:
		a.builder.SetMiddlewarePath(attr.Children[1].Text)
	case idl.TokenKindKWAddress:
		w := a.newError(kw, WarnAddressIgnored, "")
		w.Warning = true
		a.warnings = append(a.warnings, w)
	case idl.TokenKindKWDeploy:
		idNode := attr.Children[1]
		id, err := strconv.ParseUint(idNode.Text, 10, 64)
		if err != nil {
			return a.errorf(idNode, ErrNumberOutOfRange, "an accelerator id must fit in 64 bits: %v", idNode.Text)
		}
		addrNode := attr.Children[2]
		addr, err := strconv.ParseUint(addrNode.Text, 10, 32)
		if err != nil {
			return a.errorf(addrNode, ErrNumberOutOfRange, "an accelerator address must fit in 32 bits: %v", addrNode.Text)
		}
		a.builder.SetAcceleratorID(id)
		a.builder.SetAcceleratorAddress(uint32(addr))
	default:
		return fmt.Errorf("unknown attribute: %v", kw.KindName)
	}
	return nil
}

func (a *Analyzer) analyzeFunction(fn *driver.Node, defined map[string]struct{}) error {
	pattern := a.findChild(fn, grammar.NonTerminalPattern)
	kw := pattern.Children[0]
	var p CallPattern
	switch idl.TokenKind(kw.KindName) {
	case idl.TokenKindKWSync:
		p = CallPatternSync
	case idl.TokenKindKWAsync:
		p = CallPatternAsync
	default:
		return fmt.Errorf("unknown call pattern: %v", kw.KindName)
	}
	err := a.builder.SetCallPattern(p)
	if err != nil {
		return a.errorf(kw, err, "")
	}

	name := a.findChild(fn, idl.TokenKindName.String())
	if _, ok := defined[name.Text]; ok {
		return a.errorf(name, ErrDuplicateFunction, "%v", name.Text)
	}
	defined[name.Text] = struct{}{}
	err = a.builder.SetFunctionName(name.Text)
	if err != nil {
		return a.errorf(name, err, "")
	}

	if params := a.findChild(fn, grammar.NonTerminalParams); params != nil {
		var offset uint64
		for _, param := range flatten(params, grammar.NonTerminalParams, grammar.NonTerminalParam) {
			err := a.analyzeParam(param, &offset)
			if err != nil {
				return err
			}
		}
	}

	ret := a.findChild(fn, grammar.NonTerminalReturnType)
	retKW := ret.Children[0]
	err = a.builder.SetFunctionReturnType(retKW.Text)
	if err != nil {
		return a.errorf(retKW, err, "")
	}

	return nil
}

// analyzeParam advances offset by the byte length of the parameter. Every input must lie within the 32-bit
// address space of the skeleton.
func (a *Analyzer) analyzeParam(param *driver.Node, offset *uint64) error {
	typ := a.findChild(param, grammar.NonTerminalPrimType).Children[0]
	name := a.findChild(param, idl.TokenKindName.String())
	pos := param
	elemCount := uint64(1)
	if num := a.findChild(param, idl.TokenKindNumber.String()); num != nil {
		n, err := strconv.ParseUint(num.Text, 10, 32)
		if err != nil {
			return a.errorf(num, ErrNumberOutOfRange, "an element count must fit in 32 bits: %v", num.Text)
		}
		elemCount = n
		pos = num
	}
	err := a.builder.AddFunctionInputParameter(name.Text, typ.Text, int(elemCount))
	if err != nil {
		return a.errorf(param, err, "")
	}

	t, err := stub.ParsePrimitiveType(typ.Text)
	if err != nil {
		return a.errorf(typ, err, "")
	}
	*offset += elemCount * uint64(t.Length())
	if *offset > math.MaxUint32 {
		return a.errorf(pos, ErrNumberOutOfRange, "the inputs of a function end at byte %v, beyond the 32-bit address space", *offset)
	}
	return nil
}

func (a *Analyzer) findChild(node *driver.Node, kindName string) *driver.Node {
	for _, c := range node.Children {
		if c.KindName == kindName {
			return c
		}
	}
	return nil
}

// flatten unrolls a left-recursive list like `list: list elem | elem` into its elements in source order.
func flatten(list *driver.Node, listKind string, elemKind string) []*driver.Node {
	var elems []*driver.Node
	for _, c := range list.Children {
		switch c.KindName {
		case listKind:
			elems = append(elems, flatten(c, listKind, elemKind)...)
		case elemKind:
			elems = append(elems, c)
		}
	}
	return elems
}

func (a *Analyzer) errorf(node *driver.Node, cause error, format string, args ...interface{}) error {
	var detail string
	if format != "" {
		detail = fmt.Sprintf(format, args...)
	}
	return a.newError(node, cause, detail)
}

func (a *Analyzer) newError(node *driver.Node, cause error, detail string) *verr.SpecError {
	return &verr.SpecError{
		Cause:      cause,
		Detail:     detail,
		FilePath:   a.filePath,
		SourceName: a.sourceName,
		Row:        node.Row + 1,
		Col:        node.Col + 1,
	}
}
