package stub

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/elasticai/stubgen/config"
)

const (
	AcceleratorIDName   = "accelerator_id"
	AcceleratorAddrName = "accelerator_addr"
)

// Stub is a C module wrapping an accelerator. Rendering does not modify a stub, so Header and
// Source return the same text every time they are called.
type Stub struct {
	Name           string
	Description    string
	MiddlewarePath string

	functions       []*Function
	systemFunctions []*Function
	helperFunctions []*Function
	variables       []*Variable
	config          *config.Config
}

// NewStub returns a stub without functions. When c is nil, the default configuration applies.
func NewStub(name string, c *config.Config) *Stub {
	if c == nil {
		c = config.Default()
	}
	return &Stub{
		Name:        name,
		Description: c.Description,
		helperFunctions: []*Function{
			NewComputeTrigger(),
		},
		config: c,
	}
}

func (s *Stub) Config() *config.Config {
	return s.config
}

func (s *Stub) AddFunction(f *Function) {
	s.functions = append(s.functions, f)
}

// Functions returns the user functions in the order they were added.
func (s *Stub) Functions() []*Function {
	return s.functions
}

func (s *Stub) SystemFunctions() []*Function {
	return s.systemFunctions
}

func (s *Stub) HelperFunctions() []*Function {
	return s.helperFunctions
}

func (s *Stub) Variables() []*Variable {
	return s.variables
}

// SetDeploy adds a deploy function checking the design ID against id after configuring the FPGA
// from addr. Calling it again replaces the previous values and function.
func (s *Stub) SetDeploy(id uint64, addr uint32) {
	idVar := s.setVariable(PrimitiveTypeID, AcceleratorIDName, strconv.FormatUint(id, 10))
	addrVar := s.setVariable(PrimitiveTypeAddress, AcceleratorAddrName, strconv.FormatUint(uint64(addr), 10))
	s.systemFunctions = []*Function{
		NewDeploy(fmt.Sprintf("%v_deploy", s.Name), idVar, addrVar),
	}
	for _, f := range s.helperFunctions {
		if f.Kind == FunctionKindIDRead {
			return
		}
	}
	s.helperFunctions = append(s.helperFunctions, NewIDRead())
}

// Deployable reports whether the stub has a deploy function.
func (s *Stub) Deployable() bool {
	return len(s.systemFunctions) > 0
}

func (s *Stub) setVariable(typ PrimitiveType, id string, value string) *Variable {
	for _, v := range s.variables {
		if v.Identifier == id {
			v.Type = typ
			v.InitialValue = value
			return v
		}
	}
	v := NewVariable(typ, id, 1, ScopeModuleStatic)
	v.InitialValue = value
	s.variables = append(s.variables, v)
	return v
}

func (s *Stub) Header() string {
	var b strings.Builder
	guard := strings.ToUpper(s.Name)
	fmt.Fprintf(&b, "#ifndef %v_STUB_H\n", guard)
	fmt.Fprintf(&b, "#define %v_STUB_H\n", guard)
	fmt.Fprintf(&b, "\n")
	fmt.Fprintf(&b, "#include <stdbool.h>\n")
	fmt.Fprintf(&b, "#include <stdint.h>\n")
	fmt.Fprintf(&b, "\n")
	for _, f := range s.systemFunctions {
		fmt.Fprint(&b, f.Prototype())
	}
	for _, f := range s.functions {
		fmt.Fprint(&b, f.Prototype())
	}
	fmt.Fprintf(&b, "\n")
	fmt.Fprintf(&b, "#endif\n")
	return b.String()
}

func (s *Stub) Source() string {
	var b strings.Builder

	fmt.Fprintf(&b, "/*\n")
	fmt.Fprintf(&b, " * %v \n", strings.ReplaceAll(s.Description, "\n", "\n * "))
	fmt.Fprintf(&b, " */\n\n")

	fmt.Fprintf(&b, "#include \"%v%v\"\n", s.middlewareDir(), s.config.MiddlewareHeader)
	fmt.Fprintf(&b, "#include \"%v\"\n", s.config.SleepHeader)
	fmt.Fprintf(&b, "#include \"%v.h\"\n\n", strings.ToLower(s.Name))
	fmt.Fprintf(&b, "#include <stdint.h>\n")
	fmt.Fprintf(&b, "#include <stdbool.h>\n\n")

	fmt.Fprintf(&b, "#define ADDR_SKELETON_INPUTS %v\n", s.config.SkeletonInputsAddr)
	fmt.Fprintf(&b, "#define ADDR_COMPUTATION_ENABLE %v\n\n", s.config.ComputationEnableAddr)

	for _, f := range s.helperFunctions {
		fmt.Fprint(&b, f.Prototype())
	}
	fmt.Fprintf(&b, "\n")

	for _, v := range s.variables {
		fmt.Fprint(&b, v.Initialization())
	}
	if len(s.variables) > 0 {
		fmt.Fprintf(&b, "\n")
	}

	for _, f := range s.systemFunctions {
		fmt.Fprint(&b, f.Definition(s.config))
	}
	for _, f := range s.functions {
		fmt.Fprint(&b, f.Definition(s.config))
	}
	for _, f := range s.helperFunctions {
		fmt.Fprint(&b, f.Definition(s.config))
	}

	return b.String()
}

func (s *Stub) middlewareDir() string {
	if s.MiddlewarePath == "" || strings.HasSuffix(s.MiddlewarePath, "/") {
		return s.MiddlewarePath
	}
	return s.MiddlewarePath + "/"
}
