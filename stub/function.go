package stub

import (
	"fmt"
	"strings"

	"github.com/elasticai/stubgen/config"
)

const indent = "   "

const (
	resultIdentifier = "_result"

	computeTriggerName = "modelCompute"
	idReadName         = "get_id"
)

type FunctionKind int

const (
	// FunctionKindSyncCall is a user function that runs the accelerator and waits for its result.
	FunctionKindSyncCall FunctionKind = iota

	// FunctionKindDeploy configures the FPGA and checks the design ID.
	FunctionKindDeploy

	// FunctionKindComputeTrigger starts and stops a computation.
	FunctionKindComputeTrigger

	// FunctionKindIDRead reads the design ID from the FPGA.
	FunctionKindIDRead
)

func (k FunctionKind) String() string {
	switch k {
	case FunctionKindSyncCall:
		return "sync call"
	case FunctionKindDeploy:
		return "deploy"
	case FunctionKindComputeTrigger:
		return "compute trigger"
	case FunctionKindIDRead:
		return "id read"
	}
	return fmt.Sprintf("function kind(%d)", int(k))
}

type Function struct {
	Kind       FunctionKind
	Identifier string
	Result     *Variable
	Parameters []*Variable
	Private    bool

	// AcceleratorID and AcceleratorAddr are the module static variables a deploy function refers to.
	AcceleratorID   *Variable
	AcceleratorAddr *Variable
}

func newFunction(kind FunctionKind, id string, retType PrimitiveType, params []*Variable, private bool) *Function {
	return &Function{
		Kind:       kind,
		Identifier: id,
		Result:     NewVariable(retType, resultIdentifier, 1, ScopeReturnValue),
		Parameters: params,
		Private:    private,
	}
}

// NewSyncCall returns a public function that marshals params into the accelerator in order.
func NewSyncCall(id string, retType PrimitiveType, params []*Variable) *Function {
	return newFunction(FunctionKindSyncCall, id, retType, params, false)
}

func NewDeploy(id string, accelID *Variable, accelAddr *Variable) *Function {
	f := newFunction(FunctionKindDeploy, id, PrimitiveTypeBool, nil, false)
	f.AcceleratorID = accelID
	f.AcceleratorAddr = accelAddr
	return f
}

func NewComputeTrigger() *Function {
	return newFunction(FunctionKindComputeTrigger, computeTriggerName, PrimitiveTypeVoid, []*Variable{
		NewVariable(PrimitiveTypeBool, "enable", 1, ScopeLocal),
	}, true)
}

func NewIDRead() *Function {
	return newFunction(FunctionKindIDRead, idReadName, PrimitiveTypeUint8, nil, true)
}

// Signature returns the function head without a terminator.
func (f *Function) Signature() string {
	var b strings.Builder
	if f.Private {
		fmt.Fprintf(&b, "static ")
	}
	fmt.Fprintf(&b, "%v %v(", f.Result.Type.CType(), f.Identifier)
	if len(f.Parameters) == 0 {
		fmt.Fprintf(&b, "%v", PrimitiveTypeVoid.CType())
	} else {
		for i, p := range f.Parameters {
			if i > 0 {
				fmt.Fprintf(&b, ", ")
			}
			fmt.Fprintf(&b, "%v", p.Parameter())
		}
	}
	fmt.Fprintf(&b, ")")
	return b.String()
}

func (f *Function) Prototype() string {
	return f.Signature() + ";\n"
}

// Definition returns the whole function followed by a blank line.
func (f *Function) Definition(c *config.Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v\n{\n", f.Signature())
	switch f.Kind {
	case FunctionKindSyncCall:
		f.writeSyncCallBody(&b, c)
	case FunctionKindDeploy:
		f.writeDeployBody(&b, c)
	case FunctionKindComputeTrigger:
		writeLine(&b, "uint8_t cmd = (enable ? 1 : 0)")
		writeLine(&b, "middlewareWriteBlocking(ADDR_COMPUTATION_ENABLE, &cmd, 1)")
	case FunctionKindIDRead:
		writeLine(&b, "middlewareUserlogicEnable()")
		writeLine(&b, "uint8_t id = middlewareGetDesignId()")
		writeLine(&b, "middlewareUserlogicDisable()")
		writeLine(&b, "return id")
	default:
		panic(fmt.Sprintf("invalid function kind: %v", f.Kind))
	}
	fmt.Fprintf(&b, "}\n\n")
	return b.String()
}

// Offsets returns the byte offset of each parameter within the accelerator input buffer.
func (f *Function) Offsets() []int {
	offsets := make([]int, len(f.Parameters))
	off := 0
	for i, p := range f.Parameters {
		offsets[i] = off
		off += p.Length()
	}
	return offsets
}

func (f *Function) returnsResult() bool {
	return f.Result.Length() > 0
}

func (f *Function) writeSyncCallBody(b *strings.Builder, c *config.Config) {
	if f.returnsResult() {
		fmt.Fprintf(b, "%v\n", f.Result.Declaration())
	}

	writeLine(b, "middlewareInit()")
	writeLine(b, "middlewareUserlogicEnable()")
	offsets := f.Offsets()
	for i, p := range f.Parameters {
		writeLine(b, fmt.Sprintf("middlewareWriteBlocking(ADDR_SKELETON_INPUTS+%v, (uint8_t*)(%v), %v)", offsets[i], p.Reference(), p.Length()))
	}
	writeLine(b, fmt.Sprintf("%v(true)", computeTriggerName))
	fmt.Fprintf(b, "\n")

	writeLine(b, "while( middlewareUserlogicGetBusyStatus() )")
	fmt.Fprintf(b, "\n")

	if f.returnsResult() {
		for i := 0; i < c.ReadRepeat; i++ {
			writeLine(b, fmt.Sprintf("middlewareReadBlocking(ADDR_SKELETON_INPUTS+0, (uint8_t *)(%v), %v)", f.Result.Reference(), f.Result.Length()))
		}
	}

	writeLine(b, fmt.Sprintf("%v(false)", computeTriggerName))
	writeLine(b, "middlewareUserlogicDisable()")
	writeLine(b, "middlewareDeinit()")

	if f.returnsResult() {
		writeLine(b, fmt.Sprintf("return %v", f.Result.Identifier))
	}
}

func (f *Function) writeDeployBody(b *strings.Builder, c *config.Config) {
	writeLine(b, "middlewareInit()")
	writeLine(b, fmt.Sprintf("middlewareConfigureFpga(%v)", f.AcceleratorAddr.Identifier))
	writeLine(b, fmt.Sprintf("sleep_for_ms(%v)", c.SettleDelayMS))
	writeLine(b, fmt.Sprintf("bool is_deployed_successfully = (%v() == %v)", idReadName, f.AcceleratorID.Identifier))
	writeLine(b, "middlewareDeinit()")
	writeLine(b, "return is_deployed_successfully")
}

func writeLine(b *strings.Builder, stmt string) {
	fmt.Fprintf(b, "%v%v;\n", indent, stmt)
}
